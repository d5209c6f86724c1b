// TaskFilters describe user-provided filters to narrow the task list.
package dto

type TaskFilters struct {
	Department string
	Severity   string
	Priority   string
	Status     string
	Limit      int
	Offset     int
}
