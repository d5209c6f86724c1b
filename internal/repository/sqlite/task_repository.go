package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"smartwaste/internal/dto"
	"smartwaste/internal/model"
)

// TaskRepository implements repository.TaskRepository for SQLite.
type TaskRepository struct {
	db *DB
}

// NewTaskRepository creates a new SQLite task repository.
func NewTaskRepository(db *DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Insert adds a new task record and returns its generated identifier.
func (r *TaskRepository) Insert(task *model.Task) (string, error) {
	r.db.Lock()
	defer r.db.Unlock()

	if task.ID == "" {
		task.ID = uuid.NewString()
	}

	_, err := r.db.Conn().Exec(`
		INSERT INTO tasks (
			id, size, department, severity, priority, location,
			latitude, longitude, assigned, assigned_worker, processing,
			status, description, image_path,
			center_x, center_y, width, height, coverage_pct,
			confidence, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		task.ID, task.Size, task.Department, task.Severity, task.Priority, task.Location,
		task.Latitude, task.Longitude, task.Assigned, task.AssignedWorker, task.Processing,
		task.Status, task.Description, task.ImagePath,
		task.Details.X, task.Details.Y, task.Details.Width, task.Details.Height, task.Details.CoveragePercentage,
		task.ConfidenceScore, task.CreatedAt,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert task: %w", err)
	}

	return task.ID, nil
}

const taskColumns = `
	id, size, department, severity, priority, location,
	latitude, longitude, assigned, assigned_worker, processing,
	status, description, image_path,
	center_x, center_y, width, height, coverage_pct,
	confidence, created_at`

// scanTask reads one task row in taskColumns order.
func scanTask(row interface{ Scan(...interface{}) error }) (*model.Task, error) {
	var task model.Task
	err := row.Scan(
		&task.ID, &task.Size, &task.Department, &task.Severity, &task.Priority, &task.Location,
		&task.Latitude, &task.Longitude, &task.Assigned, &task.AssignedWorker, &task.Processing,
		&task.Status, &task.Description, &task.ImagePath,
		&task.Details.X, &task.Details.Y, &task.Details.Width, &task.Details.Height, &task.Details.CoveragePercentage,
		&task.ConfidenceScore, &task.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// GetByID retrieves a task by its identifier.
func (r *TaskRepository) GetByID(id string) (*model.Task, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	row := r.db.Conn().QueryRow(`SELECT`+taskColumns+` FROM tasks WHERE id = ?`, id)
	task, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

// buildFilterClause appends WHERE conditions for the given filters.
func buildFilterClause(filter *dto.TaskFilters) (string, []interface{}) {
	clause := " WHERE 1=1"
	args := []interface{}{}

	if filter.Department != "" {
		clause += " AND department = ?"
		args = append(args, filter.Department)
	}
	if filter.Severity != "" {
		clause += " AND severity = ?"
		args = append(args, filter.Severity)
	}
	if filter.Priority != "" {
		clause += " AND priority = ?"
		args = append(args, filter.Priority)
	}
	if filter.Status != "" {
		clause += " AND status = ?"
		args = append(args, filter.Status)
	}

	return clause, args
}

// GetAll retrieves tasks based on filter criteria, newest first.
func (r *TaskRepository) GetAll(filter *dto.TaskFilters) ([]model.Task, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	clause, args := buildFilterClause(filter)
	query := `SELECT` + taskColumns + ` FROM tasks` + clause + ` ORDER BY created_at DESC`

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query += " OFFSET ?"
		args = append(args, filter.Offset)
	}

	rows, err := r.db.Conn().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, *task)
	}

	return tasks, rows.Err()
}

// GetTotalCount returns the number of tasks matching the filter.
func (r *TaskRepository) GetTotalCount(filter *dto.TaskFilters) (int, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	clause, args := buildFilterClause(filter)

	var count int
	err := r.db.Conn().QueryRow(`SELECT COUNT(*) FROM tasks`+clause, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count tasks: %w", err)
	}

	return count, nil
}

// DeleteAll removes every task record.
func (r *TaskRepository) DeleteAll() error {
	r.db.Lock()
	defer r.db.Unlock()

	_, err := r.db.Conn().Exec(`DELETE FROM tasks`)
	if err != nil {
		return fmt.Errorf("failed to delete tasks: %w", err)
	}
	return nil
}
