package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"smartwaste/internal/dto"
	"smartwaste/internal/repository/sqlite"
)

// taskadmin is a maintenance tool for the task database: it creates the
// schema on first run, exports stored tasks as JSON, and purges them.
func main() {
	dbPath := flag.String("db", filepath.Join("data", "tasks.db"), "Database path")
	export := flag.Bool("export", false, "Export all tasks as JSON to stdout")
	purge := flag.Bool("purge", false, "Delete all task records")
	flag.Parse()

	if err := os.MkdirAll(filepath.Dir(*dbPath), 0755); err != nil {
		log.Fatalf("Failed to create database directory: %v", err)
	}

	db, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	repo := sqlite.NewTaskRepository(db)

	if *purge {
		if err := repo.DeleteAll(); err != nil {
			log.Fatalf("Failed to purge tasks: %v", err)
		}
		fmt.Println("All task records deleted")
		return
	}

	if *export {
		tasks, err := repo.GetAll(&dto.TaskFilters{})
		if err != nil {
			log.Fatalf("Failed to load tasks: %v", err)
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(tasks); err != nil {
			log.Fatalf("Failed to encode tasks: %v", err)
		}
		return
	}

	total, err := repo.GetTotalCount(&dto.TaskFilters{})
	if err != nil {
		log.Fatalf("Failed to count tasks: %v", err)
	}

	fmt.Printf("Database %s ready\n", *dbPath)
	fmt.Printf("Stored tasks: %d\n", total)
	for _, department := range []string{"cleaning", "spill"} {
		count, err := repo.GetTotalCount(&dto.TaskFilters{Department: department})
		if err != nil {
			continue
		}
		fmt.Printf("   - %s: %d\n", department, count)
	}
}
