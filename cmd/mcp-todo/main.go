// Command mcp-todo provides an MCP server for task management.
//
// This server exposes tools for creating, listing, completing, and
// reminding about tasks stored in the same SQLite database the todo
// app uses.
//
// Usage:
//
//	./mcp-todo          # Start MCP server (stdio)
//	./mcp-todo --help   # Show help
//
// Environment:
//
//	TODO_DB_PATH  Path to SQLite database (default: ~/.todo-desktop/tasks.db)
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/server"

	"github.com/dianyike/Todo-Desktop/internal/task"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--help", "-h":
			printHelp()
			return
		}
	}

	dbPath := os.Getenv("TODO_DB_PATH")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to get home directory: %v\n", err)
			os.Exit(1)
		}
		dbPath = filepath.Join(home, ".todo-desktop", "tasks.db")
	}

	store, err := task.NewStore(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	s := task.NewServer(store)

	if err := server.ServeStdio(s.MCPServer()); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println(`MCP Todo Server - Task management via MCP protocol

USAGE:
    mcp-todo          Start MCP server (communicates via stdio)
    mcp-todo --help   Show this help

ENVIRONMENT:
    TODO_DB_PATH  Path to SQLite database file
                  Default: ~/.todo-desktop/tasks.db

TOOLS:
    add_task          Add a task (title, category, remind_time, remind_date)
    list_tasks        List tasks (category/status/search filters)
    complete_task     Mark a task as completed
    uncomplete_task   Mark a task as pending again
    delete_task       Delete a task permanently
    set_reminder      Set or change a task's reminder time
    clear_reminder    Remove a task's reminder time
    get_upcoming_reminders  Pending tasks firing within a window (default 24h)
    clear_completed   Delete every completed task
    task_stats        Task counts and per-category breakdown`)
}
