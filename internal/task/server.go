package task

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/dianyike/Todo-Desktop/internal/reminder"
)

const (
	serverName    = "todo"
	serverVersion = "1.0.0"
)

// Server is the MCP server exposing task management tools.
type Server struct {
	mcpServer *server.MCPServer
	store     *Store
}

// NewServer creates a Todo MCP server backed by the given store.
func NewServer(store *Store) *Server {
	s := &Server{
		store: store,
	}

	s.mcpServer = server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(false),
	)

	s.registerTools()
	return s
}

// MCPServer returns the underlying MCP server for serving.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(
		mcp.NewTool("add_task",
			mcp.WithDescription("Add a new task with a title, optional category and optional reminder time"),
			mcp.WithString("title", mcp.Required(), mcp.Description("Task title")),
			mcp.WithString("category", mcp.Description("Category: general, work, life, study, health (default: general)")),
			mcp.WithString("remind_time", mcp.Description("Reminder time, e.g. 14:30 or 2:30 PM")),
			mcp.WithString("remind_date", mcp.Description("Reminder date as YYYY-MM-DD (default: today, rolling to tomorrow if the time already passed)")),
		),
		s.handleAddTask,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("list_tasks",
			mcp.WithDescription("List tasks, optionally filtered by category, status, or a title search"),
			mcp.WithString("category", mcp.Description("Filter by category")),
			mcp.WithString("status", mcp.Description("Filter by status: pending, completed, or empty for all")),
			mcp.WithString("search", mcp.Description("Case-insensitive title substring")),
		),
		s.handleListTasks,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("complete_task",
			mcp.WithDescription("Mark a task as completed"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Task ID")),
		),
		s.handleCompleteTask,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("uncomplete_task",
			mcp.WithDescription("Mark a completed task as pending again"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Task ID")),
		),
		s.handleUncompleteTask,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("delete_task",
			mcp.WithDescription("Delete a task permanently"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Task ID")),
		),
		s.handleDeleteTask,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("set_reminder",
			mcp.WithDescription("Set or change a task's reminder time"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Task ID")),
			mcp.WithString("time", mcp.Required(), mcp.Description("Time, e.g. 14:30, 2:30 PM or 14:30:00")),
			mcp.WithString("date", mcp.Description("Date as YYYY-MM-DD (default: today, rolling to tomorrow if already passed)")),
		),
		s.handleSetReminder,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("clear_reminder",
			mcp.WithDescription("Remove a task's reminder time"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Task ID")),
		),
		s.handleClearReminder,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("get_upcoming_reminders",
			mcp.WithDescription("List pending tasks whose reminder fires within the next hours"),
			mcp.WithNumber("hours", mcp.Description("Look-ahead window in hours (default: 24)")),
		),
		s.handleUpcomingReminders,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("clear_completed",
			mcp.WithDescription("Delete every completed task"),
		),
		s.handleClearCompleted,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("task_stats",
			mcp.WithDescription("Get task counts: total, pending, completed, with reminders, per category"),
		),
		s.handleTaskStats,
	)
}

func (s *Server) handleAddTask(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title := req.GetString("title", "")
	category := req.GetString("category", "")
	remindTime := req.GetString("remind_time", "")
	remindDate := req.GetString("remind_date", "")

	if title == "" {
		return mcp.NewToolResultError("title is required"), nil
	}

	t, err := New(title, category)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if remindTime != "" {
		at, ok := reminder.ParseReminderTime(remindTime, remindDate)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("invalid reminder time %q (use 14:30, 2:30 PM or 14:30:00, date as YYYY-MM-DD)", remindTime)), nil
		}
		t.RemindAt = &at
	}

	if err := s.store.Add(t); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to add task: %v", err)), nil
	}

	output, _ := json.MarshalIndent(t, "", "  ")
	return mcp.NewToolResultText(string(output)), nil
}

func (s *Server) handleListTasks(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	f := Filter{
		Category: req.GetString("category", ""),
		Search:   req.GetString("search", ""),
	}

	switch req.GetString("status", "") {
	case "":
	case "pending":
		completed := false
		f.Completed = &completed
	case "completed":
		completed := true
		f.Completed = &completed
	default:
		return mcp.NewToolResultError("status must be pending, completed, or empty"), nil
	}

	tasks, err := s.store.List(f)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list tasks: %v", err)), nil
	}

	if len(tasks) == 0 {
		return mcp.NewToolResultText("No tasks found."), nil
	}

	output, _ := json.MarshalIndent(tasks, "", "  ")
	return mcp.NewToolResultText(string(output)), nil
}

func (s *Server) handleCompleteTask(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}

	if err := s.store.Complete(id); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to complete task: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Task %s marked as completed.", id)), nil
}

func (s *Server) handleUncompleteTask(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}

	if err := s.store.Uncomplete(id); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to uncomplete task: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Task %s is pending again.", id)), nil
}

func (s *Server) handleDeleteTask(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}

	if err := s.store.Delete(id); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to delete task: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Task %s deleted.", id)), nil
}

func (s *Server) handleSetReminder(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	timeStr := req.GetString("time", "")
	dateStr := req.GetString("date", "")

	if id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}
	if timeStr == "" {
		return mcp.NewToolResultError("time is required"), nil
	}

	at, ok := reminder.ParseReminderTime(timeStr, dateStr)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("invalid time %q (use 14:30, 2:30 PM or 14:30:00, date as YYYY-MM-DD)", timeStr)), nil
	}

	if err := s.store.SetRemindAt(id, at); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to set reminder: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Reminder for task %s set to %s.", id, at.Format("2006-01-02 15:04"))), nil
}

func (s *Server) handleClearReminder(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}

	if err := s.store.ClearRemindAt(id); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to clear reminder: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Reminder cleared for task %s.", id)), nil
}

func (s *Server) handleUpcomingReminders(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	hours := req.GetFloat("hours", 24)
	if hours <= 0 {
		return mcp.NewToolResultError("hours must be positive"), nil
	}

	tasks, err := s.store.Upcoming(time.Duration(hours * float64(time.Hour)))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list reminders: %v", err)), nil
	}

	if len(tasks) == 0 {
		return mcp.NewToolResultText("No upcoming reminders."), nil
	}

	output, _ := json.MarshalIndent(tasks, "", "  ")
	return mcp.NewToolResultText(string(output)), nil
}

func (s *Server) handleClearCompleted(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	n, err := s.store.ClearCompleted()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to clear completed tasks: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Removed %d completed task(s).", n)), nil
}

func (s *Server) handleTaskStats(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st, err := s.store.Stats()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read stats: %v", err)), nil
	}

	output, _ := json.MarshalIndent(map[string]interface{}{
		"total":          st.Total,
		"pending":        st.Pending,
		"completed":      st.Completed,
		"with_reminders": st.WithRemind,
		"by_category":    st.ByCategory,
	}, "", "  ")
	return mcp.NewToolResultText(string(output)), nil
}
