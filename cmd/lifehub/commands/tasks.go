package commands

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/lifehub/core/internal/domain/entities"
	"github.com/lifehub/core/internal/ports"
)

// NewTaskCommand creates the task management command
func NewTaskCommand() *cobra.Command {
	taskCmd := &cobra.Command{
		Use:   "task",
		Short: "Task management commands",
		Long:  "List, create, complete and delete tasks",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Run: func(cmd *cobra.Command, args []string) {
			status, _ := cmd.Flags().GetString("status")
			tag, _ := cmd.Flags().GetString("tag")
			search, _ := cmd.Flags().GetString("search")
			overdue, _ := cmd.Flags().GetBool("overdue")
			listTasks(status, tag, search, overdue)
		},
	}
	listCmd.Flags().String("status", "", "Filter by status (todo, in_progress, completed)")
	listCmd.Flags().String("tag", "", "Filter by tag")
	listCmd.Flags().String("search", "", "Filter by title substring")
	listCmd.Flags().Bool("overdue", false, "Show only overdue tasks")
	taskCmd.AddCommand(listCmd)

	addCmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a new task",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			priority, _ := cmd.Flags().GetString("priority")
			due, _ := cmd.Flags().GetString("due")
			tags, _ := cmd.Flags().GetStringSlice("tags")
			description, _ := cmd.Flags().GetString("description")
			addTask(strings.Join(args, " "), priority, due, description, tags)
		},
	}
	addCmd.Flags().String("priority", "medium", "Priority (low, medium, high)")
	addCmd.Flags().String("due", "", "Due date (YYYY-MM-DD)")
	addCmd.Flags().StringSlice("tags", nil, "Comma-separated tags")
	addCmd.Flags().String("description", "", "Task description")
	taskCmd.AddCommand(addCmd)

	taskCmd.AddCommand(&cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task completed",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			completeTask(args[0])
		},
	})

	taskCmd.AddCommand(&cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			deleteTask(args[0])
		},
	})

	return taskCmd
}

func listTasks(status, tag, search string, overdueOnly bool) {
	app, err := newApp()
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer app.Close()

	ctx := context.Background()

	var tasks []entities.Task
	if overdueOnly {
		tasks, err = app.Tasks.OverdueTasks(ctx)
	} else {
		filter := ports.TaskFilter{}
		if status != "" {
			s := entities.TaskStatus(status)
			if !s.IsValid() {
				log.Fatalf("Invalid status %q", status)
			}
			filter.Status = &s
		}
		if tag != "" {
			filter.Tag = &tag
		}
		if search != "" {
			filter.Search = &search
		}
		tasks, err = app.Tasks.ListTasks(ctx, filter)
	}
	if err != nil {
		log.Fatalf("Failed to list tasks: %v", err)
	}

	w := newTabWriter()
	fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tPRIORITY\tDUE\tTAGS")
	for _, t := range tasks {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			t.ID, t.Title, t.Status, t.Priority,
			formatOptTime(t.DueDate), strings.Join(t.Tags, ","))
	}
	w.Flush()
}

func addTask(title, priority, due, description string, tags []string) {
	app, err := newApp()
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer app.Close()

	req := ports.CreateTaskRequest{
		Title:    title,
		Priority: entities.Priority(priority),
		Tags:     tags,
	}
	if description != "" {
		req.Description = &description
	}
	if due != "" {
		d, err := time.ParseInLocation(entities.DayLayout, due, time.Local)
		if err != nil {
			log.Fatalf("Invalid due date %q: expected YYYY-MM-DD", due)
		}
		req.DueDate = &d
	}

	task, err := app.Tasks.CreateTask(context.Background(), req)
	if err != nil {
		log.Fatalf("Failed to create task: %v", err)
	}
	fmt.Printf("Created task %s: %s\n", task.ID, task.Title)
}

func completeTask(id string) {
	taskID := parseID(id)

	app, err := newApp()
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer app.Close()

	task, err := app.Tasks.CompleteTask(context.Background(), taskID)
	if err != nil {
		log.Fatalf("Failed to complete task: %v", err)
	}
	fmt.Printf("Completed task %s: %s\n", task.ID, task.Title)
}

func deleteTask(id string) {
	taskID := parseID(id)

	app, err := newApp()
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer app.Close()

	if err := app.Tasks.DeleteTask(context.Background(), taskID); err != nil {
		log.Fatalf("Failed to delete task: %v", err)
	}
	fmt.Printf("Deleted task %s\n", taskID)
}

func parseID(s string) uuid.UUID {
	id, err := uuid.Parse(s)
	if err != nil {
		log.Fatalf("Invalid id %q", s)
	}
	return id
}
