package commands

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/lifehub/core/internal/ports"
)

// NewCalendarCommand creates the calendar command
func NewCalendarCommand() *cobra.Command {
	calendarCmd := &cobra.Command{
		Use:   "calendar",
		Short: "Calendar commands",
		Long:  "Browse and manage calendar events",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List upcoming events",
		Run: func(cmd *cobra.Command, args []string) {
			days, _ := cmd.Flags().GetInt("days")
			listEvents(days)
		},
	}
	listCmd.Flags().Int("days", 7, "Lookahead window in days")
	calendarCmd.AddCommand(listCmd)

	addCmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create an event",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			start, _ := cmd.Flags().GetString("start")
			end, _ := cmd.Flags().GetString("end")
			location, _ := cmd.Flags().GetString("location")
			allDay, _ := cmd.Flags().GetBool("all-day")

			if start == "" || end == "" {
				log.Fatal("Start and end times are required")
			}
			addEvent(args[0], start, end, location, allDay)
		},
	}
	addCmd.Flags().String("start", "", "Start time (2006-01-02 15:04, required)")
	addCmd.Flags().String("end", "", "End time (2006-01-02 15:04, required)")
	addCmd.Flags().String("location", "", "Event location")
	addCmd.Flags().Bool("all-day", false, "All-day event")
	calendarCmd.AddCommand(addCmd)

	calendarCmd.AddCommand(&cobra.Command{
		Use:   "rm <id>",
		Short: "Delete an event",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			deleteEvent(args[0])
		},
	})

	return calendarCmd
}

const eventTimeLayout = "2006-01-02 15:04"

func listEvents(days int) {
	app, err := newApp()
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer app.Close()

	events, err := app.Calendar.UpcomingEvents(context.Background(), days)
	if err != nil {
		log.Fatalf("Failed to list events: %v", err)
	}

	w := newTabWriter()
	fmt.Fprintln(w, "ID\tTITLE\tSTART\tEND\tLOCATION")
	for _, e := range events {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			e.ID, e.Title, formatTime(e.StartTime), formatTime(e.EndTime),
			formatOptString(e.Location))
	}
	w.Flush()
}

func addEvent(title, start, end, location string, allDay bool) {
	app, err := newApp()
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer app.Close()

	startTime, err := time.ParseInLocation(eventTimeLayout, start, time.Local)
	if err != nil {
		log.Fatalf("Invalid start time %q: expected %s", start, eventTimeLayout)
	}
	endTime, err := time.ParseInLocation(eventTimeLayout, end, time.Local)
	if err != nil {
		log.Fatalf("Invalid end time %q: expected %s", end, eventTimeLayout)
	}

	req := ports.CreateEventRequest{
		Title:     title,
		StartTime: startTime,
		EndTime:   endTime,
		AllDay:    allDay,
	}
	if location != "" {
		req.Location = &location
	}

	event, err := app.Calendar.CreateEvent(context.Background(), req)
	if err != nil {
		log.Fatalf("Failed to create event: %v", err)
	}
	fmt.Printf("Created event %s: %s\n", event.ID, event.Title)
}

func deleteEvent(id string) {
	eventID := parseID(id)

	app, err := newApp()
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer app.Close()

	if err := app.Calendar.DeleteEvent(context.Background(), eventID); err != nil {
		log.Fatalf("Failed to delete event: %v", err)
	}
	fmt.Printf("Deleted event %s\n", eventID)
}
