package commands

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/lifehub/core/internal/domain/entities"
	"github.com/lifehub/core/internal/ports"
)

// NewHabitCommand creates the habit management command
func NewHabitCommand() *cobra.Command {
	habitCmd := &cobra.Command{
		Use:   "habit",
		Short: "Habit tracking commands",
		Long:  "Track recurring habits and daily check-ins",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List habits with their streaks",
		Run: func(cmd *cobra.Command, args []string) {
			archived, _ := cmd.Flags().GetBool("archived")
			listHabits(archived)
		},
	}
	listCmd.Flags().Bool("archived", false, "Include archived habits")
	habitCmd.AddCommand(listCmd)

	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a new habit",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			frequency, _ := cmd.Flags().GetString("frequency")
			target, _ := cmd.Flags().GetInt("target")
			color, _ := cmd.Flags().GetString("color")
			addHabit(args[0], frequency, target, color)
		},
	}
	addCmd.Flags().String("frequency", "daily", "Frequency (daily, weekly)")
	addCmd.Flags().Int("target", 0, "Target check-ins per week (weekly habits)")
	addCmd.Flags().String("color", "", "Display color (hex)")
	habitCmd.AddCommand(addCmd)

	doneCmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Record a check-in for a habit",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			day, _ := cmd.Flags().GetString("day")
			note, _ := cmd.Flags().GetString("note")
			completeHabit(args[0], day, note)
		},
	}
	doneCmd.Flags().String("day", "", "Check-in day (YYYY-MM-DD, default today)")
	doneCmd.Flags().String("note", "", "Optional note")
	habitCmd.AddCommand(doneCmd)

	habitCmd.AddCommand(&cobra.Command{
		Use:   "archive <id>",
		Short: "Archive a habit, keeping its history",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			archiveHabit(args[0])
		},
	})

	habitCmd.AddCommand(&cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a habit and its history",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			deleteHabit(args[0])
		},
	})

	return habitCmd
}

func listHabits(includeArchived bool) {
	app, err := newApp()
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer app.Close()

	ctx := context.Background()
	habits, err := app.Habits.ListHabits(ctx, includeArchived)
	if err != nil {
		log.Fatalf("Failed to list habits: %v", err)
	}

	streaks, err := app.Habits.Streaks(ctx)
	if err != nil {
		log.Fatalf("Failed to compute streaks: %v", err)
	}

	w := newTabWriter()
	fmt.Fprintln(w, "ID\tNAME\tFREQUENCY\tTARGET/WK\tSTREAK\tBEST")
	for _, h := range habits {
		streak := streaks[h.ID]
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\n",
			h.ID, h.Name, h.Frequency, h.WeeklyTarget(), streak.Current, streak.Longest)
	}
	w.Flush()
}

func addHabit(name, frequency string, target int, color string) {
	app, err := newApp()
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer app.Close()

	req := ports.CreateHabitRequest{
		Name:          name,
		Frequency:     entities.HabitFrequency(frequency),
		TargetPerWeek: target,
		Color:         color,
	}

	habit, err := app.Habits.CreateHabit(context.Background(), req)
	if err != nil {
		log.Fatalf("Failed to create habit: %v", err)
	}
	fmt.Printf("Created habit %s: %s\n", habit.ID, habit.Name)
}

func completeHabit(id, day, note string) {
	habitID := parseID(id)

	app, err := newApp()
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer app.Close()

	var when time.Time
	if day != "" {
		when, err = time.ParseInLocation(entities.DayLayout, day, time.Local)
		if err != nil {
			log.Fatalf("Invalid day %q: expected YYYY-MM-DD", day)
		}
	}

	var notePtr *string
	if note != "" {
		notePtr = &note
	}

	completion, err := app.Habits.CompleteHabit(context.Background(), habitID, when, notePtr)
	if err != nil {
		log.Fatalf("Failed to record check-in: %v", err)
	}
	fmt.Printf("Checked in %s for %s\n", completion.Day, habitID)
}

func archiveHabit(id string) {
	habitID := parseID(id)

	app, err := newApp()
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer app.Close()

	habit, err := app.Habits.ArchiveHabit(context.Background(), habitID)
	if err != nil {
		log.Fatalf("Failed to archive habit: %v", err)
	}
	fmt.Printf("Archived habit %s: %s\n", habit.ID, habit.Name)
}

func deleteHabit(id string) {
	habitID := parseID(id)

	app, err := newApp()
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer app.Close()

	if err := app.Habits.DeleteHabit(context.Background(), habitID); err != nil {
		log.Fatalf("Failed to delete habit: %v", err)
	}
	fmt.Printf("Deleted habit %s\n", habitID)
}
