package commands

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/lifehub/core/internal/ports"
)

// NewMoodCommand creates the mood tracking command
func NewMoodCommand() *cobra.Command {
	moodCmd := &cobra.Command{
		Use:   "mood",
		Short: "Mood tracking commands",
		Long:  "Record and review mood, energy and stress entries",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recent mood entries",
		Run: func(cmd *cobra.Command, args []string) {
			days, _ := cmd.Flags().GetInt("days")
			listMoodEntries(days)
		},
	}
	listCmd.Flags().Int("days", 7, "Lookback window in days")
	moodCmd.AddCommand(listCmd)

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Record a mood entry",
		Run: func(cmd *cobra.Command, args []string) {
			score, _ := cmd.Flags().GetInt("score")
			energy, _ := cmd.Flags().GetInt("energy")
			stress, _ := cmd.Flags().GetInt("stress")
			note, _ := cmd.Flags().GetString("note")
			weather, _ := cmd.Flags().GetString("weather")
			addMoodEntry(score, energy, stress, note, weather)
		},
	}
	addCmd.Flags().Int("score", 0, "Mood score 1-5 (required)")
	addCmd.Flags().Int("energy", 3, "Energy level 1-5")
	addCmd.Flags().Int("stress", 3, "Stress level 1-5")
	addCmd.Flags().String("note", "", "Optional note")
	addCmd.Flags().String("weather", "", "Weather tag (sunny, cloudy, rain, ...)")
	moodCmd.AddCommand(addCmd)

	triggerCmd := &cobra.Command{
		Use:   "trigger",
		Short: "Manage mood triggers",
	}
	triggerCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List triggers",
		Run: func(cmd *cobra.Command, args []string) {
			listTriggers()
		},
	})
	addTriggerCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a trigger",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			category, _ := cmd.Flags().GetString("category")
			addTrigger(args[0], category)
		},
	}
	addTriggerCmd.Flags().String("category", "", "Trigger category")
	triggerCmd.AddCommand(addTriggerCmd)
	triggerCmd.AddCommand(&cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a trigger",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			deleteTrigger(args[0])
		},
	})
	moodCmd.AddCommand(triggerCmd)

	return moodCmd
}

func listMoodEntries(days int) {
	app, err := newApp()
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer app.Close()

	since := time.Now().AddDate(0, 0, -days)
	entries, err := app.Moods.ListEntries(context.Background(), ports.MoodFilter{From: &since})
	if err != nil {
		log.Fatalf("Failed to list mood entries: %v", err)
	}

	w := newTabWriter()
	fmt.Fprintln(w, "RECORDED\tMOOD\tENERGY\tSTRESS\tWEATHER\tNOTE")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\t%s\n",
			formatTime(e.RecordedAt), e.Score, e.Energy, e.Stress,
			formatOptString(e.Weather), formatOptString(e.Note))
	}
	w.Flush()
}

func addMoodEntry(score, energy, stress int, note, weather string) {
	app, err := newApp()
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer app.Close()

	req := ports.CreateMoodEntryRequest{
		Score:      score,
		Energy:     energy,
		Stress:     stress,
		RecordedAt: time.Now(),
	}
	if note != "" {
		req.Note = &note
	}
	if weather != "" {
		req.Weather = &weather
	}

	entry, err := app.Moods.CreateEntry(context.Background(), req)
	if err != nil {
		log.Fatalf("Failed to record mood: %v", err)
	}
	fmt.Printf("Recorded mood %d/5 at %s\n", entry.Score, formatTime(entry.RecordedAt))
}

func listTriggers() {
	app, err := newApp()
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer app.Close()

	triggers, err := app.Moods.ListTriggers(context.Background())
	if err != nil {
		log.Fatalf("Failed to list triggers: %v", err)
	}

	w := newTabWriter()
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY")
	for _, tr := range triggers {
		fmt.Fprintf(w, "%s\t%s\t%s\n", tr.ID, tr.Name, tr.Category)
	}
	w.Flush()
}

func addTrigger(name, category string) {
	app, err := newApp()
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer app.Close()

	trigger, err := app.Moods.CreateTrigger(context.Background(), ports.CreateTriggerRequest{
		Name:     name,
		Category: category,
	})
	if err != nil {
		log.Fatalf("Failed to create trigger: %v", err)
	}
	fmt.Printf("Created trigger %s: %s\n", trigger.ID, trigger.Name)
}

func deleteTrigger(id string) {
	triggerID := parseID(id)

	app, err := newApp()
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer app.Close()

	if err := app.Moods.DeleteTrigger(context.Background(), triggerID); err != nil {
		log.Fatalf("Failed to delete trigger: %v", err)
	}
	fmt.Printf("Deleted trigger %s\n", triggerID)
}
