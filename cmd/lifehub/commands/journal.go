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

// NewJournalCommand creates the journal command
func NewJournalCommand() *cobra.Command {
	journalCmd := &cobra.Command{
		Use:   "journal",
		Short: "Journal commands",
		Long:  "Write and browse dated journal entries",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List journal entries",
		Run: func(cmd *cobra.Command, args []string) {
			tag, _ := cmd.Flags().GetString("tag")
			search, _ := cmd.Flags().GetString("search")
			listJournal(tag, search)
		},
	}
	listCmd.Flags().String("tag", "", "Filter by tag")
	listCmd.Flags().String("search", "", "Filter by text")
	journalCmd.AddCommand(listCmd)

	journalCmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Print a journal entry",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			showJournal(args[0])
		},
	})

	addCmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Write a journal entry",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			content, _ := cmd.Flags().GetString("content")
			tags, _ := cmd.Flags().GetStringSlice("tags")
			mood, _ := cmd.Flags().GetInt("mood")
			date, _ := cmd.Flags().GetString("date")

			if content == "" {
				log.Fatal("Content is required")
			}
			addJournal(args[0], content, date, tags, mood)
		},
	}
	addCmd.Flags().String("content", "", "Entry body (required)")
	addCmd.Flags().StringSlice("tags", nil, "Comma-separated tags")
	addCmd.Flags().Int("mood", 0, "Optional mood rating 1-5")
	addCmd.Flags().String("date", "", "Entry date (YYYY-MM-DD, default today)")
	journalCmd.AddCommand(addCmd)

	journalCmd.AddCommand(&cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a journal entry",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			deleteJournal(args[0])
		},
	})

	return journalCmd
}

func listJournal(tag, search string) {
	app, err := newApp()
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer app.Close()

	filter := ports.JournalFilter{}
	if tag != "" {
		filter.Tag = &tag
	}
	if search != "" {
		filter.Search = &search
	}

	entries, err := app.Journal.ListEntries(context.Background(), filter)
	if err != nil {
		log.Fatalf("Failed to list journal entries: %v", err)
	}

	w := newTabWriter()
	fmt.Fprintln(w, "ID\tDATE\tTITLE\tMOOD")
	for _, e := range entries {
		mood := "-"
		if e.Mood != nil {
			mood = fmt.Sprintf("%d", *e.Mood)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.ID, e.EntryDate, e.Title, mood)
	}
	w.Flush()
}

func showJournal(id string) {
	entryID := parseID(id)

	app, err := newApp()
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer app.Close()

	entry, err := app.Journal.GetEntry(context.Background(), entryID)
	if err != nil {
		log.Fatalf("Failed to load entry: %v", err)
	}

	fmt.Printf("%s  (%s)\n\n%s\n", entry.Title, entry.EntryDate, entry.Content)
}

func addJournal(title, content, date string, tags []string, mood int) {
	app, err := newApp()
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer app.Close()

	if date == "" {
		date = time.Now().Format(entities.DayLayout)
	}

	req := ports.CreateJournalRequest{
		Title:     title,
		Content:   content,
		Tags:      tags,
		EntryDate: date,
	}
	if mood > 0 {
		req.Mood = &mood
	}

	entry, err := app.Journal.CreateEntry(context.Background(), req)
	if err != nil {
		log.Fatalf("Failed to create entry: %v", err)
	}
	fmt.Printf("Created journal entry %s: %s\n", entry.ID, entry.Title)
}

func deleteJournal(id string) {
	entryID := parseID(id)

	app, err := newApp()
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer app.Close()

	if err := app.Journal.DeleteEntry(context.Background(), entryID); err != nil {
		log.Fatalf("Failed to delete entry: %v", err)
	}
	fmt.Printf("Deleted journal entry %s\n", entryID)
}
