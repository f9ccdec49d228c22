package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/lifehub/core/cmd/lifehub/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "lifehub",
		Short: "LifeHub personal dashboard client",
		Long:  `LifeHub is a command-line client for the LifeHub personal dashboard: tasks, habits, mood tracking, journaling and calendar, with cached reads and local backups.`,
	}

	// Add commands
	rootCmd.AddCommand(commands.NewTaskCommand())
	rootCmd.AddCommand(commands.NewHabitCommand())
	rootCmd.AddCommand(commands.NewMoodCommand())
	rootCmd.AddCommand(commands.NewJournalCommand())
	rootCmd.AddCommand(commands.NewCalendarCommand())
	rootCmd.AddCommand(commands.NewReportCommand())
	rootCmd.AddCommand(commands.NewExportCommand())
	rootCmd.AddCommand(commands.NewImportCommand())
	rootCmd.AddCommand(commands.NewBackupCommand())
	rootCmd.AddCommand(commands.NewPrefsCommand())
	rootCmd.AddCommand(commands.NewIntegrationCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
