package commands

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"
)

// NewReportCommand creates the dashboard report command
func NewReportCommand() *cobra.Command {
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Print the dashboard report",
		Long:  "Compute productivity, mood trends, correlations and streaks over a lookback window",
		Run: func(cmd *cobra.Command, args []string) {
			days, _ := cmd.Flags().GetInt("days")
			printReport(days)
		},
	}
	reportCmd.Flags().Int("days", 7, "Lookback window in days")
	return reportCmd
}

func printReport(days int) {
	app, err := newApp()
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer app.Close()

	report, err := app.Analytics.Dashboard(context.Background(), time.Duration(days)*24*time.Hour)
	if err != nil {
		log.Fatalf("Failed to compute report: %v", err)
	}

	fmt.Printf("Dashboard report, last %d days\n\n", days)
	fmt.Printf("Productivity score: %.0f/100\n", report.Productivity.Score)
	fmt.Printf("  Tasks completed:  %d/%d (%.0f%%)\n",
		report.Productivity.TasksCompleted, report.Productivity.TasksTotal,
		report.Productivity.TaskRate*100)
	fmt.Printf("  Habit check-ins:  %.0f%%\n", report.Productivity.HabitRate*100)
	fmt.Printf("  Overdue tasks:    %d\n\n", report.OverdueTasks)

	fmt.Printf("Mood: average %.1f/5, trend %s\n", report.MoodAverage, report.MoodTrend)
	fmt.Printf("  Mood/energy correlation: %+.2f\n", report.Correlations.MoodEnergy)
	fmt.Printf("  Mood/stress correlation: %+.2f\n\n", report.Correlations.MoodStress)

	if len(report.TriggerImpact) > 0 {
		w := newTabWriter()
		fmt.Fprintln(w, "TRIGGER\tIMPACT\tENTRIES")
		for _, ti := range report.TriggerImpact {
			fmt.Fprintf(w, "%s\t%+.2f\t%d\n", ti.TriggerName, ti.Delta, ti.Count)
		}
		w.Flush()
		fmt.Println()
	}

	if len(report.Streaks) > 0 {
		w := newTabWriter()
		fmt.Fprintln(w, "HABIT\tSTREAK\tBEST")
		for id, streak := range report.Streaks {
			fmt.Fprintf(w, "%s\t%d\t%d\n", id, streak.Current, streak.Longest)
		}
		w.Flush()
	}
}
