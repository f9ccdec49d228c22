package commands

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lifehub/core/internal/domain/entities"
	"github.com/lifehub/core/internal/ports"
)

// NewExportCommand creates the export command
func NewExportCommand() *cobra.Command {
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export data from the server",
		Long:  "Fetch a server-side export and write it to a file or store it as a local backup",
		Run: func(cmd *cobra.Command, args []string) {
			format, _ := cmd.Flags().GetString("format")
			sections, _ := cmd.Flags().GetStringSlice("sections")
			output, _ := cmd.Flags().GetString("output")
			backup, _ := cmd.Flags().GetBool("backup")
			note, _ := cmd.Flags().GetString("note")

			if output == "" && !backup {
				log.Fatal("Either --output or --backup is required")
			}
			runExport(format, sections, output, backup, note)
		},
	}
	exportCmd.Flags().String("format", "json", "Export format (json, csv, markdown)")
	exportCmd.Flags().StringSlice("sections", nil, "Sections to include (default all)")
	exportCmd.Flags().String("output", "", "Write the export to this file")
	exportCmd.Flags().Bool("backup", false, "Store the export as a local backup")
	exportCmd.Flags().String("note", "", "Note attached to the backup")
	return exportCmd
}

// NewImportCommand creates the import command
func NewImportCommand() *cobra.Command {
	importCmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a JSON export file into the server",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			runImport(args[0])
		},
	}
	return importCmd
}

// NewBackupCommand creates the local backup management command
func NewBackupCommand() *cobra.Command {
	backupCmd := &cobra.Command{
		Use:   "backup",
		Short: "Local backup commands",
		Long:  "List, restore, delete and prune locally stored export backups",
	}

	backupCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List stored backups",
		Run: func(cmd *cobra.Command, args []string) {
			listBackups()
		},
	})

	backupCmd.AddCommand(&cobra.Command{
		Use:   "restore <id>",
		Short: "Import a stored backup back into the server",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			restoreBackup(args[0])
		},
	})

	backupCmd.AddCommand(&cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a stored backup",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			deleteBackup(args[0])
		},
	})

	pruneCmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete all but the newest backups",
		Run: func(cmd *cobra.Command, args []string) {
			keep, _ := cmd.Flags().GetInt("keep")
			pruneBackups(keep)
		},
	}
	pruneCmd.Flags().Int("keep", 0, "Backups to keep (default from config)")
	backupCmd.AddCommand(pruneCmd)

	return backupCmd
}

func runExport(format string, sections []string, output string, backup bool, note string) {
	app, err := newApp()
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer app.Close()

	req := ports.ExportRequest{
		Format:   entities.ExportFormat(format),
		Sections: sections,
	}

	ctx := context.Background()
	if backup {
		meta, err := app.Transfer.ExportToBackup(ctx, req, note)
		if err != nil {
			log.Fatalf("Export failed: %v", err)
		}
		encrypted := ""
		if meta.Encrypted {
			encrypted = " (encrypted)"
		}
		fmt.Printf("Stored backup %s: %s, %d bytes%s\n", meta.ID, meta.Format, meta.SizeBytes, encrypted)
		return
	}

	if err := app.Transfer.ExportToFile(ctx, req, output); err != nil {
		log.Fatalf("Export failed: %v", err)
	}
	fmt.Printf("Exported %s to %s\n", format, output)
}

func runImport(path string) {
	app, err := newApp()
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer app.Close()

	summary, err := app.Transfer.ImportFromFile(context.Background(), path)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}
	printImportSummary(summary)
}

func listBackups() {
	app, err := newApp()
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer app.Close()

	backups, err := app.Transfer.ListBackups(context.Background())
	if err != nil {
		log.Fatalf("Failed to list backups: %v", err)
	}

	w := newTabWriter()
	fmt.Fprintln(w, "ID\tCREATED\tFORMAT\tSIZE\tENCRYPTED\tNOTE")
	for _, b := range backups {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%t\t%s\n",
			b.ID, formatTime(b.CreatedAt), b.Format, b.SizeBytes, b.Encrypted,
			formatOptString(b.Note))
	}
	w.Flush()
}

func restoreBackup(id string) {
	backupID := parseID(id)

	app, err := newApp()
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer app.Close()

	summary, err := app.Transfer.RestoreBackup(context.Background(), backupID)
	if err != nil {
		log.Fatalf("Restore failed: %v", err)
	}
	printImportSummary(summary)
}

func deleteBackup(id string) {
	backupID := parseID(id)

	app, err := newApp()
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer app.Close()

	if err := app.Transfer.DeleteBackup(context.Background(), backupID); err != nil {
		log.Fatalf("Failed to delete backup: %v", err)
	}
	fmt.Printf("Deleted backup %s\n", backupID)
}

func pruneBackups(keep int) {
	app, err := newApp()
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer app.Close()

	if keep <= 0 {
		keep = app.Config.Store.MaxBackups
	}

	removed, err := app.Transfer.PruneBackups(context.Background(), keep)
	if err != nil {
		log.Fatalf("Prune failed: %v", err)
	}
	fmt.Printf("Removed %d backups, kept the newest %d\n", removed, keep)
}

func printImportSummary(summary *ports.ImportSummary) {
	fmt.Printf("Imported %d tasks, %d habits, %d mood entries, %d journal entries, %d events (%d skipped)\n",
		summary.Tasks, summary.Habits, summary.Moods, summary.Journal, summary.Events, summary.Skipped)
	if len(summary.Warnings) > 0 {
		fmt.Printf("Warnings:\n  %s\n", strings.Join(summary.Warnings, "\n  "))
	}
}
