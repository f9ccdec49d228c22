package commands

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/lifehub/core/internal/domain/entities"
	"github.com/lifehub/core/internal/ports"
)

// NewPrefsCommand creates the preferences command
func NewPrefsCommand() *cobra.Command {
	prefsCmd := &cobra.Command{
		Use:   "prefs",
		Short: "Preference commands",
		Long:  "Show and update server preferences and local UI state",
	}

	prefsCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print current preferences",
		Run: func(cmd *cobra.Command, args []string) {
			showPrefs()
		},
	})

	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Update preferences",
		Run: func(cmd *cobra.Command, args []string) {
			theme, _ := cmd.Flags().GetString("theme")
			view, _ := cmd.Flags().GetString("default-view")
			updatePrefs(cmd, theme, view)
		},
	}
	setCmd.Flags().String("theme", "", "Theme (light, dark, system)")
	setCmd.Flags().String("default-view", "", "Default view (dashboard, tasks, habits, mood, journal, calendar)")
	setCmd.Flags().Bool("week-starts-monday", false, "Start weeks on Monday")
	setCmd.Flags().Bool("notifications", false, "Enable notifications")
	prefsCmd.AddCommand(setCmd)

	themeCmd := &cobra.Command{
		Use:   "theme",
		Short: "Manage custom themes",
	}
	themeCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List custom themes",
		Run: func(cmd *cobra.Command, args []string) {
			listThemes()
		},
	})
	themeCmd.AddCommand(&cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a custom theme",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			deleteTheme(args[0])
		},
	})
	prefsCmd.AddCommand(themeCmd)

	return prefsCmd
}

func showPrefs() {
	app, err := newApp()
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer app.Close()

	ctx := context.Background()
	prefs, err := app.Preferences.GetPreferences(ctx)
	if err != nil {
		log.Fatalf("Failed to load preferences: %v", err)
	}

	localTheme, err := app.Preferences.LocalTheme(ctx)
	if err != nil {
		log.Fatalf("Failed to read local theme: %v", err)
	}

	w := newTabWriter()
	fmt.Fprintf(w, "Theme\t%s\n", prefs.Theme)
	fmt.Fprintf(w, "Local theme override\t%s\n", localTheme)
	fmt.Fprintf(w, "Default view\t%s\n", prefs.DefaultView)
	fmt.Fprintf(w, "Week starts Monday\t%t\n", prefs.WeekStartsMonday)
	fmt.Fprintf(w, "Notifications\t%t\n", prefs.Notifications)
	w.Flush()
}

func updatePrefs(cmd *cobra.Command, theme, view string) {
	app, err := newApp()
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer app.Close()

	req := ports.UpdatePreferencesRequest{}
	if theme != "" {
		mode := entities.ThemeMode(theme)
		req.Theme = &mode
	}
	if view != "" {
		req.DefaultView = &view
	}
	if cmd.Flags().Changed("week-starts-monday") {
		v, _ := cmd.Flags().GetBool("week-starts-monday")
		req.WeekStartsMonday = &v
	}
	if cmd.Flags().Changed("notifications") {
		v, _ := cmd.Flags().GetBool("notifications")
		req.Notifications = &v
	}

	ctx := context.Background()
	prefs, err := app.Preferences.UpdatePreferences(ctx, req)
	if err != nil {
		log.Fatalf("Failed to update preferences: %v", err)
	}

	// Mirror the theme locally so it applies before the next fetch.
	if req.Theme != nil {
		if err := app.Preferences.SetLocalTheme(ctx, *req.Theme); err != nil {
			log.Fatalf("Failed to persist local theme: %v", err)
		}
	}
	fmt.Printf("Preferences updated, theme %s\n", prefs.Theme)
}

func listThemes() {
	app, err := newApp()
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer app.Close()

	themes, err := app.Preferences.ListThemes(context.Background())
	if err != nil {
		log.Fatalf("Failed to list themes: %v", err)
	}

	w := newTabWriter()
	fmt.Fprintln(w, "ID\tNAME\tMODE\tCOLORS")
	for _, th := range themes {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", th.ID, th.Name, th.Mode, len(th.Colors))
	}
	w.Flush()
}

func deleteTheme(id string) {
	themeID := parseID(id)

	app, err := newApp()
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer app.Close()

	if err := app.Preferences.DeleteTheme(context.Background(), themeID); err != nil {
		log.Fatalf("Failed to delete theme: %v", err)
	}
	fmt.Printf("Deleted theme %s\n", themeID)
}
