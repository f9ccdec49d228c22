package commands

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

// NewIntegrationCommand creates the external integration command
func NewIntegrationCommand() *cobra.Command {
	integrationCmd := &cobra.Command{
		Use:   "integration",
		Short: "External integration commands",
		Long:  "Connect, sync and disconnect external calendar providers",
	}

	integrationCmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show provider connection status",
		Run: func(cmd *cobra.Command, args []string) {
			integrationStatus()
		},
	})

	integrationCmd.AddCommand(&cobra.Command{
		Use:   "connect <provider>",
		Short: "Connect a provider",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			connectProvider(args[0])
		},
	})

	integrationCmd.AddCommand(&cobra.Command{
		Use:   "disconnect <provider>",
		Short: "Disconnect a provider",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			disconnectProvider(args[0])
		},
	})

	integrationCmd.AddCommand(&cobra.Command{
		Use:   "sync <provider>",
		Short: "Trigger a provider sync",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			syncProvider(args[0])
		},
	})

	return integrationCmd
}

func integrationStatus() {
	app, err := newApp()
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer app.Close()

	statuses, err := app.Integrations.Status(context.Background())
	if err != nil {
		log.Fatalf("Failed to fetch status: %v", err)
	}

	w := newTabWriter()
	fmt.Fprintln(w, "PROVIDER\tCONNECTED\tACCOUNT\tLAST SYNC")
	for _, s := range statuses {
		fmt.Fprintf(w, "%s\t%t\t%s\t%s\n",
			s.Provider, s.Connected, formatOptString(s.Account), formatOptTime(s.LastSyncAt))
	}
	w.Flush()
}

func connectProvider(provider string) {
	app, err := newApp()
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer app.Close()

	status, err := app.Integrations.Connect(context.Background(), provider)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	fmt.Printf("Connected %s (%s)\n", status.Provider, formatOptString(status.Account))
}

func disconnectProvider(provider string) {
	app, err := newApp()
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer app.Close()

	if err := app.Integrations.Disconnect(context.Background(), provider); err != nil {
		log.Fatalf("Failed to disconnect: %v", err)
	}
	fmt.Printf("Disconnected %s\n", provider)
}

func syncProvider(provider string) {
	app, err := newApp()
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer app.Close()

	status, err := app.Integrations.Sync(context.Background(), provider)
	if err != nil {
		log.Fatalf("Sync failed: %v", err)
	}
	fmt.Printf("Synced %s, last sync %s\n", status.Provider, formatOptTime(status.LastSyncAt))
}
