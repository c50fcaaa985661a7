package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/helpdesk-ai/helpdesk/internal/interfaces/cli/classify"
	"github.com/helpdesk-ai/helpdesk/internal/interfaces/cli/migrate"
	"github.com/helpdesk-ai/helpdesk/internal/interfaces/cli/server"
	"github.com/helpdesk-ai/helpdesk/internal/interfaces/cli/tickets"
)

// @title Helpdesk API
// @version 1.0
// @description Ticket intake with automatic classification, drafted resolutions and screenshot OCR.
// @BasePath /
func main() {
	rootCmd := &cobra.Command{
		Use:   "helpdesk",
		Short: "Helpdesk - AI assisted ticket intake",
		Long:  `Helpdesk classifies incoming support tickets, drafts a resolution for each, and reads the text out of attached screenshots.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		tickets.NewCommand(),
		classify.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
