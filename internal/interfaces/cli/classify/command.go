package classify

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/helpdesk-ai/helpdesk/internal/infrastructure/classifier"
	"github.com/helpdesk-ai/helpdesk/internal/infrastructure/config"
	"github.com/helpdesk-ai/helpdesk/internal/shared/constants"
	"github.com/helpdesk-ai/helpdesk/internal/shared/logger"
)

var (
	env        string
	configPath string
	subject    string
	body       string
)

// NewCommand runs the classifier offline so exported artifacts can be checked
// without a database or a language model.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify a ticket with the configured model artifacts",
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", constants.EnvDevelopment, "Environment (development, test, production)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().StringVar(&subject, "subject", "", "Ticket subject (required)")
	cmd.Flags().StringVar(&body, "body", "", "Ticket body (required)")
	_ = cmd.MarkFlagRequired("subject")
	_ = cmd.MarkFlagRequired("body")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(env, configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	clf, err := classifier.Load(cfg.Classifier, logger.NewComponentLogger("classifier"))
	if err != nil {
		return fmt.Errorf("failed to load classifier: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	result, err := clf.Classify(ctx, subject, body)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s\n", color.CyanString("ticket_type:"), result.Category)
	fmt.Fprintf(out, "%s %s\n", color.CyanString("priority:   "), result.Priority)
	return nil
}
