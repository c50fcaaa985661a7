package tickets

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/helpdesk-ai/helpdesk/internal/application/ticket/dto"
	"github.com/helpdesk-ai/helpdesk/internal/application/ticket/usecases"
	"github.com/helpdesk-ai/helpdesk/internal/domain/ticket"
	"github.com/helpdesk-ai/helpdesk/internal/infrastructure/config"
	"github.com/helpdesk-ai/helpdesk/internal/infrastructure/database"
	"github.com/helpdesk-ai/helpdesk/internal/infrastructure/repository"
	"github.com/helpdesk-ai/helpdesk/internal/shared/constants"
	"github.com/helpdesk-ai/helpdesk/internal/shared/logger"
	"github.com/helpdesk-ai/helpdesk/internal/shared/services/markdown"
)

var (
	env        string
	configPath string
	page       int
	pageSize   int
	source     string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tickets",
		Short: "Inspect stored tickets",
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", constants.EnvDevelopment, "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	cmd.AddCommand(newListCommand())

	return cmd
}

func newListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the newest tickets of both stores",
		RunE:  runList,
	}

	cmd.Flags().IntVar(&page, "page", constants.DefaultPage, "Page number")
	cmd.Flags().IntVar(&pageSize, "page-size", constants.DefaultPageSize, "Tickets per store and page")
	cmd.Flags().StringVar(&source, "source", "", "Limit to one store (text, image)")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(env, configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var ocrRepo ticket.OcrTicketRepository
	if strings.EqualFold(cfg.DocumentStore.Driver, "mongo") {
		store, err := database.ConnectMongo(ctx, &cfg.DocumentStore)
		if err != nil {
			return err
		}
		defer store.Close(context.Background())
		ocrRepo = repository.NewMongoOcrTicketRepository(store.Collection())
	} else {
		ocrRepo = repository.NewSQLOcrTicketRepository(database.Get())
	}

	listUC := usecases.NewListTicketsUseCase(
		repository.NewTicketRepository(database.Get()),
		ocrRepo,
		markdown.NewMarkdownService(),
		cfg.Server.BaseURL,
		logger.NewComponentLogger("cli.tickets"),
	)

	result, err := listUC.Execute(ctx, usecases.ListTicketsQuery{
		Page:     page,
		PageSize: pageSize,
		Source:   source,
	})
	if err != nil {
		return err
	}

	PrintListing(cmd.OutOrStdout(), result)
	return nil
}

// PrintListing writes a listing page as one tagged line per ticket.
func PrintListing(w io.Writer, list *dto.TicketListDTO) {
	items := make([]*dto.TicketListItemDTO, 0, len(list.TextTickets)+len(list.OcrTickets))
	items = append(items, list.TextTickets...)
	items = append(items, list.OcrTickets...)

	for _, item := range items {
		fmt.Fprintf(w, "%s %s %-10s %-8s %s\n",
			sourceTag(item.Source),
			item.CreatedAt,
			item.TicketType,
			priorityLabel(item.Priority),
			item.Subject,
		)
		if item.ResolutionStatus != "generated" {
			fmt.Fprintf(w, "    %s\n", color.RedString("resolution %s", item.ResolutionStatus))
		}
	}

	fmt.Fprintf(w, "\npage %d, %d tickets (text %d, image %d stored)\n",
		list.Page, list.Total, list.TextTotal, list.OcrTotal)
}

func sourceTag(source string) string {
	if source == "image" {
		return color.MagentaString("[image]")
	}
	return color.CyanString("[text] ")
}

func priorityLabel(priority string) string {
	switch strings.ToLower(priority) {
	case "high", "critical":
		return color.RedString("%-8s", priority)
	case "medium":
		return color.YellowString("%-8s", priority)
	default:
		return priority
	}
}
