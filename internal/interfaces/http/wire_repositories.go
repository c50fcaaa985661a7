package http

import (
	"gorm.io/gorm"

	"github.com/helpdesk-ai/helpdesk/internal/domain/ticket"
	"github.com/helpdesk-ai/helpdesk/internal/infrastructure/database"
	"github.com/helpdesk-ai/helpdesk/internal/infrastructure/repository"
)

// repositories holds the repository instances used by the application.
type repositories struct {
	ticketRepo    ticket.TicketRepository
	ocrTicketRepo ticket.OcrTicketRepository
}

// newRepositories keeps image tickets in Mongo when a document store is
// connected and in the relational database otherwise.
func newRepositories(db *gorm.DB, documents *database.MongoStore) *repositories {
	repos := &repositories{
		ticketRepo: repository.NewTicketRepository(db),
	}

	if documents != nil {
		repos.ocrTicketRepo = repository.NewMongoOcrTicketRepository(documents.Collection())
	} else {
		repos.ocrTicketRepo = repository.NewSQLOcrTicketRepository(db)
	}

	return repos
}
