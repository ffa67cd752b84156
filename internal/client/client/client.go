package client

import (
	"context"

	"github.com/dmitrijs2005/requestdesk/internal/client/models"
)

// Client is the Remote Data Gateway: one method per domain operation of
// the backend REST API.
//
// Write methods return nil with a nil error when the server answers with an
// empty body; that is a valid "no content" result, not a failure.
type Client interface {
	Login(ctx context.Context, creds models.Credentials) (models.Identity, error)

	GetSettings(ctx context.Context) (models.Profile, error)
	SaveSettings(ctx context.Context, p models.Profile) (models.Profile, error)

	GetOrders(ctx context.Context, f models.Filter) ([]models.Order, error)
	CreateOrder(ctx context.Context, o models.NewOrder) (*models.Order, error)
	UpdateOrder(ctx context.Context, id models.ID, p models.Patch) (*models.Order, error)

	GetTickets(ctx context.Context, f models.Filter) ([]models.Ticket, error)
	CreateTicket(ctx context.Context, t models.NewTicket) (*models.Ticket, error)
	UpdateTicket(ctx context.Context, id models.ID, p models.Patch) (*models.Ticket, error)

	Health(ctx context.Context) error
}
