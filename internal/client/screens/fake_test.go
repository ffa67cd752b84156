package screens

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/requestdesk/internal/client/models"
	"github.com/dmitrijs2005/requestdesk/internal/client/state"
	"github.com/dmitrijs2005/requestdesk/internal/clock"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// fakeClient implements client.Client for the screen tests. It is safe for
// use from poller goroutines.
type fakeClient struct {
	mu sync.Mutex

	LoginRet models.Identity
	LoginErr error

	Settings    models.Profile
	SettingsErr error

	Orders       []models.Order
	OrdersErr    error
	OrderFilters []models.Filter
	Created      []models.NewOrder
	OrderPatches map[models.ID]models.Patch

	Tickets       []models.Ticket
	TicketFilters []models.Filter
	NewTickets    []models.NewTicket
	TicketPatches map[models.ID]models.Patch
	CreateErr     error
}

func (f *fakeClient) Login(context.Context, models.Credentials) (models.Identity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) GetSettings(context.Context) (models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Settings, f.SettingsErr
}

func (f *fakeClient) SaveSettings(_ context.Context, p models.Profile) (models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Settings = p
	return p, nil
}

func (f *fakeClient) GetOrders(_ context.Context, filter models.Filter) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.OrderFilters = append(f.OrderFilters, filter)
	if f.OrdersErr != nil {
		return nil, f.OrdersErr
	}
	return append([]models.Order(nil), f.Orders...), nil
}

func (f *fakeClient) CreateOrder(_ context.Context, o models.NewOrder) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.CreateErr != nil {
		return nil, f.CreateErr
	}
	f.Created = append(f.Created, o)
	return &models.Order{
		ID: "new-order", Item: o.Item, Quantity: o.Quantity, Note: o.Note,
		Sector: o.Sector, NameOrStore: o.NameOrStore, Status: models.StatusOpen,
	}, nil
}

func (f *fakeClient) UpdateOrder(_ context.Context, id models.ID, p models.Patch) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.OrderPatches == nil {
		f.OrderPatches = map[models.ID]models.Patch{}
	}
	f.OrderPatches[id] = p
	return &models.Order{ID: id}, nil
}

func (f *fakeClient) GetTickets(_ context.Context, filter models.Filter) ([]models.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.TicketFilters = append(f.TicketFilters, filter)
	return append([]models.Ticket(nil), f.Tickets...), nil
}

func (f *fakeClient) CreateTicket(_ context.Context, t models.NewTicket) (*models.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.CreateErr != nil {
		return nil, f.CreateErr
	}
	f.NewTickets = append(f.NewTickets, t)
	return &models.Ticket{ID: "new-ticket", Title: t.Title, Status: models.StatusOpen}, nil
}

func (f *fakeClient) UpdateTicket(_ context.Context, id models.ID, p models.Patch) (*models.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.TicketPatches == nil {
		f.TicketPatches = map[models.ID]models.Patch{}
	}
	f.TicketPatches[id] = p
	return &models.Ticket{ID: id}, nil
}

func (f *fakeClient) Health(context.Context) error { return nil }

func (f *fakeClient) orderFilters() []models.Filter {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Filter(nil), f.OrderFilters...)
}

func (f *fakeClient) orderPatch(id models.ID) (models.Patch, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.OrderPatches[id]
	return p, ok
}

// testDeps returns deps wired to fc and a fake clock, with the given user
// and profile already in the state.
func testDeps(fc *fakeClient, user *models.Identity, p models.Profile) (Deps, *clock.FakeClock) {
	clk := clock.Fake(epoch)
	st := state.NewStore(state.State{User: user, Settings: p})
	return Deps{
		Client:       fc,
		Store:        st,
		Clock:        clk,
		PollInterval: time.Hour,
		Debounce:     350 * time.Millisecond,
		PageSize:     2,
	}.withDefaults(), clk
}

func identity(r models.Role) *models.Identity {
	return &models.Identity{Role: r, Email: "user@test"}
}

func sampleOrders(n int) []models.Order {
	out := make([]models.Order, n)
	statuses := models.Statuses
	for i := range out {
		out[i] = models.Order{
			ID:          models.ID("order-" + string(rune('a'+i))),
			Item:        "item " + string(rune('a'+i)),
			Quantity:    i + 1,
			Sector:      []string{"TI", "RH"}[i%2],
			NameOrStore: []string{"Ana", "Bruno", "Carla"}[i%3],
			Status:      statuses[i%len(statuses)],
		}
	}
	return out
}
