package fakeapi

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrijs2005/requestdesk/internal/client/models"
	"github.com/dmitrijs2005/requestdesk/internal/clock"
	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation failed")
)

// User is a seeded account.
type User struct {
	Email    string
	Password string
	Role     models.Role
}

// DefaultUsers has one account per role, all with password "secret".
var DefaultUsers = []User{
	{Email: "requester@materials.test", Password: "secret", Role: models.RoleRequesterMaterials},
	{Email: "responsible@materials.test", Password: "secret", Role: models.RoleResponsibleMaterials},
	{Email: "requester@it.test", Password: "secret", Role: models.RoleRequesterIT},
	{Email: "responsible@it.test", Password: "secret", Role: models.RoleResponsibleIT},
}

// Store keeps everything in memory. Lists are kept newest first.
type Store struct {
	mu       sync.Mutex
	clock    clock.Clock
	users    map[string]User
	settings models.Profile
	orders   []models.Order
	tickets  []models.Ticket
}

func NewStore(c clock.Clock, users []User) *Store {
	if c == nil {
		c = clock.Real()
	}
	s := &Store{clock: c, users: make(map[string]User, len(users))}
	for _, u := range users {
		s.users[strings.ToLower(u.Email)] = u
	}
	return s
}

func (s *Store) Login(email, password string) (models.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[strings.ToLower(strings.TrimSpace(email))]
	if !ok || u.Password != password {
		return models.Identity{}, ErrInvalidCredentials
	}
	return models.Identity{Role: u.Role, Email: u.Email}, nil
}

func (s *Store) Settings() models.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

func (s *Store) SaveSettings(p models.Profile) (models.Profile, error) {
	p.Sector = strings.TrimSpace(p.Sector)
	p.NameOrStore = strings.TrimSpace(p.NameOrStore)
	if !p.Complete() {
		return models.Profile{}, fmt.Errorf("%w: sector and nameOrStore are required", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = p
	return p, nil
}

func (s *Store) Orders(f models.Filter) []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Order{}
	for _, o := range s.orders {
		if matches(f, o.Status, o.Sector, o.NameOrStore, o.Item, o.Note, deref(o.Response)) {
			out = append(out, o)
		}
	}
	return out
}

func (s *Store) CreateOrder(n models.NewOrder) (models.Order, error) {
	if strings.TrimSpace(n.Item) == "" {
		return models.Order{}, fmt.Errorf("%w: item is required", ErrValidation)
	}
	if n.Quantity <= 0 {
		return models.Order{}, fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}
	if strings.TrimSpace(n.Sector) == "" || strings.TrimSpace(n.NameOrStore) == "" {
		return models.Order{}, fmt.Errorf("%w: sector and nameOrStore are required", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	o := models.Order{
		ID:          models.ID(uuid.NewString()),
		Item:        strings.TrimSpace(n.Item),
		Quantity:    n.Quantity,
		Note:        n.Note,
		Sector:      n.Sector,
		NameOrStore: n.NameOrStore,
		Status:      models.StatusOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.orders = slices.Insert(s.orders, 0, o)
	return o, nil
}

func (s *Store) UpdateOrder(id models.ID, p models.Patch) (models.Order, error) {
	if err := validatePatch(&p); err != nil {
		return models.Order{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.orders, func(o models.Order) bool { return o.ID == id })
	if i < 0 {
		return models.Order{}, fmt.Errorf("%w: order %s", ErrNotFound, id)
	}
	o := &s.orders[i]
	applyPatch(p, &o.Status, &o.Response)
	o.UpdatedAt = s.clock.Now()
	return *o, nil
}

func (s *Store) Tickets(f models.Filter) []models.Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Ticket{}
	for _, t := range s.tickets {
		if matches(f, t.Status, t.Sector, t.NameOrStore, t.Title, t.Description, deref(t.Response)) {
			out = append(out, t)
		}
	}
	return out
}

func (s *Store) CreateTicket(n models.NewTicket) (models.Ticket, error) {
	if strings.TrimSpace(n.Title) == "" || strings.TrimSpace(n.Description) == "" {
		return models.Ticket{}, fmt.Errorf("%w: title and description are required", ErrValidation)
	}
	if strings.TrimSpace(n.Sector) == "" || strings.TrimSpace(n.NameOrStore) == "" {
		return models.Ticket{}, fmt.Errorf("%w: sector and nameOrStore are required", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	t := models.Ticket{
		ID:          models.ID(uuid.NewString()),
		Title:       strings.TrimSpace(n.Title),
		Description: n.Description,
		Sector:      n.Sector,
		NameOrStore: n.NameOrStore,
		Status:      models.StatusOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.tickets = slices.Insert(s.tickets, 0, t)
	return t, nil
}

func (s *Store) UpdateTicket(id models.ID, p models.Patch) (models.Ticket, error) {
	if err := validatePatch(&p); err != nil {
		return models.Ticket{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.tickets, func(t models.Ticket) bool { return t.ID == id })
	if i < 0 {
		return models.Ticket{}, fmt.Errorf("%w: ticket %s", ErrNotFound, id)
	}
	t := &s.tickets[i]
	applyPatch(p, &t.Status, &t.Response)
	t.UpdatedAt = s.clock.Now()
	return *t, nil
}

func validatePatch(p *models.Patch) error {
	if p.Empty() {
		return fmt.Errorf("%w: nothing to update", ErrValidation)
	}
	if p.Status != nil {
		st, ok := models.ParseStatus(string(*p.Status))
		if !ok {
			return fmt.Errorf("%w: unknown status %q", ErrValidation, *p.Status)
		}
		p.Status = &st
	}
	return nil
}

func applyPatch(p models.Patch, status *models.Status, response **string) {
	if p.Status != nil {
		*status = *p.Status
	}
	if p.Response != nil {
		r := *p.Response
		*response = &r
	}
}

// matches applies f: status, sector and nameOrStore match exactly (ignoring
// case), q is a case-insensitive substring of any of the text fields.
func matches(f models.Filter, status models.Status, sector, nameOrStore string, text ...string) bool {
	if f.Status != "" {
		want, _ := models.ParseStatus(string(f.Status))
		if status != want {
			return false
		}
	}
	if f.Sector != "" && !strings.EqualFold(f.Sector, sector) {
		return false
	}
	if f.NameOrStore != "" && !strings.EqualFold(f.NameOrStore, nameOrStore) {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Q)); q != "" {
		for _, s := range text {
			if strings.Contains(strings.ToLower(s), q) {
				return true
			}
		}
		return false
	}
	return true
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
