package screens

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/requestdesk/internal/client/guard"
	"github.com/dmitrijs2005/requestdesk/internal/client/models"
	"github.com/dmitrijs2005/requestdesk/internal/client/state"
)

// OrderForm lets a materials requester submit an order. Sector and
// name/store come from the profile.
type OrderForm struct {
	*form
	d Deps
}

func NewOrderForm(d Deps) *OrderForm {
	return &OrderForm{
		d: d.withDefaults(),
		form: newForm(
			fieldSpec{name: "item", label: "Item", required: true},
			fieldSpec{name: "quantity", label: "Quantity"},
			fieldSpec{name: "note", label: "Note"},
		),
	}
}

func (s *OrderForm) Path() guard.Path { return guard.PathOrderNew }
func (s *OrderForm) Title() string    { return "New order" }

func (s *OrderForm) Mount(context.Context) { s.setMounted(true) }
func (s *OrderForm) Unmount()              { s.setMounted(false) }

// parseQuantity falls back to 1 for empty, non-numeric or non-positive input.
func parseQuantity(v string) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n <= 0 {
		return 1
	}
	return n
}

// Submit creates the order, prepends it to the state's orders and clears the
// form. The screen stays where it is.
func (s *OrderForm) Submit(ctx context.Context) (guard.Path, error) {
	if err := s.validate(); err != nil {
		return "", err
	}
	p := s.d.Store.Snapshot().Settings
	if !p.Complete() {
		err := validationError("complete your profile in Settings first")
		s.fail(err, "")
		return "", err
	}

	o := models.NewOrder{
		Item:        strings.TrimSpace(s.get("item")),
		Quantity:    parseQuantity(s.get("quantity")),
		Note:        strings.TrimSpace(s.get("note")),
		Sector:      p.Sector,
		NameOrStore: p.NameOrStore,
	}

	created, err := s.d.Client.CreateOrder(ctx, o)
	if err != nil {
		s.fail(err, "could not create the order")
		return "", err
	}
	if created != nil {
		s.d.Store.Dispatch(state.AddOrder{Order: *created})
	}

	s.reset()
	s.succeed(fmt.Sprintf("Order sent: %d x %s", o.Quantity, o.Item))
	return "", nil
}

func (s *OrderForm) Render(w io.Writer) {
	p := s.d.Store.Snapshot().Settings
	s.render(w, s.d.Theme, s.Title(),
		fmt.Sprintf("Sector: %s  Name/Store: %s", p.Sector, p.NameOrStore),
		"Quantity defaults to 1.")
}
