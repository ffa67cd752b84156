package screens

import (
	"context"
	"strconv"

	"github.com/dmitrijs2005/requestdesk/internal/client/guard"
	"github.com/dmitrijs2005/requestdesk/internal/client/models"
	"github.com/dmitrijs2005/requestdesk/internal/client/state"
)

const shortIDLen = 8

func shortID(id models.ID) string {
	s := string(id)
	if len(s) > shortIDLen {
		return s[:shortIDLen]
	}
	return s
}

func responseText(r *string) string {
	if r == nil {
		return "-"
	}
	return *r
}

func orderColumns(t Theme) []column[models.Order] {
	return []column[models.Order]{
		{"ID", func(o models.Order) string { return shortID(o.ID) }},
		{"Item", func(o models.Order) string { return o.Item }},
		{"Qty", func(o models.Order) string { return strconv.Itoa(o.Quantity) }},
		{"Note", func(o models.Order) string { return o.Note }},
		{"Sector", func(o models.Order) string { return o.Sector }},
		{"Name/Store", func(o models.Order) string { return o.NameOrStore }},
		{"Status", func(o models.Order) string { return t.status(o.Status) }},
		{"Response", func(o models.Order) string { return responseText(o.Response) }},
	}
}

func orderListConfig(d Deps, path guard.Path, title string) listConfig[models.Order] {
	return listConfig[models.Order]{
		path:    path,
		title:   title,
		fetch:   d.Client.GetOrders,
		loaded:  func(items []models.Order) { d.Store.Dispatch(state.SetOrders{Orders: items}) },
		columns: orderColumns(d.Theme),
	}
}

// NewOrderList is the materials-responsible view of every order. Status
// and response can be changed from it.
func NewOrderList(d Deps) *List[models.Order] {
	d = d.withDefaults()
	cfg := orderListConfig(d, guard.PathOrders, "All orders")
	cfg.update = func(ctx context.Context, id models.ID, p models.Patch) error {
		_, err := d.Client.UpdateOrder(ctx, id, p)
		return err
	}
	cfg.origin = func(o models.Order) (string, string) { return o.Sector, o.NameOrStore }
	return newList(d, cfg)
}

// NewMyOrders lists the orders of the logged-in requester's profile. It is
// read-only.
func NewMyOrders(d Deps) *List[models.Order] {
	d = d.withDefaults()
	cfg := orderListConfig(d, guard.PathOrdersMine, "My orders")
	cfg.fixed = profileFilter(d)
	return newList(d, cfg)
}

// profileFilter pins a requester's list to their own sector and name.
func profileFilter(d Deps) func() models.Filter {
	return func() models.Filter {
		p := d.Store.Snapshot().Settings
		return models.Filter{Sector: p.Sector, NameOrStore: p.NameOrStore}
	}
}
