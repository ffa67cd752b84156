// Package guard decides, for every navigation, whether a screen may be shown
// for the current identity and profile, and where to go instead.
package guard

import (
	"slices"

	"github.com/dmitrijs2005/requestdesk/internal/client/models"
)

// Path identifies a screen.
type Path string

const (
	PathLogin       Path = "/login"
	PathSettings    Path = "/settings"
	PathOrderNew    Path = "/orders/new"
	PathOrdersMine  Path = "/orders/mine"
	PathOrders      Path = "/orders"
	PathTiHelp      Path = "/ti/help"
	PathTicketsMine Path = "/ti/tickets/mine"
	PathTickets     Path = "/ti/tickets"
	PathDashboard   Path = "/dashboard"
)

// Route is the reachability requirement of one path.
type Route struct {
	Path Path
	// Public routes need no identity.
	Public bool
	// Roles allowed to open the route. Empty means any authenticated role.
	Roles []models.Role
	// NeedsProfile requires a complete profile.
	NeedsProfile bool
}

func (r Route) allows(role models.Role) bool {
	return len(r.Roles) == 0 || slices.Contains(r.Roles, role)
}

var routes = []Route{
	{Path: PathLogin, Public: true},
	{Path: PathSettings},
	{Path: PathOrderNew, Roles: []models.Role{models.RoleRequesterMaterials}, NeedsProfile: true},
	{Path: PathOrdersMine, Roles: []models.Role{models.RoleRequesterMaterials}, NeedsProfile: true},
	{Path: PathOrders, Roles: []models.Role{models.RoleResponsibleMaterials}},
	{Path: PathTiHelp, Roles: []models.Role{models.RoleRequesterIT}, NeedsProfile: true},
	{Path: PathTicketsMine, Roles: []models.Role{models.RoleRequesterIT}, NeedsProfile: true},
	{Path: PathTickets, Roles: []models.Role{models.RoleResponsibleIT}},
	{Path: PathDashboard, Roles: []models.Role{models.RoleResponsibleMaterials, models.RoleResponsibleIT}},
}

var defaults = map[models.Role]Path{
	models.RoleRequesterMaterials:   PathOrderNew,
	models.RoleRequesterIT:          PathTiHelp,
	models.RoleResponsibleMaterials: PathOrders,
	models.RoleResponsibleIT:        PathTickets,
}

// Routes returns a copy of the route table.
func Routes() []Route {
	return slices.Clone(routes)
}

// Lookup returns the route registered for p.
func Lookup(p Path) (Route, bool) {
	for _, r := range routes {
		if r.Path == p {
			return r, true
		}
	}
	return Route{}, false
}

// DefaultPath is the landing path of a role; Login for an absent or
// unknown role.
func DefaultPath(role models.Role) Path {
	if p, ok := defaults[role]; ok {
		return p
	}
	return PathLogin
}

// Reachable lists the paths a role may open, in table order, ignoring
// profile completeness.
func Reachable(role models.Role) []Path {
	var out []Path
	for _, r := range routes {
		if r.Public || !r.allows(role) {
			continue
		}
		out = append(out, r.Path)
	}
	return out
}
