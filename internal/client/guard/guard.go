package guard

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/requestdesk/internal/client/models"
)

// Outcome is the state a navigation attempt ends in.
type Outcome int

const (
	Authorized Outcome = iota
	Unauthenticated
	WrongRole
	IncompleteProfile
	Unknown
)

func (o Outcome) String() string {
	switch o {
	case Authorized:
		return "authorized"
	case Unauthenticated:
		return "unauthenticated"
	case WrongRole:
		return "wrong-role"
	case IncompleteProfile:
		return "incomplete-profile"
	case Unknown:
		return "unknown-path"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Decision is the result of Decide. Redirect is set for every outcome but
// Authorized.
type Decision struct {
	Outcome  Outcome
	Path     Path
	Redirect Path
}

func (d Decision) Allowed() bool {
	return d.Outcome == Authorized
}

// Decide evaluates a navigation to path. It is a pure function of its
// arguments.
//
// Unauthenticated users go to Login. Authenticated users on a route of
// another role go to their own landing path. Users whose profile is
// incomplete go to Settings when the route needs it. Unknown paths resolve
// to the role's landing path, or Login without identity.
func Decide(user *models.Identity, profile models.Profile, path Path) Decision {
	route, ok := Lookup(path)
	if !ok {
		to := PathLogin
		if user != nil {
			to = DefaultPath(user.Role)
		}
		return Decision{Outcome: Unknown, Path: path, Redirect: to}
	}

	if route.Public {
		return Decision{Outcome: Authorized, Path: path}
	}
	if user == nil || !user.Role.Valid() {
		return Decision{Outcome: Unauthenticated, Path: path, Redirect: PathLogin}
	}
	if !route.allows(user.Role) {
		return Decision{Outcome: WrongRole, Path: path, Redirect: DefaultPath(user.Role)}
	}
	if route.NeedsProfile && !profile.Complete() {
		return Decision{Outcome: IncompleteProfile, Path: path, Redirect: PathSettings}
	}
	return Decision{Outcome: Authorized, Path: path}
}

// MaxHops bounds the redirect chain followed by Resolve.
const MaxHops = 4

var ErrRedirectLoop = errors.New("redirect loop")

// Resolve follows redirects from path until an authorized path is reached.
// It returns that path and the decisions taken on the way.
func Resolve(user *models.Identity, profile models.Profile, path Path) (Path, []Decision, error) {
	var trail []Decision
	for hop := 0; hop <= MaxHops; hop++ {
		d := Decide(user, profile, path)
		trail = append(trail, d)
		if d.Allowed() {
			return path, trail, nil
		}
		path = d.Redirect
	}
	return "", trail, fmt.Errorf("%w: gave up after %d hops", ErrRedirectLoop, MaxHops)
}
