package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Role is the enumerated authorization role returned by the server at login.
type Role string

const (
	RoleRequesterMaterials   Role = "requester-materials"
	RoleResponsibleMaterials Role = "responsible-materials"
	RoleRequesterIT          Role = "requester-it"
	RoleResponsibleIT        Role = "responsible-it"
)

// Roles lists every valid role.
var Roles = []Role{RoleRequesterMaterials, RoleResponsibleMaterials, RoleRequesterIT, RoleResponsibleIT}

var ErrUnknownRole = errors.New("unknown role")

var roleAliases = map[string]Role{
	"solicitante":    RoleRequesterMaterials,
	"responsavel":    RoleResponsibleMaterials,
	"solicitante_ti": RoleRequesterIT,
	"responsavel_ti": RoleResponsibleIT,
}

// ParseRole maps a canonical or legacy role string to a Role.
func ParseRole(s string) (Role, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	for _, r := range Roles {
		if v == string(r) {
			return r, nil
		}
	}
	if r, ok := roleAliases[v]; ok {
		return r, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

// Valid reports whether r is one of the canonical roles.
func (r Role) Valid() bool {
	for _, v := range Roles {
		if r == v {
			return true
		}
	}
	return false
}

// IsResponsible reports whether the role triages requests rather than
// submitting them.
func (r Role) IsResponsible() bool {
	return r == RoleResponsibleMaterials || r == RoleResponsibleIT
}

// Domain is the request domain the role works in.
func (r Role) Domain() Domain {
	if r == RoleRequesterIT || r == RoleResponsibleIT {
		return DomainIT
	}
	return DomainMaterials
}

func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Domain separates material-supply orders from IT-support tickets.
type Domain string

const (
	DomainMaterials Domain = "materials"
	DomainIT        Domain = "it"
)
