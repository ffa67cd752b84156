package models

import "strings"

// Identity is who is logged in. The role comes from the server's login
// response and is never derived locally.
type Identity struct {
	Role  Role   `json:"role"`
	Email string `json:"email,omitempty"`
}

// Profile is the requester's self-declared sector and name or store.
type Profile struct {
	Sector      string `json:"sector"`
	NameOrStore string `json:"nameOrStore"`
}

// Complete reports whether both fields are non-empty.
func (p Profile) Complete() bool {
	return strings.TrimSpace(p.Sector) != "" && strings.TrimSpace(p.NameOrStore) != ""
}

// Credentials are sent to the login endpoint.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Sectors is the list of known sectors offered on the settings screen.
var Sectors = []string{
	"ESC", "SMA", "COS", "IGU", "VOT", "ARA", "MAI", "SAP", "AST", "CAR", "ASC", "COM",
	"CID", "CPK", "TAU", "TZN", "EDE", "VD", "ERS", "ERN", "FINANCEIRO", "RH", "TI",
	"COMERCIAL", "LOGISTICA", "MARKETING",
}
