package models

import (
	"encoding/json"
	"strings"
)

// Status is the lifecycle state shared by orders and tickets. The client
// does not constrain transitions.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

// Statuses lists the known statuses in lifecycle order.
var Statuses = []Status{StatusOpen, StatusInProgress, StatusDone}

var statusAliases = map[string]Status{
	"aberto":       StatusOpen,
	"em_andamento": StatusInProgress,
	"finalizado":   StatusDone,
	"in-progress":  StatusInProgress,
}

// ParseStatus maps a canonical or legacy status string. Unknown values are
// kept verbatim and reported with ok=false.
func ParseStatus(s string) (Status, bool) {
	v := strings.ToLower(strings.TrimSpace(s))
	for _, st := range Statuses {
		if v == string(st) {
			return st, true
		}
	}
	if st, ok := statusAliases[v]; ok {
		return st, true
	}
	return Status(s), false
}

func (s Status) Valid() bool {
	_, ok := ParseStatus(string(s))
	return ok
}

// Label is the human form, e.g. "in progress".
func (s Status) Label() string {
	return strings.ReplaceAll(string(s), "_", " ")
}

func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s, _ = ParseStatus(raw)
	return nil
}
