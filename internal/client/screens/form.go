package screens

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrijs2005/requestdesk/internal/client/client"
)

// fieldSpec describes one form field.
type fieldSpec struct {
	name     string
	label    string
	required bool
	secret   bool
}

// form is the local state shared by every form screen.
type form struct {
	specs []fieldSpec

	mu      sync.Mutex
	mounted bool
	values  map[string]string
	err     string
	notice  string
}

func newForm(specs ...fieldSpec) *form {
	return &form{specs: specs, values: make(map[string]string, len(specs))}
}

func (f *form) Fields() []string {
	names := make([]string, len(f.specs))
	for i, s := range f.specs {
		names[i] = s.name
	}
	return names
}

func (f *form) spec(name string) (fieldSpec, bool) {
	i := slices.IndexFunc(f.specs, func(s fieldSpec) bool { return strings.EqualFold(s.name, name) })
	if i < 0 {
		return fieldSpec{}, false
	}
	return f.specs[i], true
}

func (f *form) Set(field, value string) error {
	s, ok := f.spec(field)
	if !ok {
		return fmt.Errorf("%w: %s (fields: %s)", ErrUnknownField, field, strings.Join(f.Fields(), ", "))
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[s.name] = value
	f.notice = ""
	return nil
}

func (f *form) get(name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[name]
}

// fillEmpty sets name only if the user has not typed anything there yet.
func (f *form) fillEmpty(name, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fillLocked(f.values, name, value)
}

func fillLocked(values map[string]string, name, value string) {
	if strings.TrimSpace(values[name]) == "" {
		values[name] = value
	}
}

func clientMessage(err error, fallback string) string {
	return client.Message(err, fallback)
}

func (f *form) clearField(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.values, name)
}

func (f *form) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	clear(f.values)
}

// validate checks the required fields and records the failure for display.
func (f *form) validate() error {
	var missing []string
	f.mu.Lock()
	for _, s := range f.specs {
		if s.required && strings.TrimSpace(f.values[s.name]) == "" {
			missing = append(missing, s.label)
		}
	}
	f.mu.Unlock()

	if len(missing) == 0 {
		return nil
	}
	err := validationError(strings.Join(missing, ", ") + " required")
	f.fail(err, "")
	return err
}

func (f *form) fail(err error, fallback string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = clientMessage(err, fallback)
	f.notice = ""
}

func (f *form) succeed(notice string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = ""
	f.notice = notice
}

// Err is the message of the last failure, if any.
func (f *form) Err() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// Notice is the message of the last success, if any.
func (f *form) Notice() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.notice
}

func (f *form) setMounted(v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mounted = v
}

func (f *form) render(w io.Writer, t Theme, title string, extra ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	fmt.Fprintln(w, t.title(title))
	for _, s := range f.specs {
		v := f.values[s.name]
		switch {
		case s.secret && v != "":
			v = strings.Repeat("*", len(v))
		case v == "":
			v = t.faint("(empty)")
		}
		mark := " "
		if s.required {
			mark = "*"
		}
		fmt.Fprintf(w, "%s %-14s %s\n", mark, s.label, v)
	}
	for _, line := range extra {
		fmt.Fprintln(w, t.faint(line))
	}
	if f.err != "" {
		fmt.Fprintln(w, t.errorLine(f.err))
	}
	if f.notice != "" {
		fmt.Fprintln(w, t.notice(f.notice))
	}
}
