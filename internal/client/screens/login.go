package screens

import (
	"context"
	"io"
	"strings"

	"github.com/dmitrijs2005/requestdesk/internal/client/guard"
)

// Login collects credentials and establishes the identity.
type Login struct {
	*form
	d Deps
}

func NewLogin(d Deps) *Login {
	return &Login{
		d: d.withDefaults(),
		form: newForm(
			fieldSpec{name: "email", label: "E-mail", required: true},
			fieldSpec{name: "password", label: "Password", required: true, secret: true},
		),
	}
}

func (s *Login) Path() guard.Path { return guard.PathLogin }
func (s *Login) Title() string    { return "Login" }

func (s *Login) Mount(context.Context) { s.setMounted(true) }
func (s *Login) Unmount()              { s.setMounted(false) }

// Submit logs in and returns the landing path of the returned role. The
// password is cleared whatever the outcome.
func (s *Login) Submit(ctx context.Context) (guard.Path, error) {
	if err := s.validate(); err != nil {
		return "", err
	}
	email, password := strings.TrimSpace(s.get("email")), s.get("password")
	defer s.clearField("password")

	id, err := s.d.Auth.Login(ctx, email, password)
	if err != nil {
		s.fail(err, "login failed")
		return "", err
	}
	s.succeed("Welcome, " + id.Email)
	return guard.DefaultPath(id.Role), nil
}

func (s *Login) Render(w io.Writer) {
	s.render(w, s.d.Theme, s.Title())
}
