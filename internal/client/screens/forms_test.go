package screens

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/requestdesk/internal/client/client"
	"github.com/dmitrijs2005/requestdesk/internal/client/guard"
	"github.com/dmitrijs2005/requestdesk/internal/client/models"
)

var profile = models.Profile{Sector: "TI", NameOrStore: "Ana"}

func TestNew_KnownAndUnknownPaths(t *testing.T) {
	d, _ := testDeps(&fakeClient{}, identity(models.RoleResponsibleMaterials), profile)

	for _, r := range guard.Routes() {
		s, err := New(r.Path, d)
		require.NoError(t, err, r.Path)
		assert.Equal(t, r.Path, s.Path())
		assert.NotEmpty(t, s.Title())
	}

	_, err := New("/nope", d)
	require.ErrorIs(t, err, ErrNoScreen)
}

func TestLogin_RequiredFieldsNeverReachServer(t *testing.T) {
	fc := &fakeClient{LoginErr: assert.AnError}
	d, _ := testDeps(fc, nil, models.Profile{})
	s := NewLogin(d)

	require.NoError(t, s.Set("email", "a@b"))
	next, err := s.Submit(context.Background())
	require.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, next)
	assert.Contains(t, s.Err(), "Password")
	assert.Nil(t, d.Store.Snapshot().User)
}

func TestLogin_SuccessLandsOnRoleDefault(t *testing.T) {
	fc := &fakeClient{LoginRet: models.Identity{Role: models.RoleRequesterIT, Email: "it@test"}}
	d, _ := testDeps(fc, nil, models.Profile{})
	s := NewLogin(d)

	require.NoError(t, s.Set("email", "it@test"))
	require.NoError(t, s.Set("password", "secret"))
	next, err := s.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, guard.PathTiHelp, next)
	assert.Equal(t, models.RoleRequesterIT, d.Store.Snapshot().User.Role)
	assert.Empty(t, s.get("password"))
	assert.Contains(t, s.Notice(), "it@test")
}

func TestLogin_ServerErrorIsShownAndPasswordCleared(t *testing.T) {
	fc := &fakeClient{LoginErr: &client.RequestError{Kind: client.KindHTTP, Status: 401, Message: "Credenciais inválidas"}}
	d, _ := testDeps(fc, nil, models.Profile{})
	s := NewLogin(d)

	require.NoError(t, s.Set("email", "x@test"))
	require.NoError(t, s.Set("password", "bad"))
	_, err := s.Submit(context.Background())
	require.ErrorIs(t, err, client.ErrUnauthorized)

	assert.Equal(t, "Credenciais inválidas", s.Err())
	assert.Empty(t, s.get("password"))
	assert.Equal(t, "x@test", s.get("email"))

	var buf bytes.Buffer
	s.Render(&buf)
	assert.Contains(t, buf.String(), "Credenciais inválidas")
}

func TestForm_UnknownField(t *testing.T) {
	d, _ := testDeps(&fakeClient{}, nil, models.Profile{})
	err := NewLogin(d).Set("nope", "x")
	require.ErrorIs(t, err, ErrUnknownField)
}

func TestSettings_PrefillsFromServerWhenIncomplete(t *testing.T) {
	fc := &fakeClient{Settings: profile}
	changed := make(chan struct{}, 1)
	d, _ := testDeps(fc, identity(models.RoleRequesterMaterials), models.Profile{})
	d.OnChange = func() { changed <- struct{}{} }
	s := NewSettings(d)

	s.Mount(context.Background())
	defer s.Unmount()

	select {
	case <-changed:
	case <-time.After(2 * time.Second):
		t.Fatal("prefill did not finish")
	}
	assert.Equal(t, "TI", s.get("sector"))
	assert.Equal(t, "Ana", s.get("nameOrStore"))
}

func TestSettings_PrefillKeepsTypedValues(t *testing.T) {
	fc := &fakeClient{Settings: profile}
	d, _ := testDeps(fc, identity(models.RoleRequesterMaterials), models.Profile{Sector: "RH"})
	s := NewSettings(d)

	s.Mount(context.Background())
	require.Eventually(t, func() bool { return s.get("nameOrStore") == "Ana" }, 2*time.Second, 5*time.Millisecond)
	s.Unmount()

	assert.Equal(t, "RH", s.get("sector"))
}

func TestSettings_SubmitSavesAndNavigates(t *testing.T) {
	fc := &fakeClient{}
	d, _ := testDeps(fc, identity(models.RoleRequesterMaterials), profile)
	s := NewSettings(d)
	s.Mount(context.Background())
	defer s.Unmount()

	require.NoError(t, s.Set("sector", " RH "))
	require.NoError(t, s.Set("nameOrStore", "Bruno"))
	next, err := s.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, guard.PathOrderNew, next)
	assert.Equal(t, models.Profile{Sector: "RH", NameOrStore: "Bruno"}, d.Store.Snapshot().Settings)
}

func TestOrderForm_Submit(t *testing.T) {
	fc := &fakeClient{}
	d, _ := testDeps(fc, identity(models.RoleRequesterMaterials), profile)
	s := NewOrderForm(d)

	require.NoError(t, s.Set("item", "Paper"))
	require.NoError(t, s.Set("quantity", "abc"))
	next, err := s.Submit(context.Background())
	require.NoError(t, err)
	assert.Empty(t, next)

	require.Len(t, fc.Created, 1)
	assert.Equal(t, models.NewOrder{Item: "Paper", Quantity: 1, Sector: "TI", NameOrStore: "Ana"}, fc.Created[0])
	assert.Empty(t, s.get("item"))
	assert.NotEmpty(t, s.Notice())

	orders := d.Store.Snapshot().Orders
	require.Len(t, orders, 1)
	assert.Equal(t, models.ID("new-order"), orders[0].ID)
}

func TestOrderForm_NeedsProfileAndItem(t *testing.T) {
	fc := &fakeClient{}
	d, _ := testDeps(fc, identity(models.RoleRequesterMaterials), models.Profile{})
	s := NewOrderForm(d)

	_, err := s.Submit(context.Background())
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, s.Err(), "Item")

	require.NoError(t, s.Set("item", "Paper"))
	_, err = s.Submit(context.Background())
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, s.Err(), "Settings")
	assert.Empty(t, fc.Created)
}

func TestOrderForm_ServerErrorKeepsInput(t *testing.T) {
	fc := &fakeClient{CreateErr: &client.RequestError{Kind: client.KindTransport, Message: "server unreachable"}}
	d, _ := testDeps(fc, identity(models.RoleRequesterMaterials), profile)
	s := NewOrderForm(d)

	require.NoError(t, s.Set("item", "Paper"))
	_, err := s.Submit(context.Background())
	require.ErrorIs(t, err, client.ErrUnavailable)
	assert.Equal(t, "Paper", s.get("item"))
	assert.Equal(t, "server unreachable", s.Err())
	assert.Empty(t, d.Store.Snapshot().Orders)
}

func TestParseQuantity(t *testing.T) {
	assert.Equal(t, 3, parseQuantity(" 3 "))
	assert.Equal(t, 1, parseQuantity(""))
	assert.Equal(t, 1, parseQuantity("0"))
	assert.Equal(t, 1, parseQuantity("-2"))
}

func TestTiHelpForm_Submit(t *testing.T) {
	fc := &fakeClient{}
	d, _ := testDeps(fc, identity(models.RoleRequesterIT), profile)
	s := NewTiHelpForm(d)

	require.NoError(t, s.Set("title", "Printer"))
	_, err := s.Submit(context.Background())
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, s.Err(), "Description")

	require.NoError(t, s.Set("description", "jammed"))
	next, err := s.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, guard.PathTicketsMine, next)

	require.Len(t, fc.NewTickets, 1)
	assert.Equal(t, "TI", fc.NewTickets[0].Sector)
	assert.Len(t, d.Store.Snapshot().Tickets, 1)
}
