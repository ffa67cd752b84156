package screens

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/requestdesk/internal/client/client"
	"github.com/dmitrijs2005/requestdesk/internal/client/models"
)

const waitFor = 2 * time.Second

func waitLoaded[T models.Record](t *testing.T, l *List[T]) {
	t.Helper()
	require.Eventually(t, l.Loaded, waitFor, 5*time.Millisecond)
}

func TestList_MountFetchesAndPublishes(t *testing.T) {
	fc := &fakeClient{Orders: sampleOrders(3)}
	d, _ := testDeps(fc, identity(models.RoleResponsibleMaterials), models.Profile{})
	l := NewOrderList(d)

	l.Mount(context.Background())
	defer l.Unmount()
	waitLoaded(t, l)

	assert.Equal(t, 3, l.Len())
	require.Eventually(t, func() bool { return len(d.Store.Snapshot().Orders) == 3 }, waitFor, 5*time.Millisecond)
	assert.Len(t, l.Visible(), 2)
	assert.Equal(t, []string{"RH", "TI"}, l.Sectors())
	assert.Equal(t, []string{"Ana", "Bruno", "Carla"}, l.Requesters())
}

func TestList_DebounceCoalescesFilterChanges(t *testing.T) {
	fc := &fakeClient{Orders: sampleOrders(1)}
	d, clk := testDeps(fc, identity(models.RoleResponsibleMaterials), models.Profile{})
	l := NewOrderList(d)

	l.Mount(context.Background())
	defer l.Unmount()
	waitLoaded(t, l)
	require.Len(t, fc.orderFilters(), 1)

	for _, q := range []string{"p", "pa", "pap", "pape", "paper"} {
		l.SetQuery(q)
		clk.Advance(100 * time.Millisecond)
	}
	assert.Len(t, fc.orderFilters(), 1, "no fetch inside the debounce window")

	clk.Advance(350 * time.Millisecond)
	require.Eventually(t, func() bool { return len(fc.orderFilters()) == 2 }, waitFor, 5*time.Millisecond)

	time.Sleep(20 * time.Millisecond)
	filters := fc.orderFilters()
	require.Len(t, filters, 2)
	assert.Equal(t, "paper", filters[1].Q)
}

func TestList_StatusFilter(t *testing.T) {
	d, _ := testDeps(&fakeClient{}, identity(models.RoleResponsibleMaterials), models.Profile{})
	l := NewOrderList(d)

	require.NoError(t, l.SetStatus("em_andamento"))
	assert.Equal(t, models.StatusInProgress, l.Filter().Status)

	require.NoError(t, l.SetStatus("all"))
	assert.Empty(t, l.Filter().Status)

	require.ErrorIs(t, l.SetStatus("bogus"), ErrValidation)
}

func TestList_StaleResultIsDiscarded(t *testing.T) {
	fc := &fakeClient{Orders: sampleOrders(3)}
	d, _ := testDeps(fc, identity(models.RoleResponsibleMaterials), models.Profile{})
	l := NewOrderList(d)

	l.Mount(context.Background())
	defer l.Unmount()
	waitLoaded(t, l)

	l.SetQuery("x")
	l.onResult(fetchResult[models.Order]{filter: models.Filter{}, items: sampleOrders(1)}, nil)
	assert.Equal(t, 3, l.Len())

	l.onResult(fetchResult[models.Order]{filter: models.Filter{Q: "x"}, items: sampleOrders(1)}, nil)
	assert.Equal(t, 1, l.Len())
}

func TestList_StaleErrorIsDiscarded(t *testing.T) {
	fc := &fakeClient{Orders: sampleOrders(3)}
	d, _ := testDeps(fc, identity(models.RoleResponsibleMaterials), models.Profile{})
	l := NewOrderList(d)

	l.Mount(context.Background())
	defer l.Unmount()
	waitLoaded(t, l)

	l.SetQuery("x")
	l.onResult(fetchResult[models.Order]{filter: models.Filter{}}, errors.New("boom"))
	assert.Empty(t, l.Err())
	assert.Equal(t, 3, l.Len())

	l.onResult(fetchResult[models.Order]{filter: models.Filter{Q: "x"}}, errors.New("boom"))
	assert.NotEmpty(t, l.Err())
}

func TestList_UnmountStopsBackgroundWork(t *testing.T) {
	fc := &fakeClient{Orders: sampleOrders(1)}
	d, clk := testDeps(fc, identity(models.RoleResponsibleMaterials), models.Profile{})
	l := NewOrderList(d)

	l.Mount(context.Background())
	waitLoaded(t, l)
	l.SetQuery("late")
	l.Unmount()

	assert.Zero(t, clk.PendingCount())
	clk.Advance(3 * time.Hour)
	time.Sleep(20 * time.Millisecond)
	assert.Len(t, fc.orderFilters(), 1)

	l.onResult(fetchResult[models.Order]{filter: l.Filter(), items: sampleOrders(3)}, nil)
	assert.Equal(t, 1, l.Len(), "results after unmount are ignored")
}

func TestList_PollsOnInterval(t *testing.T) {
	fc := &fakeClient{Orders: sampleOrders(1)}
	d, clk := testDeps(fc, identity(models.RoleResponsibleMaterials), models.Profile{})
	l := NewOrderList(d)

	l.Mount(context.Background())
	defer l.Unmount()
	waitLoaded(t, l)
	clk.WaitForTimers(1)

	clk.Advance(time.Hour)
	require.Eventually(t, func() bool { return len(fc.orderFilters()) == 2 }, waitFor, 5*time.Millisecond)
}

func TestMyOrders_PinnedToProfileAndReadOnly(t *testing.T) {
	fc := &fakeClient{Orders: sampleOrders(2)}
	d, _ := testDeps(fc, identity(models.RoleRequesterMaterials), profile)
	l := NewMyOrders(d)

	l.SetSector("RH")
	f := l.Filter()
	assert.Equal(t, "TI", f.Sector)
	assert.Equal(t, "Ana", f.NameOrStore)

	l.Mount(context.Background())
	defer l.Unmount()
	waitLoaded(t, l)
	assert.Equal(t, "TI", fc.orderFilters()[0].Sector)

	err := l.UpdateStatus(context.Background(), "1", "done")
	require.ErrorIs(t, err, ErrReadOnly)
	require.ErrorIs(t, l.Respond(context.Background(), "1", "ok"), ErrReadOnly)
}

func TestList_UpdateStatusByRowAndRefetch(t *testing.T) {
	fc := &fakeClient{Orders: sampleOrders(3)}
	d, _ := testDeps(fc, identity(models.RoleResponsibleMaterials), models.Profile{})
	l := NewOrderList(d)

	l.Mount(context.Background())
	defer l.Unmount()
	waitLoaded(t, l)

	require.NoError(t, l.UpdateStatus(context.Background(), "2", "finalizado"))
	p, ok := fc.orderPatch("order-b")
	require.True(t, ok)
	require.NotNil(t, p.Status)
	assert.Equal(t, models.StatusDone, *p.Status)
	assert.Nil(t, p.Response)

	require.NoError(t, l.Respond(context.Background(), "order-c", " on the way "))
	p, _ = fc.orderPatch("order-c")
	require.NotNil(t, p.Response)
	assert.Equal(t, "on the way", *p.Response)

	require.Eventually(t, func() bool { return len(fc.orderFilters()) >= 2 }, waitFor, 5*time.Millisecond)

	require.ErrorIs(t, l.UpdateStatus(context.Background(), "9", "done"), ErrValidation)
	require.ErrorIs(t, l.UpdateStatus(context.Background(), "1", "later"), ErrValidation)
	require.ErrorIs(t, l.Respond(context.Background(), "1", "  "), ErrValidation)
}

func TestList_LoadMore(t *testing.T) {
	fc := &fakeClient{Orders: sampleOrders(5)}
	d, _ := testDeps(fc, identity(models.RoleResponsibleMaterials), models.Profile{})
	l := NewOrderList(d)

	l.Mount(context.Background())
	defer l.Unmount()
	waitLoaded(t, l)

	assert.Len(t, l.Visible(), 2)
	l.More()
	assert.Len(t, l.Visible(), 4)
	l.More()
	l.More()
	assert.Len(t, l.Visible(), 5)
}

func TestList_FetchErrorIsShown(t *testing.T) {
	fc := &fakeClient{OrdersErr: &client.RequestError{Kind: client.KindMalformed, Message: "server returned an HTML page"}}
	d, _ := testDeps(fc, identity(models.RoleResponsibleMaterials), models.Profile{})
	l := NewOrderList(d)

	l.Mount(context.Background())
	defer l.Unmount()
	require.Eventually(t, func() bool { return l.Err() != "" }, waitFor, 5*time.Millisecond)

	var buf bytes.Buffer
	l.Render(&buf)
	assert.Contains(t, buf.String(), "HTML page")
}

func TestDashboard_DomainPagingAndKPIs(t *testing.T) {
	fc := &fakeClient{Tickets: []models.Ticket{
		{ID: "t1", Title: "a", Status: models.StatusOpen},
		{ID: "t2", Title: "b", Status: models.StatusOpen},
		{ID: "t3", Title: "c", Status: models.StatusDone},
	}}
	d, _ := testDeps(fc, identity(models.RoleResponsibleIT), models.Profile{})
	s := NewDashboard(d)
	assert.Equal(t, models.DomainIT, s.Domain())

	s.Mount(context.Background())
	defer s.Unmount()
	require.Eventually(t, func() bool { return s.Len() == 3 }, waitFor, 5*time.Millisecond)

	assert.Equal(t, map[models.Status]int{models.StatusOpen: 2, models.StatusDone: 1}, s.Counts())
	require.NoError(t, s.GoToPage(2))
	require.ErrorIs(t, s.GoToPage(3), ErrValidation)

	var buf bytes.Buffer
	s.Render(&buf)
	out := buf.String()
	assert.Contains(t, out, "Total")
	assert.Contains(t, out, "Page 2 of 2")

	require.NoError(t, s.UpdateStatus(context.Background(), "t3", "open"))
	assert.Contains(t, fc.TicketPatches, models.ID("t3"))
}
