package screens

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/dmitrijs2005/requestdesk/internal/client/guard"
	"github.com/dmitrijs2005/requestdesk/internal/client/models"
	"github.com/dmitrijs2005/requestdesk/internal/client/poller"
)

// ListScreen is the behaviour shared by every order and ticket list.
type ListScreen interface {
	Screen

	// Filters. Each change is debounced before the list is refetched.
	SetStatus(s string) error
	SetQuery(q string)
	SetSector(s string)
	SetNameOrStore(s string)
	ClearFilters()
	Filter() models.Filter

	// More shows one more page ("load more"); GoToPage jumps to a numbered
	// page. Which one applies depends on the list.
	More()
	GoToPage(n int) error
	Refresh()

	// UpdateStatus and Respond change a record, then refetch with the
	// current filters. ref is a row number of the visible page or an id.
	UpdateStatus(ctx context.Context, ref, status string) error
	Respond(ctx context.Context, ref, text string) error

	Len() int
	Err() string
	Counts() map[models.Status]int

	renderBody(w io.Writer)
}

type paging int

const (
	loadMore paging = iota
	numbered
)

type column[T any] struct {
	header string
	value  func(T) string
}

// listConfig is what distinguishes one list screen from another.
type listConfig[T models.Record] struct {
	path  guard.Path
	title string

	fetch  func(ctx context.Context, f models.Filter) ([]T, error)
	update func(ctx context.Context, id models.ID, p models.Patch) error
	// loaded publishes a fresh result to the state container.
	loaded func(items []T)
	// fixed returns filter fields the user cannot change.
	fixed func() models.Filter

	columns []column[T]
	paging  paging
	// origin returns a record's sector and requester. When set, the
	// distinct values present in the list are offered as filter options.
	origin func(T) (sector, requester string)
}

type fetchResult[T any] struct {
	filter models.Filter
	items  []T
}

// List is a polled, filterable, paged list of orders or tickets.
type List[T models.Record] struct {
	cfg listConfig[T]
	d   Deps

	mu       sync.Mutex
	mounted  bool
	filter   models.Filter
	items    []T
	loaded   bool
	err      string
	shown    int
	page     int
	poll     *poller.Poller[fetchResult[T]]
	debounce *poller.Debouncer
}

func newList[T models.Record](d Deps, cfg listConfig[T]) *List[T] {
	d = d.withDefaults()
	return &List[T]{cfg: cfg, d: d, shown: d.PageSize, page: 1}
}

func (l *List[T]) Path() guard.Path { return l.cfg.path }
func (l *List[T]) Title() string    { return l.cfg.title }

// Mount fetches immediately and starts polling.
func (l *List[T]) Mount(ctx context.Context) {
	l.mu.Lock()
	if l.mounted {
		l.mu.Unlock()
		return
	}
	l.mounted = true
	l.debounce = poller.NewDebouncer(l.d.Clock, l.d.Debounce)
	l.poll = poller.New(poller.Config[fetchResult[T]]{
		Interval: l.d.PollInterval,
		Clock:    l.d.Clock,
		Log:      l.d.Log,
		Name:     string(l.cfg.path),
		Fetch:    l.fetchCurrent,
		OnResult: l.onResult,
	})
	p := l.poll
	l.mu.Unlock()

	p.Start(ctx)
}

// Unmount stops polling and any pending debounced refetch. No result is
// applied after it returns.
func (l *List[T]) Unmount() {
	l.mu.Lock()
	l.mounted = false
	p, d := l.poll, l.debounce
	l.poll, l.debounce = nil, nil
	l.mu.Unlock()

	if d != nil {
		d.Stop()
	}
	if p != nil {
		p.Stop()
	}
}

func (l *List[T]) effectiveFilterLocked() models.Filter {
	f := l.filter
	if l.cfg.fixed != nil {
		fx := l.cfg.fixed()
		if fx.Sector != "" {
			f.Sector = fx.Sector
		}
		if fx.NameOrStore != "" {
			f.NameOrStore = fx.NameOrStore
		}
	}
	return f
}

func (l *List[T]) fetchCurrent(ctx context.Context) (fetchResult[T], error) {
	l.mu.Lock()
	f := l.effectiveFilterLocked()
	l.mu.Unlock()

	items, err := l.cfg.fetch(ctx, f)
	return fetchResult[T]{filter: f, items: items}, err
}

func (l *List[T]) onResult(r fetchResult[T], err error) {
	l.mu.Lock()
	if !l.mounted {
		l.mu.Unlock()
		return
	}
	// a result for a filter that has changed since is superseded by the
	// refetch the change scheduled, whether it succeeded or not
	if r.filter != l.effectiveFilterLocked() {
		l.mu.Unlock()
		return
	}
	if err != nil {
		l.err = clientMessage(err, "could not load the list")
		l.mu.Unlock()
		l.d.changed()
		return
	}
	l.items = r.items
	l.loaded = true
	l.err = ""
	if n := l.pagesLocked(); l.page > n {
		l.page = n
	}
	items := l.items
	l.mu.Unlock()

	if l.cfg.loaded != nil {
		l.cfg.loaded(items)
	}
	l.d.changed()
}

func (l *List[T]) changeFilter(mut func(f *models.Filter)) {
	l.mu.Lock()
	mut(&l.filter)
	l.shown = l.d.PageSize
	l.page = 1
	d := l.debounce
	l.mu.Unlock()

	if d != nil {
		d.Call(l.Refresh)
	}
}

func (l *List[T]) SetStatus(s string) error {
	s = strings.TrimSpace(s)
	var st models.Status
	if s != "" && !strings.EqualFold(s, "all") {
		parsed, ok := models.ParseStatus(s)
		if !ok {
			return validationError(fmt.Sprintf("unknown status %q", s))
		}
		st = parsed
	}
	l.changeFilter(func(f *models.Filter) { f.Status = st })
	return nil
}

func (l *List[T]) SetQuery(q string) {
	l.changeFilter(func(f *models.Filter) { f.Q = strings.TrimSpace(q) })
}

func (l *List[T]) SetSector(s string) {
	l.changeFilter(func(f *models.Filter) { f.Sector = strings.TrimSpace(s) })
}

func (l *List[T]) SetNameOrStore(s string) {
	l.changeFilter(func(f *models.Filter) { f.NameOrStore = strings.TrimSpace(s) })
}

func (l *List[T]) ClearFilters() {
	l.changeFilter(func(f *models.Filter) { *f = models.Filter{} })
}

// Filter returns the filter sent with the next fetch.
func (l *List[T]) Filter() models.Filter {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.effectiveFilterLocked()
}

// Refresh refetches now, skipping the debounce window.
func (l *List[T]) Refresh() {
	l.mu.Lock()
	p := l.poll
	mounted := l.mounted
	l.mu.Unlock()

	if mounted && p != nil {
		p.Trigger()
	}
}

func (l *List[T]) More() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.shown < len(l.items) {
		l.shown += l.d.PageSize
	}
}

func (l *List[T]) pagesLocked() int {
	n := (len(l.items) + l.d.PageSize - 1) / l.d.PageSize
	return max(n, 1)
}

func (l *List[T]) GoToPage(n int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if pages := l.pagesLocked(); n < 1 || n > pages {
		return validationError(fmt.Sprintf("page must be between 1 and %d", pages))
	}
	l.page = n
	return nil
}

func (l *List[T]) visibleLocked() []T {
	if l.cfg.paging == numbered {
		from := min((l.page-1)*l.d.PageSize, len(l.items))
		to := min(from+l.d.PageSize, len(l.items))
		return l.items[from:to]
	}
	return l.items[:min(l.shown, len(l.items))]
}

// Visible returns the rows currently shown.
func (l *List[T]) Visible() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.visibleLocked())
}

func (l *List[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

func (l *List[T]) Loaded() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loaded
}

func (l *List[T]) Err() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

func (l *List[T]) Counts() map[models.Status]int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return models.CountByStatus(l.items)
}

// resolve maps a row number of the visible rows, or a full id, to an id.
func (l *List[T]) resolve(ref string) (models.ID, error) {
	ref = strings.TrimSpace(ref)
	l.mu.Lock()
	defer l.mu.Unlock()

	visible := l.visibleLocked()
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(visible) {
		return visible[n-1].RecordID(), nil
	}
	for _, it := range l.items {
		if string(it.RecordID()) == ref {
			return it.RecordID(), nil
		}
	}
	return "", validationError(fmt.Sprintf("no row %q", ref))
}

func (l *List[T]) patch(ctx context.Context, ref string, p models.Patch) error {
	if l.cfg.update == nil {
		return ErrReadOnly
	}
	id, err := l.resolve(ref)
	if err != nil {
		return err
	}
	if err := l.cfg.update(ctx, id, p); err != nil {
		l.mu.Lock()
		l.err = clientMessage(err, "update failed")
		l.mu.Unlock()
		return err
	}
	l.Refresh()
	return nil
}

func (l *List[T]) UpdateStatus(ctx context.Context, ref, status string) error {
	st, ok := models.ParseStatus(status)
	if !ok {
		return validationError(fmt.Sprintf("unknown status %q", status))
	}
	return l.patch(ctx, ref, models.StatusPatch(st))
}

func (l *List[T]) Respond(ctx context.Context, ref, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return validationError("response required")
	}
	return l.patch(ctx, ref, models.ResponsePatch(text))
}

// distinct returns the sorted distinct non-empty values of field.
func distinct[T any](items []T, field func(T) string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, it := range items {
		v := strings.TrimSpace(field(it))
		if v == "" {
			continue
		}
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	slices.Sort(out)
	return out
}

// Sectors returns the distinct sectors present in the loaded list.
func (l *List[T]) Sectors() []string {
	return l.options(func(t T) string { s, _ := l.cfg.origin(t); return s })
}

// Requesters returns the distinct names or stores present in the loaded list.
func (l *List[T]) Requesters() []string {
	return l.options(func(t T) string { _, r := l.cfg.origin(t); return r })
}

func (l *List[T]) options(field func(T) string) []string {
	if l.cfg.origin == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return distinct(l.items, field)
}

func describeFilter(f models.Filter) string {
	var parts []string
	add := func(k, v string) {
		if v != "" {
			parts = append(parts, k+"="+v)
		}
	}
	add("status", string(f.Status))
	add("q", f.Q)
	add("sector", f.Sector)
	add("nameOrStore", f.NameOrStore)
	if len(parts) == 0 {
		return "no filters"
	}
	return strings.Join(parts, " ")
}

func (l *List[T]) Render(w io.Writer) {
	fmt.Fprintln(w, l.d.Theme.title(l.cfg.title))
	l.renderBody(w)
}

func (l *List[T]) renderBody(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	t := l.d.Theme

	fmt.Fprintln(w, t.faint("Filters: "+describeFilter(l.effectiveFilterLocked())))
	if l.err != "" {
		fmt.Fprintln(w, t.errorLine(l.err))
	}
	if !l.loaded {
		fmt.Fprintln(w, t.faint("Loading..."))
		return
	}
	if len(l.items) == 0 {
		fmt.Fprintln(w, t.faint("Nothing here yet."))
		return
	}

	visible := l.visibleLocked()
	headers := []string{"#"}
	for _, c := range l.cfg.columns {
		headers = append(headers, c.header)
	}
	rows := make([][]string, 0, len(visible))
	for i, it := range visible {
		row := []string{strconv.Itoa(i + 1)}
		for _, c := range l.cfg.columns {
			row = append(row, c.value(it))
		}
		rows = append(rows, row)
	}
	fmt.Fprintln(w, t.table(headers, rows))

	if l.cfg.origin != nil {
		sectors := distinct(l.items, func(it T) string { s, _ := l.cfg.origin(it); return s })
		people := distinct(l.items, func(it T) string { _, r := l.cfg.origin(it); return r })
		fmt.Fprintln(w, t.faint("Sectors: "+strings.Join(sectors, ", ")))
		fmt.Fprintln(w, t.faint("Requesters: "+strings.Join(people, ", ")))
	}
	if l.cfg.paging == numbered {
		fmt.Fprintln(w, t.faint(fmt.Sprintf("Page %d of %d (%d total)", l.page, l.pagesLocked(), len(l.items))))
	} else {
		fmt.Fprintln(w, t.faint(fmt.Sprintf("Showing %d of %d", len(visible), len(l.items))))
	}
}
var _ ListScreen = (*List[models.Order])(nil)
