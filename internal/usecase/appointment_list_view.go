package usecase

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"hospitron/internal/domain/entity"
	"hospitron/internal/domain/repository"
	"hospitron/internal/presenter"

	"github.com/sirupsen/logrus"
)

const defaultListError = "Failed to load appointments"

type ListPhase string

const (
	ListLoading ListPhase = "loading"
	ListError   ListPhase = "error"
	ListLoaded  ListPhase = "loaded"
)

// ListQuery is what the page asks the view to show. Empty DoctorID, Date or
// Status keep the current value; Search is always applied.
type ListQuery struct {
	DoctorID string
	Date     string
	Status   string
	Search   string
}

type StatusOption struct {
	Value    string
	Label    string
	Selected bool
}

// ListViewModel is everything the page needs to draw the list.
type ListViewModel struct {
	DoctorID      string
	Date          string
	Today         string
	Status        string
	Search        string
	Phase         ListPhase
	Message       string
	Cards         []presenter.AppointmentCard
	EmptyTitle    string
	EmptyMessage  string
	Summary       string
	StatusOptions []StatusOption
	Selected      *presenter.AppointmentCard
}

// AppointmentListView holds one user's list state: the filter, the fetched set
// and the fetch in flight. Only the latest fetch may update the state; a newer
// trigger cancels the older request and its late result is dropped.
type AppointmentListView struct {
	mu       sync.Mutex
	repo     repository.AppointmentRepository
	log      *logrus.Logger
	loc      *time.Location
	now      func() time.Time
	onSelect func(entity.Appointment)

	doctorID string
	date     string
	status   string
	search   string

	phase        ListPhase
	message      string
	appointments []entity.Appointment
	selected     *entity.Appointment
	fetched      bool

	generation uint64
	cancel     context.CancelFunc
	done       chan struct{}

	lastUsed atomic.Int64
}

type ListViewOption func(*AppointmentListView)

// WithSelectHandler registers the callback run when an entry is selected.
func WithSelectHandler(fn func(entity.Appointment)) ListViewOption {
	return func(v *AppointmentListView) {
		v.onSelect = fn
	}
}

func WithClock(now func() time.Time) ListViewOption {
	return func(v *AppointmentListView) {
		v.now = now
	}
}

func NewAppointmentListView(repo repository.AppointmentRepository, log *logrus.Logger, loc *time.Location, doctorID string, opts ...ListViewOption) *AppointmentListView {
	if loc == nil {
		loc = time.Local
	}
	v := &AppointmentListView{
		repo:     repo,
		log:      log,
		loc:      loc,
		now:      time.Now,
		doctorID: doctorID,
		status:   entity.StatusAll,
		phase:    ListLoading,
	}
	for _, opt := range opts {
		opt(v)
	}
	v.date = v.today()
	v.touch()
	return v
}

func (v *AppointmentListView) today() string {
	return v.now().In(v.loc).Format(entity.DateLayout)
}

func (v *AppointmentListView) touch() {
	v.lastUsed.Store(v.now().UnixNano())
}

func (v *AppointmentListView) idleSince() time.Time {
	return time.Unix(0, v.lastUsed.Load())
}

// Apply updates the filter. A change of doctor, date or status, or a view that
// has never fetched, starts a new fetch; a search change only re-filters.
// It returns true when a fetch was started.
func (v *AppointmentListView) Apply(ctx context.Context, q ListQuery) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.touch()

	changed := !v.fetched
	if q.DoctorID != "" && q.DoctorID != v.doctorID {
		v.doctorID = q.DoctorID
		changed = true
	}
	if q.Date != "" && q.Date != v.date {
		if _, err := time.Parse(entity.DateLayout, q.Date); err == nil {
			v.date = q.Date
			changed = true
		} else {
			v.log.Debugf("Ignoring invalid list date %q", q.Date)
		}
	}
	if q.Status != "" && q.Status != v.status {
		if q.Status == entity.StatusAll || entity.AppointmentStatus(q.Status).IsValid() {
			v.status = q.Status
			changed = true
		} else {
			v.log.Debugf("Ignoring unknown list status %q", q.Status)
		}
	}
	v.search = q.Search

	if !changed {
		return false
	}
	v.startFetchLocked(ctx)
	return true
}

// SetSearch changes the client-side filter without fetching.
func (v *AppointmentListView) SetSearch(term string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.touch()
	v.search = term
}

// Retry re-issues the current fetch.
func (v *AppointmentListView) Retry(ctx context.Context) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.touch()
	v.startFetchLocked(ctx)
}

// startFetchLocked must be called with v.mu held.
func (v *AppointmentListView) startFetchLocked(ctx context.Context) {
	if v.cancel != nil {
		v.cancel()
	}

	v.generation++
	gen := v.generation
	filter := entity.AppointmentFilter{Date: v.date, Status: v.status}
	doctorID := v.doctorID

	fetchCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	done := make(chan struct{})
	v.cancel = cancel
	v.done = done
	v.fetched = true
	v.phase = ListLoading
	v.message = ""
	v.appointments = nil
	v.selected = nil

	go func() {
		defer close(done)
		defer cancel()

		res := v.repo.ListByDoctor(fetchCtx, doctorID, filter)

		v.mu.Lock()
		defer v.mu.Unlock()
		if gen != v.generation {
			v.log.Debugf("Dropping stale appointment list result (generation %d, current %d)", gen, v.generation)
			return
		}
		v.cancel = nil

		if res.IsOk() {
			v.phase = ListLoaded
			v.appointments = res.Value()
			if v.appointments == nil {
				v.appointments = []entity.Appointment{}
			}
			return
		}

		v.phase = ListError
		v.message = res.Message()
		if v.message == "" {
			v.message = defaultListError
		}
		v.log.Warnf("Failed to load appointments for doctor %s: %s", doctorID, v.message)
	}()
}

// Wait blocks until the latest fetch settles or ctx is done.
// It returns false when ctx ended first.
func (v *AppointmentListView) Wait(ctx context.Context) bool {
	for {
		v.mu.Lock()
		done := v.done
		v.mu.Unlock()

		if done == nil {
			return true
		}
		select {
		case <-done:
		case <-ctx.Done():
			return false
		}

		v.mu.Lock()
		latest := v.done == done
		v.mu.Unlock()
		if latest {
			return true
		}
	}
}

// Visible returns the fetched entries that pass the search filter.
func (v *AppointmentListView) Visible() []entity.Appointment {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.visibleLocked()
}

func (v *AppointmentListView) visibleLocked() []entity.Appointment {
	if v.phase != ListLoaded {
		return nil
	}
	return presenter.FilterAppointments(v.appointments, v.search)
}

// Select marks a visible entry as selected and runs the select handler.
func (v *AppointmentListView) Select(appointmentID string) (*entity.Appointment, bool) {
	v.mu.Lock()
	v.touch()
	var found *entity.Appointment
	for _, a := range v.visibleLocked() {
		if a.AppointmentID == appointmentID {
			found = &a
			break
		}
	}
	if found != nil {
		v.selected = found
	}
	onSelect := v.onSelect
	v.mu.Unlock()

	if found == nil {
		return nil, false
	}
	if onSelect != nil {
		onSelect(*found)
	}
	return found, true
}

func (v *AppointmentListView) Phase() ListPhase {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.phase
}

// Render derives the page model from the current state.
func (v *AppointmentListView) Render() ListViewModel {
	v.mu.Lock()
	defer v.mu.Unlock()

	today := v.today()
	vm := ListViewModel{
		DoctorID:      v.doctorID,
		Date:          v.date,
		Today:         today,
		Status:        v.status,
		Search:        v.search,
		Phase:         v.phase,
		StatusOptions: statusOptions(v.status),
	}

	switch v.phase {
	case ListError:
		vm.Message = v.message
	case ListLoaded:
		visible := v.visibleLocked()
		vm.Cards = presenter.NewAppointmentCards(visible, v.loc)
		if len(visible) == 0 {
			vm.EmptyTitle = presenter.EmptyStateTitle
			vm.EmptyMessage = presenter.EmptyStateMessage(v.search, v.status, v.date, today)
		} else {
			vm.Summary = presenter.ResultSummary(len(visible), v.date)
		}
		if v.selected != nil {
			card := presenter.NewAppointmentCard(*v.selected, v.loc)
			vm.Selected = &card
		}
	}
	return vm
}

// Close cancels the fetch in flight and discards its result. The view stays
// usable; the next Apply fetches again.
func (v *AppointmentListView) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
		v.generation++
		v.fetched = false
	}
}

func statusOptions(selected string) []StatusOption {
	values := make([]string, 0, len(entity.AppointmentStatuses)+1)
	values = append(values, entity.StatusAll)
	for _, s := range entity.AppointmentStatuses {
		values = append(values, string(s))
	}

	options := make([]StatusOption, 0, len(values))
	for _, value := range values {
		options = append(options, StatusOption{
			Value:    value,
			Label:    presenter.StatusOptionLabel(value),
			Selected: value == selected,
		})
	}
	return options
}
