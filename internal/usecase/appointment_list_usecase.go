package usecase

import (
	"sync"
	"sync/atomic"
	"time"

	"hospitron/internal/domain/entity"
	"hospitron/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

const (
	defaultViewIdleTimeout = 30 * time.Minute
	minEvictionInterval    = time.Second
)

// AppointmentListUsecase owns one AppointmentListView per session and evicts
// views that have been idle longer than the configured timeout.
type AppointmentListUsecase interface {
	// View returns the session's view, creating it for doctorID on first use.
	View(sessionID, doctorID string) *AppointmentListView
	Close(sessionID string)
	// Stop ends the eviction loop and cancels every fetch in flight. Safe to call twice.
	Stop()
}

type appointmentListUsecase struct {
	repo        repository.AppointmentRepository
	log         *logrus.Logger
	loc         *time.Location
	idleTimeout time.Duration
	now         func() time.Time
	onSelect    func(sessionID string, a entity.Appointment)

	views sync.Map // map[string]*AppointmentListView

	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

// NewAppointmentListUsecase starts the background eviction loop. Call Stop() during shutdown.
func NewAppointmentListUsecase(
	repo repository.AppointmentRepository,
	log *logrus.Logger,
	loc *time.Location,
	idleTimeout time.Duration,
	onSelect func(sessionID string, a entity.Appointment),
) AppointmentListUsecase {
	if idleTimeout <= 0 {
		idleTimeout = defaultViewIdleTimeout
	}
	u := &appointmentListUsecase{
		repo:        repo,
		log:         log,
		loc:         loc,
		idleTimeout: idleTimeout,
		now:         time.Now,
		onSelect:    onSelect,
		stopChan:    make(chan struct{}),
	}

	u.wg.Add(1)
	go u.evictionLoop()

	return u
}

func (u *appointmentListUsecase) View(sessionID, doctorID string) *AppointmentListView {
	if existing, ok := u.views.Load(sessionID); ok {
		view := existing.(*AppointmentListView)
		view.touch()
		return view
	}

	opts := []ListViewOption{WithClock(u.now)}
	if u.onSelect != nil {
		opts = append(opts, WithSelectHandler(func(a entity.Appointment) {
			u.onSelect(sessionID, a)
		}))
	}
	view := NewAppointmentListView(u.repo, u.log, u.loc, doctorID, opts...)

	actual, loaded := u.views.LoadOrStore(sessionID, view)
	if !loaded {
		u.log.Debugf("Created appointment list view for session %s", sessionID)
	}
	return actual.(*AppointmentListView)
}

func (u *appointmentListUsecase) Close(sessionID string) {
	if existing, ok := u.views.LoadAndDelete(sessionID); ok {
		existing.(*AppointmentListView).Close()
	}
}

func (u *appointmentListUsecase) Stop() {
	if u.stopped.CompareAndSwap(false, true) {
		close(u.stopChan)
		u.wg.Wait()

		u.views.Range(func(key, value any) bool {
			value.(*AppointmentListView).Close()
			u.views.Delete(key)
			return true
		})
		u.log.Info("Appointment list views stopped")
	}
}

func (u *appointmentListUsecase) evictionLoop() {
	defer u.wg.Done()

	interval := u.idleTimeout / 2
	if interval < minEvictionInterval {
		interval = minEvictionInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-u.stopChan:
			u.log.Debug("Appointment list eviction loop stopping")
			return
		case <-ticker.C:
			u.evictIdle()
		}
	}
}

func (u *appointmentListUsecase) evictIdle() int {
	cutoff := u.now().Add(-u.idleTimeout)
	var evicted int

	u.views.Range(func(key, value any) bool {
		view := value.(*AppointmentListView)
		if view.idleSince().Before(cutoff) {
			if u.views.CompareAndDelete(key, view) {
				view.Close()
				evicted++
			}
		}
		return true
	})

	if evicted > 0 {
		u.log.Debugf("Evicted %d idle appointment list views", evicted)
	}
	return evicted
}
