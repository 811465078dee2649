package usecase

import (
	"context"
	"testing"
	"time"

	"hospitron/internal/domain/entity"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestListUsecase(t *testing.T, repo *mockAppointmentRepository, onSelect func(string, entity.Appointment)) *appointmentListUsecase {
	t.Helper()
	log, _ := logtest.NewNullLogger()
	u := NewAppointmentListUsecase(repo, log, time.UTC, time.Hour, onSelect).(*appointmentListUsecase)
	t.Cleanup(u.Stop)
	return u
}

func TestListUsecase_ViewPerSession(t *testing.T) {
	u := newTestListUsecase(t, new(mockAppointmentRepository), nil)

	a := u.View("s-1", "d-1")
	b := u.View("s-1", "d-9")
	c := u.View("s-2", "d-1")

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
	assert.Equal(t, "d-1", b.Render().DoctorID)
}

func TestListUsecase_Close(t *testing.T) {
	u := newTestListUsecase(t, new(mockAppointmentRepository), nil)

	first := u.View("s-1", "d-1")
	u.Close("s-1")
	u.Close("unknown")

	assert.NotSame(t, first, u.View("s-1", "d-1"))
}

func TestListUsecase_EvictsIdleViews(t *testing.T) {
	u := newTestListUsecase(t, new(mockAppointmentRepository), nil)
	clock := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	u.now = func() time.Time { return clock }

	idle := u.View("idle", "d-1")
	clock = clock.Add(50 * time.Minute)
	active := u.View("active", "d-1")
	clock = clock.Add(20 * time.Minute)

	assert.Equal(t, 1, u.evictIdle())
	assert.NotSame(t, idle, u.View("idle", "d-1"))
	assert.Same(t, active, u.View("active", "d-1"))
}

func TestListUsecase_SelectHandlerReceivesSession(t *testing.T) {
	repo := new(mockAppointmentRepository)
	repo.On("ListByDoctor", mock.Anything, mock.Anything, mock.Anything).
		Return(okList(appointmentFixture("a-1", "John Smith", entity.StatusScheduled)))

	var gotSession, gotID string
	u := newTestListUsecase(t, repo, func(sessionID string, a entity.Appointment) {
		gotSession, gotID = sessionID, a.AppointmentID
	})

	view := u.View("s-1", "d-1")
	view.Apply(context.Background(), ListQuery{})
	waitSettled(t, view)

	_, ok := view.Select("a-1")
	require.True(t, ok)
	assert.Equal(t, "s-1", gotSession)
	assert.Equal(t, "a-1", gotID)
}

func TestListUsecase_StopIsIdempotent(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	u := NewAppointmentListUsecase(new(mockAppointmentRepository), log, time.UTC, 0, nil)

	u.View("s-1", "d-1")
	u.Stop()
	u.Stop()
}
