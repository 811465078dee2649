package usecase

import (
	"context"
	"testing"
	"time"

	"hospitron/internal/domain/entity"
	"hospitron/pkg/result"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDashboardUsecase(repo *mockAppointmentRepository) DashboardUsecase {
	log, _ := logtest.NewNullLogger()
	uc := NewDashboardUsecase(log, repo, time.UTC).(*dashboardUsecase)
	uc.now = func() time.Time { return fixedNow }
	return uc
}

func at(a entity.Appointment, hour, minute int) entity.Appointment {
	a.AppointmentDateTime = entity.NewDateTime(time.Date(2024, 3, 1, hour, minute, 0, 0, time.UTC))
	return a
}

func TestDashboardUsecase_Overview(t *testing.T) {
	repo := new(mockAppointmentRepository)
	ctx := context.Background()

	followUp := at(appointmentFixture("a-4", "Mary Major", entity.StatusScheduled), 11, 0)
	followUp.AppointmentType = strPtr("Follow-up")
	todayList := []entity.Appointment{
		followUp,
		at(appointmentFixture("a-2", "Jane Doe", entity.StatusCompleted), 9, 0),
		at(appointmentFixture("a-1", "John Smith", entity.StatusCompleted), 8, 0),
		at(appointmentFixture("a-3", "John Smith", entity.StatusInProgress), 9, 30),
	}
	repo.On("TodayForDoctor", ctx, "1").Return(result.Ok(todayList))
	repo.On("UpcomingForDoctor", ctx, "1").Return(result.Ok([]entity.Appointment{followUp, followUp}))

	resp := newDashboardUsecase(repo).Overview(ctx, signedInDoctor)

	require.Len(t, resp.Stats, 4)
	assert.Equal(t, "Today's Appointments", resp.Stats[0].Title)
	assert.Equal(t, "4", resp.Stats[0].Value)
	assert.Equal(t, "2", resp.Stats[1].Value)
	assert.Equal(t, "2", resp.Stats[2].Value)
	assert.Equal(t, "3", resp.Stats[3].Value)
	assert.Empty(t, resp.Warnings)

	require.Len(t, resp.Today, 4)
	assert.Equal(t, "08:00 AM", resp.Today[0].Time)
	assert.Equal(t, "11:00 AM", resp.Today[3].Time)
	assert.Equal(t, "Follow-up", resp.Today[3].Type)
	assert.Equal(t, "in progress", resp.Today[2].Status)

	// Mary Major is at 11:00, after fixedNow.
	require.Len(t, resp.RecentPatients, 2)
	assert.Equal(t, "John Smith", resp.RecentPatients[0].Name)
	assert.Equal(t, "09:30 AM", resp.RecentPatients[0].LastVisit)
	assert.Equal(t, "Jane Doe", resp.RecentPatients[1].Name)

	assert.Equal(t, "Dr. John Smith", resp.User.Name)
}

func TestDashboardUsecase_Overview_RecentPatientsCapped(t *testing.T) {
	repo := new(mockAppointmentRepository)
	ctx := context.Background()

	repo.On("TodayForDoctor", ctx, "1").Return(result.Ok([]entity.Appointment{
		at(appointmentFixture("a-1", "A", entity.StatusCompleted), 6, 0),
		at(appointmentFixture("a-2", "B", entity.StatusCompleted), 7, 0),
		at(appointmentFixture("a-3", "C", entity.StatusCompleted), 8, 0),
		at(appointmentFixture("a-4", "D", entity.StatusCompleted), 9, 0),
	}))
	repo.On("UpcomingForDoctor", ctx, "1").Return(result.Ok([]entity.Appointment{}))

	resp := newDashboardUsecase(repo).Overview(ctx, signedInDoctor)

	require.Len(t, resp.RecentPatients, 3)
	assert.Equal(t, "D", resp.RecentPatients[0].Name)
	assert.Equal(t, "B", resp.RecentPatients[2].Name)
	assert.Equal(t, "0", resp.Stats[1].Value)
}

func TestDashboardUsecase_Overview_DegradesOnFailure(t *testing.T) {
	repo := new(mockAppointmentRepository)
	ctx := context.Background()

	repo.On("TodayForDoctor", ctx, "1").Return(result.Err[[]entity.Appointment]("Failed to fetch today's appointments"))
	repo.On("UpcomingForDoctor", ctx, "1").Return(result.Ok([]entity.Appointment{appointmentFixture("a-1", "X", entity.StatusScheduled)}))

	resp := newDashboardUsecase(repo).Overview(ctx, signedInDoctor)

	assert.Equal(t, "-", resp.Stats[0].Value)
	assert.Equal(t, "1", resp.Stats[1].Value)
	assert.Equal(t, "-", resp.Stats[2].Value)
	assert.Equal(t, "-", resp.Stats[3].Value)
	assert.NotNil(t, resp.Today)
	assert.Empty(t, resp.Today)
	require.Len(t, resp.Warnings, 1)
	assert.Contains(t, resp.Warnings[0], "Failed to fetch today's appointments")
}
