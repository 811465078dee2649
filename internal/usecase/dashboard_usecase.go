package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"hospitron/internal/converter"
	"hospitron/internal/delivery/dto"
	"hospitron/internal/domain/entity"
	"hospitron/internal/domain/repository"
	"hospitron/internal/presenter"
	"hospitron/pkg/result"

	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc"
)

const (
	statUnavailable   = "-"
	maxRecentPatients = 3
	consultationType  = "Consultation"
)

type DashboardUsecase interface {
	// Overview never fails; a backend failure degrades the affected cards.
	Overview(ctx context.Context, user entity.User) *dto.DashboardResponse
}

type dashboardUsecase struct {
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	loc             *time.Location
	now             func() time.Time
}

func NewDashboardUsecase(log *logrus.Logger, appointmentRepo repository.AppointmentRepository, loc *time.Location) DashboardUsecase {
	if loc == nil {
		loc = time.Local
	}
	return &dashboardUsecase{
		log:             log,
		appointmentRepo: appointmentRepo,
		loc:             loc,
		now:             time.Now,
	}
}

func (u *dashboardUsecase) Overview(ctx context.Context, user entity.User) *dto.DashboardResponse {
	var (
		wg       conc.WaitGroup
		today    result.Result[[]entity.Appointment]
		upcoming result.Result[[]entity.Appointment]
	)
	wg.Go(func() { today = u.appointmentRepo.TodayForDoctor(ctx, user.ID) })
	wg.Go(func() { upcoming = u.appointmentRepo.UpcomingForDoctor(ctx, user.ID) })
	wg.Wait()

	resp := &dto.DashboardResponse{
		User:           *converter.UserToResponse(&user),
		Today:          []dto.ScheduleRow{},
		RecentPatients: []dto.RecentPatient{},
	}

	todayCount, completed, consultations := statUnavailable, statUnavailable, statUnavailable
	today.Match(func(list []entity.Appointment) {
		sorted := sortByTime(list)
		todayCount = fmt.Sprint(len(sorted))
		completed = fmt.Sprint(countWhere(sorted, func(a entity.Appointment) bool { return a.Status == entity.StatusCompleted }))
		consultations = fmt.Sprint(countWhere(sorted, func(a entity.Appointment) bool {
			return presenter.TypeOrDefault(a.AppointmentType) == consultationType
		}))
		resp.Today = u.scheduleRows(sorted)
		resp.RecentPatients = u.recentPatients(sorted)
	}, func(msg string) {
		u.log.Warnf("Failed to load today's appointments for dashboard: %s", msg)
		resp.Warnings = append(resp.Warnings, "Today's schedule unavailable: "+msg)
	})

	upcomingCount := statUnavailable
	upcoming.Match(func(list []entity.Appointment) {
		upcomingCount = fmt.Sprint(len(list))
	}, func(msg string) {
		u.log.Warnf("Failed to load upcoming appointments for dashboard: %s", msg)
		resp.Warnings = append(resp.Warnings, "Upcoming appointments unavailable: "+msg)
	})

	resp.Stats = []dto.StatCard{
		{Title: "Today's Appointments", Value: todayCount},
		{Title: "Upcoming Appointments", Value: upcomingCount},
		{Title: "Completed Today", Value: completed},
		{Title: "Consultations Today", Value: consultations},
	}

	return resp
}

func (u *dashboardUsecase) scheduleRows(list []entity.Appointment) []dto.ScheduleRow {
	rows := make([]dto.ScheduleRow, 0, len(list))
	for _, a := range list {
		rows = append(rows, dto.ScheduleRow{
			AppointmentID: a.AppointmentID,
			Time:          presenter.FormatTime(a.AppointmentDateTime.Time, u.loc),
			Patient:       a.PatientName,
			Type:          presenter.TypeOrDefault(a.AppointmentType),
			Status:        presenter.StatusBadgeText(string(a.Status)),
			StatusColor:   presenter.StatusColor(string(a.Status)),
		})
	}
	return rows
}

// recentPatients walks today's appointments that have already started,
// newest first, keeping the first visit seen per patient.
func (u *dashboardUsecase) recentPatients(sorted []entity.Appointment) []dto.RecentPatient {
	now := u.now()
	seen := make(map[string]bool)
	recent := make([]dto.RecentPatient, 0, maxRecentPatients)

	for i := len(sorted) - 1; i >= 0 && len(recent) < maxRecentPatients; i-- {
		a := sorted[i]
		if a.AppointmentDateTime.After(now) || a.PatientName == "" || seen[a.PatientName] {
			continue
		}
		seen[a.PatientName] = true
		recent = append(recent, dto.RecentPatient{
			PatientID: a.PatientID,
			Name:      a.PatientName,
			LastVisit: presenter.FormatTime(a.AppointmentDateTime.Time, u.loc),
			Type:      presenter.TypeOrDefault(a.AppointmentType),
		})
	}
	return recent
}

func sortByTime(list []entity.Appointment) []entity.Appointment {
	sorted := make([]entity.Appointment, len(list))
	copy(sorted, list)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].AppointmentDateTime.Before(sorted[j].AppointmentDateTime.Time)
	})
	return sorted
}

func countWhere(list []entity.Appointment, pred func(entity.Appointment) bool) int {
	n := 0
	for _, a := range list {
		if pred(a) {
			n++
		}
	}
	return n
}
