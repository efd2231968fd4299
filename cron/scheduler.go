package cron

import (
	"context"
	"encoding/json"
	"time"

	bookingRepo "bookwell/database/repository/booking"
	tenantRepo "bookwell/database/repository/tenant"
	"bookwell/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// ReminderDispatcher hands a due booking off for delivery. The
// production implementation enqueues an asynq task; tests inject a fake.
type ReminderDispatcher interface {
	EnqueueReminder(ctx context.Context, tenantID string, b models.Booking) error
}

// AsynqDispatcher enqueues reminder:send tasks on the redis-backed queue.
type AsynqDispatcher struct {
	Client *asynq.Client
}

func (d *AsynqDispatcher) EnqueueReminder(ctx context.Context, tenantID string, b models.Booking) error {
	payload, err := json.Marshal(models.ReminderPayload{TenantID: tenantID, BookingID: b.ID})
	if err != nil {
		return err
	}
	task := asynq.NewTask(TypeReminderSend, payload)
	_, err = d.Client.EnqueueContext(ctx, task, asynq.MaxRetry(3))
	return err
}

// ReminderScheduler periodically finds bookings approaching their
// start time and dispatches one reminder each. A failure on one
// booking or one tenant never aborts the rest of the run.
type ReminderScheduler struct {
	Tenants  tenantRepo.TenantRepository
	Bookings bookingRepo.BookingRepository
	Dispatch ReminderDispatcher
	Now      func() time.Time
}

func (s *ReminderScheduler) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Start runs the scheduler on a fixed interval until ctx is cancelled.
func (s *ReminderScheduler) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("reminder scheduler shutdown signal received")
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce performs a single dispatch pass. Tenants are grouped by
// configured lead time, since the target window depends on it.
func (s *ReminderScheduler) RunOnce(ctx context.Context) {
	logger := zap.L()

	tenants, err := s.Tenants.ListReminderEnabled(ctx)
	if err != nil {
		logger.Error("reminder run: failed to load tenants", zap.Error(err))
		return
	}
	if len(tenants) == 0 {
		return
	}

	byLead := make(map[int][]models.Tenant)
	for _, t := range tenants {
		if t.ReminderHoursBefore <= 0 {
			continue
		}
		byLead[t.ReminderHoursBefore] = append(byLead[t.ReminderHoursBefore], t)
	}

	now := s.now()
	for lead, group := range byLead {
		targetStart := now.Add(time.Duration(lead) * time.Hour)
		targetEnd := targetStart.Add(time.Hour)
		segments := windowSegments(targetStart, targetEnd)

		for _, tenant := range group {
			s.runTenant(ctx, tenant, segments)
		}
	}
}

func (s *ReminderScheduler) runTenant(ctx context.Context, tenant models.Tenant, segments []daySegment) {
	logger := zap.L().With(zap.String("tenantId", tenant.ID))

	for _, seg := range segments {
		bookings, err := s.Bookings.ListRemindable(ctx, tenant.ID, seg.Date, seg.StartMin, seg.EndMin)
		if err != nil {
			logger.Error("reminder run: query failed", zap.String("date", seg.Date), zap.Error(err))
			continue
		}

		for _, b := range bookings {
			if err := s.Dispatch.EnqueueReminder(ctx, tenant.ID, b); err != nil {
				logger.Error("reminder run: dispatch failed",
					zap.String("bookingId", b.ID), zap.Error(err))
				continue
			}
			won, err := s.Bookings.MarkReminderSent(ctx, tenant.ID, b.ID, s.now())
			if err != nil {
				logger.Error("reminder run: failed to set reminder marker",
					zap.String("bookingId", b.ID), zap.Error(err))
				continue
			}
			if !won {
				// Another run got here first; the marker check keeps
				// delivery at most once per booking.
				continue
			}
			logger.Info("reminder dispatched",
				zap.String("bookingId", b.ID),
				zap.String("date", b.Date))
		}
	}
}

// daySegment is the portion of a reminder window falling on one
// calendar date, expressed in minutes from midnight.
type daySegment struct {
	Date     string
	StartMin int
	EndMin   int
}

// windowSegments splits [start, end) into per-date minute ranges using
// full date-time arithmetic, so a window opened late in the evening
// correctly lands on the next calendar date.
func windowSegments(start, end time.Time) []daySegment {
	var segments []daySegment
	for cursor := start; cursor.Before(end); {
		dayEnd := time.Date(cursor.Year(), cursor.Month(), cursor.Day(), 0, 0, 0, 0, cursor.Location()).AddDate(0, 0, 1)
		segEnd := end
		if dayEnd.Before(end) {
			segEnd = dayEnd
		}

		startMin := cursor.Hour()*60 + cursor.Minute()
		endMin := segEnd.Hour()*60 + segEnd.Minute()
		if endMin == 0 && segEnd.After(cursor) {
			endMin = 24 * 60
		}

		segments = append(segments, daySegment{
			Date:     cursor.Format("2006-01-02"),
			StartMin: startMin,
			EndMin:   endMin,
		})
		cursor = segEnd
	}
	return segments
}
