package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"invoice_idor/internal/models"
	"invoice_idor/internal/repository"
)

type EventLogService struct {
	eventRepo repository.EventRepo
	now       func() time.Time
}

func NewEventLogService(eventRepo repository.EventRepo) *EventLogService {
	return &EventLogService{eventRepo: eventRepo, now: time.Now}
}

var (
	errInvalidTimeRange = errors.New("invalid time range: From must be <= To")
)

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// normalizeEventType trims spaces and uppercases the event type filter.
func normalizeEventType(s string) string {
	return strings.TrimSpace(strings.ToUpper(s))
}

// normalizeAndValidateFilter prepares query parameters and validates the time range.
func normalizeAndValidateFilter(f LogFilter) (time.Time, time.Time, string, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)

	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, "", errInvalidTimeRange
	}

	return from, to, normalizeEventType(f.Type), nil
}

// Record appends e, stamping it with the current time when unset.
func (s *EventLogService) Record(ctx context.Context, e models.AccessEvent) error {
	if e.OccurredAt.IsZero() {
		e.OccurredAt = s.now().UTC()
	}
	e.Type = normalizeEventType(e.Type)
	return s.eventRepo.Append(ctx, e)
}

func (s *EventLogService) List(ctx context.Context, f LogFilter) ([]models.AccessEvent, error) {
	from, to, typ, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	return s.eventRepo.List(ctx, from, to, typ)
}

// Prune removes events that occurred before the cutoff.
func (s *EventLogService) Prune(ctx context.Context, before time.Time) (int64, error) {
	return s.eventRepo.DeleteBefore(ctx, normalizeToUTC(before))
}
