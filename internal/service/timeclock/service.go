package timeclock

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/kintai-dev/kintai-backend-go/internal/domain/timeclock"
	"github.com/kintai-dev/kintai-backend-go/internal/pkg/clock"
)

type TimeclockServiceImpl struct {
	timeclock.EventRepository
	calculator *Calculator
	cfg        timeclock.ShiftConfig
}

func NewTimeclockService(eventRepo timeclock.EventRepository, cfg timeclock.ShiftConfig) timeclock.TimeclockService {
	return &TimeclockServiceImpl{
		EventRepository: eventRepo,
		calculator:      NewCalculator(cfg),
		cfg:             cfg,
	}
}

func userIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user_id claim is missing or invalid")
	}
	return userID, nil
}

func toEventResponse(ev timeclock.Event) timeclock.EventResponse {
	return timeclock.EventResponse{
		ID:         ev.ID,
		UserID:     ev.UserID,
		Kind:       ev.Kind,
		RecordedAt: ev.RecordedAt.UTC().Format(time.RFC3339),
		LocalDate:  clock.LocalDate(ev.RecordedAt),
		LocalTime:  clock.HHMM(ev.RecordedAt),
		Latitude:   ev.Latitude,
		Longitude:  ev.Longitude,
	}
}

// RecordEvent implements timeclock.TimeclockService.
func (s *TimeclockServiceImpl) RecordEvent(ctx context.Context, req timeclock.RecordEventRequest) (timeclock.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return timeclock.EventResponse{}, err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return timeclock.EventResponse{}, err
	}

	nowUTC := time.Now().UTC()
	today := clock.LocalDate(nowUTC)

	events, err := s.EventRepository.FindByUserOnDate(ctx, userID, today)
	if err != nil {
		return timeclock.EventResponse{}, fmt.Errorf("failed to load today's events: %w", err)
	}

	gate := DeriveGate(events, clock.ToLocal(nowUTC).Hour(), s.cfg)
	if !gate.Allows(req.Kind) {
		return timeclock.EventResponse{}, timeclock.ErrActionNotAllowed
	}

	created, err := s.EventRepository.Create(ctx, timeclock.Event{
		UserID:     userID,
		RecordedAt: nowUTC,
		Kind:       req.Kind,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
	})
	if err != nil {
		return timeclock.EventResponse{}, fmt.Errorf("failed to create attendance event: %w", err)
	}

	return toEventResponse(created), nil
}

// GetTodayStatus implements timeclock.TimeclockService.
func (s *TimeclockServiceImpl) GetTodayStatus(ctx context.Context) (timeclock.TodayStatusResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return timeclock.TodayStatusResponse{}, err
	}

	nowUTC := time.Now().UTC()
	today := clock.LocalDate(nowUTC)

	events, err := s.EventRepository.FindByUserOnDate(ctx, userID, today)
	if err != nil {
		return timeclock.TodayStatusResponse{}, fmt.Errorf("failed to load today's events: %w", err)
	}

	gate := DeriveGate(events, clock.ToLocal(nowUTC).Hour(), s.cfg)

	return timeclock.TodayStatusResponse{
		Date:        today,
		CanCheckIn:  gate.CheckIn,
		CanCheckOut: gate.CheckOut,
		CanLunchOut: gate.LunchOut,
		CanLunchIn:  gate.LunchIn,
	}, nil
}

// GetMyEvents implements timeclock.TimeclockService.
func (s *TimeclockServiceImpl) GetMyEvents(ctx context.Context, localDate string) ([]timeclock.EventResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if localDate == "" {
		localDate = clock.LocalDate(time.Now().UTC())
	}

	events, err := s.EventRepository.FindByUserOnDate(ctx, userID, localDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}

	responses := make([]timeclock.EventResponse, 0, len(events))
	for _, ev := range events {
		responses = append(responses, toEventResponse(ev))
	}
	return responses, nil
}

// GetMonthlyReport implements timeclock.TimeclockService.
func (s *TimeclockServiceImpl) GetMonthlyReport(ctx context.Context, req timeclock.MonthlyReportRequest) (timeclock.MonthlyReportResponse, error) {
	if err := req.Validate(); err != nil {
		return timeclock.MonthlyReportResponse{}, err
	}

	// Fetch past the month end by the rollover span so a late shift started
	// on the month's last day still finds its early-morning check-out.
	rollover := s.cfg.DayRollover()
	start, end := clock.MonthBounds(req.Year, time.Month(req.Month))
	fetchEnd := end.Add(time.Duration(rollover) * time.Minute)
	events, err := s.EventRepository.FindByUserInRange(ctx, req.UserID, start, fetchEnd)
	if err != nil {
		return timeclock.MonthlyReportResponse{}, fmt.Errorf("failed to load events for month: %w", err)
	}

	// Events are ordered by recorded instant, so a day's bucket always exists
	// before the events that might continue it. An event recorded before the
	// rollover boundary while the previous day still has an open check-in is
	// the tail of that day's late shift, not the start of a new one.
	buckets := make(map[string]*dayBucket)
	for _, ev := range events {
		if rollover > 0 && clock.MinuteOfDay(ev.RecordedAt) < rollover {
			prevDate := clock.LocalDate(ev.RecordedAt.AddDate(0, 0, -1))
			if prev, ok := buckets[prevDate]; ok && prev.openWork() {
				prev.add(ev)
				continue
			}
		}
		if !ev.RecordedAt.Before(end) {
			// Spillover fetch window; only continuations of the last day count.
			continue
		}
		date := clock.LocalDate(ev.RecordedAt)
		bucket, ok := buckets[date]
		if !ok {
			bucket = &dayBucket{date: date}
			buckets[date] = bucket
		}
		bucket.add(ev)
	}

	dates := make([]string, 0, len(buckets))
	for date := range buckets {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	days := make(map[string]timeclock.DailyReport, len(buckets))
	for _, date := range dates {
		days[date] = s.calculator.Report(*buckets[date])
	}

	return timeclock.MonthlyReportResponse{
		UserID: req.UserID,
		Year:   req.Year,
		Month:  req.Month,
		Days:   days,
	}, nil
}

// UpdateEvent implements timeclock.TimeclockService.
// Administrative correction of a single event; trusted caller only, the
// status gate is deliberately not consulted.
func (s *TimeclockServiceImpl) UpdateEvent(ctx context.Context, req timeclock.UpdateEventRequest) (timeclock.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return timeclock.EventResponse{}, err
	}

	patch := timeclock.EventPatch{
		Kind:      req.Kind,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}
	if req.RecordedAt != nil {
		recordedAt, err := time.Parse(time.RFC3339, *req.RecordedAt)
		if err != nil {
			return timeclock.EventResponse{}, fmt.Errorf("failed to parse recorded_at: %w", err)
		}
		recordedAtUTC := recordedAt.UTC()
		patch.RecordedAt = &recordedAtUTC
	}

	updated, err := s.EventRepository.UpdateByID(ctx, req.ID, patch)
	if err != nil {
		if errors.Is(err, timeclock.ErrEventNotFound) {
			return timeclock.EventResponse{}, timeclock.ErrEventNotFound
		}
		return timeclock.EventResponse{}, fmt.Errorf("failed to update attendance event: %w", err)
	}

	return toEventResponse(updated), nil
}
