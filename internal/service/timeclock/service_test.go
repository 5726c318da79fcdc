package timeclock

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/kintai-dev/kintai-backend-go/internal/domain/timeclock"
	"github.com/kintai-dev/kintai-backend-go/internal/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEventRepository is an in-memory timeclock.EventRepository keeping
// events ordered by (recorded instant, id).
type fakeEventRepository struct {
	events []timeclock.Event
	nextID int
}

func (r *fakeEventRepository) Create(_ context.Context, ev timeclock.Event) (timeclock.Event, error) {
	r.nextID++
	ev.ID = fmt.Sprintf("ev-%03d", r.nextID)
	ev.CreatedAt = time.Now().UTC()
	r.events = append(r.events, ev)
	return ev, nil
}

func (r *fakeEventRepository) GetByID(_ context.Context, id string) (timeclock.Event, error) {
	for _, ev := range r.events {
		if ev.ID == id {
			return ev, nil
		}
	}
	return timeclock.Event{}, timeclock.ErrEventNotFound
}

func (r *fakeEventRepository) FindByUserInRange(_ context.Context, userID string, start, end time.Time) ([]timeclock.Event, error) {
	var out []timeclock.Event
	for _, ev := range r.events {
		if ev.UserID == userID && !ev.RecordedAt.Before(start) && ev.RecordedAt.Before(end) {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (r *fakeEventRepository) FindByUserOnDate(ctx context.Context, userID, localDate string) ([]timeclock.Event, error) {
	start, end, err := clock.DayBounds(localDate)
	if err != nil {
		return nil, err
	}
	return r.FindByUserInRange(ctx, userID, start, end)
}

func (r *fakeEventRepository) UpdateByID(_ context.Context, id string, patch timeclock.EventPatch) (timeclock.Event, error) {
	for i := range r.events {
		if r.events[i].ID != id {
			continue
		}
		if patch.RecordedAt != nil {
			r.events[i].RecordedAt = *patch.RecordedAt
		}
		if patch.Kind != nil {
			r.events[i].Kind = *patch.Kind
		}
		if patch.Latitude != nil {
			r.events[i].Latitude = patch.Latitude
		}
		if patch.Longitude != nil {
			r.events[i].Longitude = patch.Longitude
		}
		return r.events[i], nil
	}
	return timeclock.Event{}, timeclock.ErrEventNotFound
}

func authedContext(t *testing.T, userID string) context.Context {
	t.Helper()

	tokenAuth := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := tokenAuth.Encode(map[string]interface{}{
		"user_id": userID,
		"email":   "tester@example.com",
		"role":    "USER",
		"type":    "access",
	})
	require.NoError(t, err)

	return jwtauth.NewContext(context.Background(), token, nil)
}

func seedEvent(t *testing.T, repo *fakeEventRepository, userID string, kind timeclock.Kind, recordedAt time.Time) timeclock.Event {
	t.Helper()

	ev, err := repo.Create(context.Background(), timeclock.Event{
		UserID:     userID,
		Kind:       kind,
		RecordedAt: recordedAt.UTC(),
	})
	require.NoError(t, err)
	return ev
}

func TestTimeclockService_RecordEvent(t *testing.T) {
	repo := &fakeEventRepository{}
	svc := NewTimeclockService(repo, timeclock.DefaultShiftConfig())
	ctx := authedContext(t, "user-1")

	resp, err := svc.RecordEvent(ctx, timeclock.RecordEventRequest{Kind: timeclock.KindCheckIn})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "user-1", resp.UserID)
	assert.Equal(t, timeclock.KindCheckIn, resp.Kind)
	assert.Len(t, repo.events, 1)
}

func TestTimeclockService_RecordEvent_RejectedByGate(t *testing.T) {
	repo := &fakeEventRepository{}
	svc := NewTimeclockService(repo, timeclock.DefaultShiftConfig())
	ctx := authedContext(t, "user-1")

	// No check-in yet today, so a check-out must be refused and nothing
	// written.
	_, err := svc.RecordEvent(ctx, timeclock.RecordEventRequest{Kind: timeclock.KindCheckOut})

	assert.ErrorIs(t, err, timeclock.ErrActionNotAllowed)
	assert.Empty(t, repo.events)
}

func TestTimeclockService_RecordEvent_InvalidKind(t *testing.T) {
	repo := &fakeEventRepository{}
	svc := NewTimeclockService(repo, timeclock.DefaultShiftConfig())
	ctx := authedContext(t, "user-1")

	_, err := svc.RecordEvent(ctx, timeclock.RecordEventRequest{Kind: timeclock.Kind("nap_out")})

	assert.Error(t, err)
	assert.Empty(t, repo.events)
}

func TestTimeclockService_RecordEvent_MissingClaims(t *testing.T) {
	repo := &fakeEventRepository{}
	svc := NewTimeclockService(repo, timeclock.DefaultShiftConfig())

	_, err := svc.RecordEvent(context.Background(), timeclock.RecordEventRequest{Kind: timeclock.KindCheckIn})

	assert.Error(t, err)
	assert.Empty(t, repo.events)
}

func TestTimeclockService_GetTodayStatus(t *testing.T) {
	repo := &fakeEventRepository{}
	svc := NewTimeclockService(repo, timeclock.DefaultShiftConfig())
	ctx := authedContext(t, "user-1")

	status, err := svc.GetTodayStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, clock.LocalDate(time.Now().UTC()), status.Date)
	assert.True(t, status.CanCheckIn)
	assert.False(t, status.CanCheckOut)

	seedEvent(t, repo, "user-1", timeclock.KindCheckIn, time.Now())

	status, err = svc.GetTodayStatus(ctx)
	require.NoError(t, err)
	assert.False(t, status.CanCheckIn)
	assert.True(t, status.CanCheckOut)
}

func TestTimeclockService_GetTodayStatus_IgnoresOtherUsers(t *testing.T) {
	repo := &fakeEventRepository{}
	svc := NewTimeclockService(repo, timeclock.DefaultShiftConfig())

	seedEvent(t, repo, "user-2", timeclock.KindCheckIn, time.Now())

	status, err := svc.GetTodayStatus(authedContext(t, "user-1"))
	require.NoError(t, err)
	assert.True(t, status.CanCheckIn)
	assert.False(t, status.CanCheckOut)
}

func TestTimeclockService_GetMyEvents(t *testing.T) {
	repo := &fakeEventRepository{}
	svc := NewTimeclockService(repo, timeclock.DefaultShiftConfig())
	ctx := authedContext(t, "user-1")

	// 2024-03-10 09:00 and 18:00 local time.
	in := seedEvent(t, repo, "user-1", timeclock.KindCheckIn,
		time.Date(2024, 3, 10, 9, 0, 0, 0, clock.Location))
	seedEvent(t, repo, "user-1", timeclock.KindCheckOut,
		time.Date(2024, 3, 10, 18, 0, 0, 0, clock.Location))
	seedEvent(t, repo, "user-2", timeclock.KindCheckIn,
		time.Date(2024, 3, 10, 9, 30, 0, 0, clock.Location))

	events, err := svc.GetMyEvents(ctx, "2024-03-10")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, in.ID, events[0].ID)
	assert.Equal(t, "2024-03-10", events[0].LocalDate)
	assert.Equal(t, "09:00", events[0].LocalTime)
	assert.Equal(t, "18:00", events[1].LocalTime)
}

func TestTimeclockService_GetMonthlyReport(t *testing.T) {
	repo := &fakeEventRepository{}
	svc := NewTimeclockService(repo, timeclock.DefaultShiftConfig())
	ctx := authedContext(t, "admin-1")

	seedEvent(t, repo, "user-1", timeclock.KindCheckIn,
		time.Date(2024, 3, 10, 9, 0, 0, 0, clock.Location))
	seedEvent(t, repo, "user-1", timeclock.KindCheckOut,
		time.Date(2024, 3, 10, 18, 0, 0, 0, clock.Location))
	seedEvent(t, repo, "user-1", timeclock.KindCheckIn,
		time.Date(2024, 3, 11, 21, 0, 0, 0, clock.Location))
	seedEvent(t, repo, "user-1", timeclock.KindCheckOut,
		time.Date(2024, 3, 11, 23, 30, 0, 0, clock.Location))
	// Outside the requested month.
	seedEvent(t, repo, "user-1", timeclock.KindCheckIn,
		time.Date(2024, 4, 1, 9, 0, 0, 0, clock.Location))

	report, err := svc.GetMonthlyReport(ctx, timeclock.MonthlyReportRequest{
		UserID: "user-1",
		Year:   2024,
		Month:  3,
	})

	require.NoError(t, err)
	assert.Equal(t, "user-1", report.UserID)
	require.Len(t, report.Days, 2)
	assert.Equal(t, 8.0, report.Days["2024-03-10"].Hours[timeclock.ShiftMain])
	assert.Equal(t, 1.0, report.Days["2024-03-11"].Hours[timeclock.ShiftOT1])
	assert.Equal(t, 1.0, report.Days["2024-03-11"].Hours[timeclock.ShiftOT2])
}

func TestTimeclockService_GetMonthlyReport_OvernightShift(t *testing.T) {
	repo := &fakeEventRepository{}
	svc := NewTimeclockService(repo, timeclock.DefaultShiftConfig())
	ctx := authedContext(t, "admin-1")

	// Late shift started on the 10th, closed at 01:00 on the 11th.
	seedEvent(t, repo, "user-1", timeclock.KindCheckIn,
		time.Date(2024, 3, 10, 23, 0, 0, 0, clock.Location))
	seedEvent(t, repo, "user-1", timeclock.KindCheckOut,
		time.Date(2024, 3, 11, 1, 0, 0, 0, clock.Location))
	// Early-morning pair with no open work behind it stays on its own day.
	seedEvent(t, repo, "user-1", timeclock.KindCheckIn,
		time.Date(2024, 3, 12, 1, 30, 0, 0, clock.Location))
	seedEvent(t, repo, "user-1", timeclock.KindCheckOut,
		time.Date(2024, 3, 12, 2, 30, 0, 0, clock.Location))

	report, err := svc.GetMonthlyReport(ctx, timeclock.MonthlyReportRequest{
		UserID: "user-1",
		Year:   2024,
		Month:  3,
	})

	require.NoError(t, err)
	require.Len(t, report.Days, 2)

	// The 01:00 check-out belongs to the 10th; 23:00-01:00 is 2h of ot2.
	day, ok := report.Days["2024-03-10"]
	require.True(t, ok)
	assert.Equal(t, 2.0, day.Hours[timeclock.ShiftOT2])
	assert.Equal(t, 0.0, day.Hours[timeclock.ShiftMain])
	require.Len(t, day.CheckOuts, 1)
	assert.Equal(t, "01:00", day.CheckOuts[0].Time)
	_, ok = report.Days["2024-03-11"]
	assert.False(t, ok)

	day, ok = report.Days["2024-03-12"]
	require.True(t, ok)
	require.Len(t, day.CheckIns, 1)
	assert.Equal(t, 0.0, day.Hours[timeclock.ShiftOT2])
}

func TestTimeclockService_GetMonthlyReport_OvernightAtMonthEnd(t *testing.T) {
	repo := &fakeEventRepository{}
	svc := NewTimeclockService(repo, timeclock.DefaultShiftConfig())
	ctx := authedContext(t, "admin-1")

	seedEvent(t, repo, "user-1", timeclock.KindCheckIn,
		time.Date(2024, 3, 31, 23, 0, 0, 0, clock.Location))
	seedEvent(t, repo, "user-1", timeclock.KindCheckOut,
		time.Date(2024, 4, 1, 1, 0, 0, 0, clock.Location))

	report, err := svc.GetMonthlyReport(ctx, timeclock.MonthlyReportRequest{
		UserID: "user-1",
		Year:   2024,
		Month:  3,
	})

	require.NoError(t, err)
	require.Len(t, report.Days, 1)
	assert.Equal(t, 2.0, report.Days["2024-03-31"].Hours[timeclock.ShiftOT2])
}

func TestTimeclockService_GetMonthlyReport_InvalidMonth(t *testing.T) {
	svc := NewTimeclockService(&fakeEventRepository{}, timeclock.DefaultShiftConfig())

	_, err := svc.GetMonthlyReport(authedContext(t, "admin-1"), timeclock.MonthlyReportRequest{
		UserID: "user-1",
		Year:   2024,
		Month:  13,
	})

	assert.Error(t, err)
}

func TestTimeclockService_UpdateEvent(t *testing.T) {
	repo := &fakeEventRepository{}
	svc := NewTimeclockService(repo, timeclock.DefaultShiftConfig())
	ctx := authedContext(t, "admin-1")

	ev := seedEvent(t, repo, "user-1", timeclock.KindCheckIn,
		time.Date(2024, 3, 10, 9, 0, 0, 0, clock.Location))

	newKind := timeclock.KindCheckOut
	recordedAt := "2024-03-10T18:00:00+09:00"
	resp, err := svc.UpdateEvent(ctx, timeclock.UpdateEventRequest{
		ID:         ev.ID,
		RecordedAt: &recordedAt,
		Kind:       &newKind,
	})

	require.NoError(t, err)
	assert.Equal(t, timeclock.KindCheckOut, resp.Kind)
	assert.Equal(t, "18:00", resp.LocalTime)
	assert.Equal(t, "2024-03-10", resp.LocalDate)
}

func TestTimeclockService_UpdateEvent_NotFound(t *testing.T) {
	svc := NewTimeclockService(&fakeEventRepository{}, timeclock.DefaultShiftConfig())

	kind := timeclock.KindCheckIn
	_, err := svc.UpdateEvent(authedContext(t, "admin-1"), timeclock.UpdateEventRequest{
		ID:   "missing",
		Kind: &kind,
	})

	assert.ErrorIs(t, err, timeclock.ErrEventNotFound)
}
