package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/kintai-dev/kintai-backend-go/internal/domain/timeclock"
	"github.com/kintai-dev/kintai-backend-go/internal/pkg/clock"
	"github.com/kintai-dev/kintai-backend-go/internal/pkg/database"
)

type eventRepositoryImpl struct {
	db *database.DB
}

func NewEventRepository(db *database.DB) timeclock.EventRepository {
	return &eventRepositoryImpl{db: db}
}

// Create implements timeclock.EventRepository.
func (r *eventRepositoryImpl) Create(ctx context.Context, event timeclock.Event) (timeclock.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_events (id, user_id, recorded_at, kind, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, recorded_at, kind, latitude, longitude, created_at
	`

	id, err := uuid.NewV7()
	if err != nil {
		return timeclock.Event{}, err
	}

	var created timeclock.Event
	err = q.QueryRow(ctx, query,
		id.String(),
		event.UserID,
		event.RecordedAt,
		event.Kind,
		event.Latitude,
		event.Longitude,
	).Scan(
		&created.ID,
		&created.UserID,
		&created.RecordedAt,
		&created.Kind,
		&created.Latitude,
		&created.Longitude,
		&created.CreatedAt,
	)
	if err != nil {
		return timeclock.Event{}, err
	}

	return created, nil
}

// GetByID implements timeclock.EventRepository.
func (r *eventRepositoryImpl) GetByID(ctx context.Context, id string) (timeclock.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, recorded_at, kind, latitude, longitude, created_at
		FROM attendance_events
		WHERE id = $1
	`

	var found timeclock.Event
	err := q.QueryRow(ctx, query, id).Scan(
		&found.ID,
		&found.UserID,
		&found.RecordedAt,
		&found.Kind,
		&found.Latitude,
		&found.Longitude,
		&found.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timeclock.Event{}, timeclock.ErrEventNotFound
		}
		return timeclock.Event{}, err
	}

	return found, nil
}

// FindByUserInRange implements timeclock.EventRepository.
func (r *eventRepositoryImpl) FindByUserInRange(ctx context.Context, userID string, start, end time.Time) ([]timeclock.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, recorded_at, kind, latitude, longitude, created_at
		FROM attendance_events
		WHERE user_id = $1 AND recorded_at >= $2 AND recorded_at < $3
		ORDER BY recorded_at, id
	`

	rows, err := q.Query(ctx, query, userID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []timeclock.Event
	for rows.Next() {
		var ev timeclock.Event
		if err := rows.Scan(
			&ev.ID,
			&ev.UserID,
			&ev.RecordedAt,
			&ev.Kind,
			&ev.Latitude,
			&ev.Longitude,
			&ev.CreatedAt,
		); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

// FindByUserOnDate implements timeclock.EventRepository.
func (r *eventRepositoryImpl) FindByUserOnDate(ctx context.Context, userID string, localDate string) ([]timeclock.Event, error) {
	start, end, err := clock.DayBounds(localDate)
	if err != nil {
		return nil, err
	}
	return r.FindByUserInRange(ctx, userID, start, end)
}

// UpdateByID implements timeclock.EventRepository.
func (r *eventRepositoryImpl) UpdateByID(ctx context.Context, id string, patch timeclock.EventPatch) (timeclock.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_events
		SET recorded_at = COALESCE($1, recorded_at),
		    kind = COALESCE($2, kind),
		    latitude = COALESCE($3, latitude),
		    longitude = COALESCE($4, longitude)
		WHERE id = $5
		RETURNING id, user_id, recorded_at, kind, latitude, longitude, created_at
	`

	var updated timeclock.Event
	err := q.QueryRow(ctx, query,
		patch.RecordedAt,
		patch.Kind,
		patch.Latitude,
		patch.Longitude,
		id,
	).Scan(
		&updated.ID,
		&updated.UserID,
		&updated.RecordedAt,
		&updated.Kind,
		&updated.Latitude,
		&updated.Longitude,
		&updated.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timeclock.Event{}, timeclock.ErrEventNotFound
		}
		return timeclock.Event{}, err
	}

	return updated, nil
}
