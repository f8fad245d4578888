package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for day-keyed attendance records.
type AttendanceRepository interface {
	// InsertIfAbsent creates the record for (userID, date) if none exists.
	// The uniqueness constraint on (user_id, date) makes this the upsert the
	// check-in flow relies on: under concurrent check-ins exactly one row
	// survives and inserted=false signals the loser.
	InsertIfAbsent(ctx context.Context, record Attendance) (inserted bool, err error)

	// GetByUserAndDate retrieves the record for a specific day; nil when the
	// day has no record.
	GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*Attendance, error)

	// SetCheckOut closes the day. Only rows with a check-in and no check-out
	// are updated; updated=false means there was nothing to close.
	SetCheckOut(ctx context.Context, userID string, date time.Time, at time.Time) (updated bool, err error)

	// ListByUser returns a user's records within [from, to], newest first.
	ListByUser(ctx context.Context, userID string, from, to time.Time) ([]Attendance, error)

	// ListByDate returns all records for a day joined with profile names.
	ListByDate(ctx context.Context, date time.Time) ([]Attendance, error)

	// CountByStatus returns per-status record counts for a day.
	CountByStatus(ctx context.Context, date time.Time) (map[Status]int, error)
}
