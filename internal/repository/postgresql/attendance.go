package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/taskora/taskora-backend-go/internal/domain/attendance"
	"github.com/taskora/taskora-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

// InsertIfAbsent implements attendance.AttendanceRepository.
func (a *attendanceRepository) InsertIfAbsent(ctx context.Context, record attendance.Attendance) (bool, error) {
	q := GetQuerier(ctx, a.db)

	// ON CONFLICT DO NOTHING against the (user_id, date) unique constraint:
	// under concurrent check-ins the first writer wins and exactly one row
	// exists afterwards.
	query := `
		INSERT INTO attendance (user_id, date, check_in, check_out, status)
		VALUES ($1, $2, $3, NULL, $4)
		ON CONFLICT (user_id, date) DO NOTHING
	`

	tag, err := q.Exec(ctx, query,
		record.UserID,
		record.Date,
		record.CheckIn,
		string(record.Status),
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert attendance: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// GetByUserAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, user_id, date, check_in, check_out, status, created_at, updated_at
		FROM attendance
		WHERE user_id = $1 AND date = $2
	`

	var att attendance.Attendance
	var status string
	err := q.QueryRow(ctx, query, userID, date).Scan(
		&att.ID, &att.UserID, &att.Date, &att.CheckIn, &att.CheckOut, &status,
		&att.CreatedAt, &att.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // no record for that day
		}
		return nil, fmt.Errorf("failed to get attendance by user and date: %w", err)
	}

	att.Status = attendance.Status(status)
	return &att, nil
}

// SetCheckOut implements attendance.AttendanceRepository.
func (a *attendanceRepository) SetCheckOut(ctx context.Context, userID string, date time.Time, at time.Time) (bool, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance
		SET check_out = $3, updated_at = NOW()
		WHERE user_id = $1 AND date = $2
		  AND check_in IS NOT NULL
		  AND check_out IS NULL
	`

	tag, err := q.Exec(ctx, query, userID, date, at)
	if err != nil {
		return false, fmt.Errorf("failed to set check-out: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// ListByUser implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByUser(ctx context.Context, userID string, from, to time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, user_id, date, check_in, check_out, status, created_at, updated_at
		FROM attendance
		WHERE user_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date DESC
	`

	rows, err := q.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	return scanAttendanceRows(rows, false)
}

// ListByDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByDate(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT a.id, a.user_id, a.date, a.check_in, a.check_out, a.status, a.created_at, a.updated_at,
		       p.full_name
		FROM attendance a
		LEFT JOIN profiles p ON p.user_id = a.user_id
		WHERE a.date = $1
		ORDER BY p.full_name ASC
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance by date: %w", err)
	}
	defer rows.Close()

	return scanAttendanceRows(rows, true)
}

// CountByStatus implements attendance.AttendanceRepository.
func (a *attendanceRepository) CountByStatus(ctx context.Context, date time.Time) (map[attendance.Status]int, error) {
	q := GetQuerier(ctx, a.db)

	rows, err := q.Query(ctx, `
		SELECT status, COUNT(*)
		FROM attendance
		WHERE date = $1
		GROUP BY status
	`, date)
	if err != nil {
		return nil, fmt.Errorf("failed to count attendance by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[attendance.Status]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan attendance count: %w", err)
		}
		counts[attendance.Status(status)] = count
	}
	return counts, rows.Err()
}

func scanAttendanceRows(rows pgx.Rows, withName bool) ([]attendance.Attendance, error) {
	var records []attendance.Attendance
	for rows.Next() {
		var att attendance.Attendance
		var status string
		dest := []interface{}{
			&att.ID, &att.UserID, &att.Date, &att.CheckIn, &att.CheckOut, &status,
			&att.CreatedAt, &att.UpdatedAt,
		}
		if withName {
			dest = append(dest, &att.FullName)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan attendance row: %w", err)
		}
		att.Status = attendance.Status(status)
		records = append(records, att)
	}
	return records, rows.Err()
}
