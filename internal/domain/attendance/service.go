package attendance

import (
	"context"
	"time"
)

type AttendanceService interface {
	CheckIn(ctx context.Context, userID string) (AttendanceResponse, error)
	CheckOut(ctx context.Context, userID string) (AttendanceResponse, error)
	MyAttendance(ctx context.Context, userID string, filter RangeFilter) ([]AttendanceResponse, error)
	DailyRoster(ctx context.Context, date time.Time) ([]AttendanceResponse, error)
	DailySummary(ctx context.Context, date time.Time) (SummaryResponse, error)
}
