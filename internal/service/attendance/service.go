package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/taskora/taskora-backend-go/internal/domain/attendance"
	"github.com/taskora/taskora-backend-go/internal/domain/notification"
	"github.com/taskora/taskora-backend-go/internal/domain/user"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	user.ProfileRepository
	notifications notification.Service
	location      *time.Location
}

func NewAttendanceService(
	attendanceRepository attendance.AttendanceRepository,
	profileRepository user.ProfileRepository,
	notificationService notification.Service,
	location *time.Location,
) attendance.AttendanceService {
	if location == nil {
		location = time.UTC
	}
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepository,
		ProfileRepository:    profileRepository,
		notifications:        notificationService,
		location:             location,
	}
}

// today truncates now to the workspace-local calendar day.
func (s *AttendanceServiceImpl) today(now time.Time) time.Time {
	local := now.In(s.location)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.location)
}

// CheckIn implements attendance.AttendanceService. Repeated calls for the
// same day are rejected: the (user_id, date) uniqueness lets the first writer
// win and everyone else sees ErrAlreadyCheckedIn, including concurrent
// callers.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, userID string) (attendance.AttendanceResponse, error) {
	now := time.Now().In(s.location)
	date := s.today(now)

	record := attendance.Attendance{
		UserID:  userID,
		Date:    date,
		CheckIn: &now,
		Status:  attendance.StatusForCheckIn(now),
	}

	inserted, err := s.InsertIfAbsent(ctx, record)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to insert attendance: %w", err)
	}
	if !inserted {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	}

	stored, err := s.GetByUserAndDate(ctx, userID, date)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to read attendance back: %w", err)
	}
	if stored == nil {
		return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
	}

	s.notifyCheckIn(ctx, userID, *stored)

	return stored.ToResponse(), nil
}

func (s *AttendanceServiceImpl) notifyCheckIn(ctx context.Context, userID string, record attendance.Attendance) {
	if s.notifications == nil {
		return
	}
	name := userID
	if profile, err := s.ProfileRepository.GetByUserID(ctx, userID); err == nil {
		name = profile.FullName
	}
	description := fmt.Sprintf("%s checked in", name)
	if record.Status == attendance.StatusLate {
		description = fmt.Sprintf("%s checked in late", name)
	}
	// Best effort; a failed notification never fails the check-in.
	_ = s.notifications.Queue(ctx, notification.CreateNotificationRequest{
		RecipientID: userID,
		Category:    notification.CategoryAttendanceCheckIn,
		Title:       "Attendance recorded",
		Description: description,
	})
}

// CheckOut implements attendance.AttendanceService. Closing requires an open
// check-in; the conditional update decides atomically, so a day can only be
// closed once.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, userID string) (attendance.AttendanceResponse, error) {
	now := time.Now().In(s.location)
	date := s.today(now)

	existing, err := s.GetByUserAndDate(ctx, userID, date)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	if existing == nil || existing.CheckIn == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	}
	if existing.CheckOut != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	updated, err := s.SetCheckOut(ctx, userID, date, now)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to set check-out: %w", err)
	}
	if !updated {
		// Lost a race to another check-out between the read and the update.
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	stored, err := s.GetByUserAndDate(ctx, userID, date)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to read attendance back: %w", err)
	}
	if stored == nil {
		return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
	}

	return stored.ToResponse(), nil
}

// MyAttendance implements attendance.AttendanceService. An empty filter
// defaults to the last 30 days.
func (s *AttendanceServiceImpl) MyAttendance(ctx context.Context, userID string, filter attendance.RangeFilter) ([]attendance.AttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().In(s.location)
	to := s.today(now)
	from := to.AddDate(0, 0, -30)

	if filter.From != "" {
		parsed, err := time.ParseInLocation("2006-01-02", filter.From, s.location)
		if err != nil {
			return nil, fmt.Errorf("failed to parse from date: %w", err)
		}
		from = parsed
	}
	if filter.To != "" {
		parsed, err := time.ParseInLocation("2006-01-02", filter.To, s.location)
		if err != nil {
			return nil, fmt.Errorf("failed to parse to date: %w", err)
		}
		to = parsed
	}

	records, err := s.ListByUser(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, r.ToResponse())
	}
	return responses, nil
}

// DailyRoster implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) DailyRoster(ctx context.Context, date time.Time) ([]attendance.AttendanceResponse, error) {
	if date.IsZero() {
		date = s.today(time.Now())
	}

	records, err := s.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance roster: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, r.ToResponse())
	}
	return responses, nil
}

// DailySummary implements attendance.AttendanceService. Absent is the active
// headcount minus the records that exist for the day, floored at zero so a
// stale headcount cannot produce a negative.
func (s *AttendanceServiceImpl) DailySummary(ctx context.Context, date time.Time) (attendance.SummaryResponse, error) {
	if date.IsZero() {
		date = s.today(time.Now())
	}

	counts, err := s.CountByStatus(ctx, date)
	if err != nil {
		return attendance.SummaryResponse{}, fmt.Errorf("failed to count attendance: %w", err)
	}

	totalStaff, err := s.CountActive(ctx)
	if err != nil {
		return attendance.SummaryResponse{}, fmt.Errorf("failed to count active staff: %w", err)
	}

	recorded := 0
	for _, n := range counts {
		recorded += n
	}
	absent := totalStaff - recorded
	if absent < 0 {
		absent = 0
	}

	return attendance.SummaryResponse{
		Date:       date.Format("2006-01-02"),
		TotalStaff: totalStaff,
		Present:    counts[attendance.StatusPresent],
		Late:       counts[attendance.StatusLate],
		Leave:      counts[attendance.StatusLeave],
		Absent:     absent,
	}, nil
}
