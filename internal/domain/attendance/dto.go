package attendance

import (
	"time"

	"github.com/taskora/taskora-backend-go/internal/pkg/validator"
)

type AttendanceResponse struct {
	ID       string  `json:"id"`
	UserID   string  `json:"user_id"`
	Date     string  `json:"date"`
	CheckIn  *string `json:"check_in"`
	CheckOut *string `json:"check_out"`
	Status   Status  `json:"status"`
	Elapsed  string  `json:"elapsed"`
	FullName *string `json:"full_name,omitempty"`
}

func (a Attendance) ToResponse() AttendanceResponse {
	return AttendanceResponse{
		ID:       a.ID,
		UserID:   a.UserID,
		Date:     a.Date.Format("2006-01-02"),
		CheckIn:  formatTimePtr(a.CheckIn),
		CheckOut: formatTimePtr(a.CheckOut),
		Status:   a.Status,
		Elapsed:  a.ElapsedLabel(),
		FullName: a.FullName,
	}
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

// SummaryResponse is the per-day roster roll-up. Absent is derived by
// comparing the active headcount against the records that exist for the day,
// an approximation rather than a server-verified absence marker.
type SummaryResponse struct {
	Date       string `json:"date"`
	TotalStaff int    `json:"total_staff"`
	Present    int    `json:"present"`
	Late       int    `json:"late"`
	Leave      int    `json:"leave"`
	Absent     int    `json:"absent"`
}

type RangeFilter struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func (f *RangeFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.From != "" {
		if _, ok := validator.IsValidDate(f.From); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "from",
				Message: "from must be a date in YYYY-MM-DD format",
			})
		}
	}
	if f.To != "" {
		if _, ok := validator.IsValidDate(f.To); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "to",
				Message: "to must be a date in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
