package attendance

import (
	"fmt"
	"time"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusLate    Status = "late"
	StatusAbsent  Status = "absent"
	StatusLeave   Status = "leave"
)

// LateThresholdHour is the local wall-clock hour at and after which a
// check-in is recorded as late.
const LateThresholdHour = 10

type Attendance struct {
	ID        string
	UserID    string
	Date      time.Time // calendar day in the workspace timezone
	CheckIn   *time.Time
	CheckOut  *time.Time
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time

	// Join
	FullName *string
}

// StatusForCheckIn derives the record status from the local check-in time.
// The status is computed once at check-in and never recomputed.
func StatusForCheckIn(local time.Time) Status {
	if local.Hour() >= LateThresholdHour {
		return StatusLate
	}
	return StatusPresent
}

// ElapsedLabel renders worked time the way the dashboard shows it: whole
// hours and remainder minutes, "in progress" while checked in, "-" when the
// day has no activity.
func (a Attendance) ElapsedLabel() string {
	if a.CheckIn == nil {
		return "-"
	}
	if a.CheckOut == nil {
		return "in progress"
	}
	d := a.CheckOut.Sub(*a.CheckIn)
	if d < 0 {
		d = 0
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh %dm", h, m)
}

// IsClosed reports whether both timestamps are set; a closed day accepts no
// further transitions.
func (a Attendance) IsClosed() bool {
	return a.CheckIn != nil && a.CheckOut != nil
}
