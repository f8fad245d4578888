package attendance

import "errors"

var (
	ErrAlreadyCheckedIn   = errors.New("you have already checked in today")
	ErrNotCheckedIn       = errors.New("you have not checked in yet")
	ErrAlreadyCheckedOut  = errors.New("you have already checked out")
	ErrAttendanceNotFound = errors.New("attendance record not found")
)
