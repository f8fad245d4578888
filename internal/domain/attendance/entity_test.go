package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatusForCheckIn_AllHours(t *testing.T) {
	for h := 0; h < 24; h++ {
		at := time.Date(2024, 1, 16, h, 30, 0, 0, time.UTC)
		got := StatusForCheckIn(at)
		if h >= LateThresholdHour {
			assert.Equal(t, StatusLate, got, "hour %d", h)
		} else {
			assert.Equal(t, StatusPresent, got, "hour %d", h)
		}
	}
}

func TestStatusForCheckIn_ThresholdBoundary(t *testing.T) {
	justBefore := time.Date(2024, 1, 16, 9, 59, 59, 0, time.UTC)
	assert.Equal(t, StatusPresent, StatusForCheckIn(justBefore))

	exactly := time.Date(2024, 1, 16, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, StatusLate, StatusForCheckIn(exactly))
}

func TestElapsedLabel(t *testing.T) {
	in := time.Date(2024, 1, 16, 9, 0, 0, 0, time.UTC)
	out := time.Date(2024, 1, 16, 17, 45, 0, 0, time.UTC)

	cases := []struct {
		name string
		rec  Attendance
		want string
	}{
		{"no activity", Attendance{}, "-"},
		{"checked in only", Attendance{CheckIn: &in}, "in progress"},
		{"full day", Attendance{CheckIn: &in, CheckOut: &out}, "8h 45m"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, c.rec.ElapsedLabel())
		})
	}
}

func TestElapsedLabel_SubHour(t *testing.T) {
	in := time.Date(2024, 1, 16, 9, 0, 0, 0, time.UTC)
	out := in.Add(25 * time.Minute)
	rec := Attendance{CheckIn: &in, CheckOut: &out}
	assert.Equal(t, "0h 25m", rec.ElapsedLabel())
}

func TestIsClosed(t *testing.T) {
	in := time.Date(2024, 1, 16, 9, 0, 0, 0, time.UTC)
	out := in.Add(8 * time.Hour)

	assert.False(t, Attendance{}.IsClosed())
	assert.False(t, Attendance{CheckIn: &in}.IsClosed())
	assert.True(t, Attendance{CheckIn: &in, CheckOut: &out}.IsClosed())
}
