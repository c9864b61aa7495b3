package attendance_test

import (
	"testing"
	"time"

	"go-crm/internal/attendance"

	"github.com/stretchr/testify/assert"
)

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 2, hour, min, 0, 0, time.UTC)
}

func TestCheckInStatus(t *testing.T) {
	t.Run("non-tech start 09:30 with 15 minute grace", func(t *testing.T) {
		assert.Equal(t, attendance.StatusPresent, attendance.CheckInStatus(at(9, 15), false))
		assert.Equal(t, attendance.StatusPresent, attendance.CheckInStatus(at(9, 40), false))
		// tepat di batas grace masih Present
		assert.Equal(t, attendance.StatusPresent, attendance.CheckInStatus(at(9, 45), false))
		assert.Equal(t, attendance.StatusLate, attendance.CheckInStatus(at(9, 46), false))
		assert.Equal(t, attendance.StatusLate, attendance.CheckInStatus(at(9, 50), false))
	})

	t.Run("tech start 10:00", func(t *testing.T) {
		assert.Equal(t, attendance.StatusPresent, attendance.CheckInStatus(at(10, 15), true))
		assert.Equal(t, attendance.StatusLate, attendance.CheckInStatus(at(10, 16), true))
		// jam 09:50 untuk tim teknis tetap Present (sebelum jam mulai)
		assert.Equal(t, attendance.StatusPresent, attendance.CheckInStatus(at(9, 50), true))
	})

	t.Run("noon or later is half day regardless of team", func(t *testing.T) {
		assert.Equal(t, attendance.StatusHalfDay, attendance.CheckInStatus(at(12, 0), false))
		assert.Equal(t, attendance.StatusHalfDay, attendance.CheckInStatus(at(12, 5), true))
		assert.Equal(t, attendance.StatusLate, attendance.CheckInStatus(at(11, 59), false))
	})
}

func TestCheckOutStatus(t *testing.T) {
	t.Run("non-tech overtime after 18:30", func(t *testing.T) {
		assert.Equal(t, attendance.StatusPresent, attendance.CheckOutStatus(attendance.StatusPresent, at(18, 30), false))
		assert.Equal(t, attendance.StatusPresent+attendance.OvertimeSuffix, attendance.CheckOutStatus(attendance.StatusPresent, at(18, 31), false))
	})

	t.Run("tech overtime after 18:00", func(t *testing.T) {
		assert.Equal(t, attendance.StatusLate+attendance.OvertimeSuffix, attendance.CheckOutStatus(attendance.StatusLate, at(18, 1), true))
		assert.Equal(t, attendance.StatusLate, attendance.CheckOutStatus(attendance.StatusLate, at(17, 59), true))
	})
}

func TestWorkedHours(t *testing.T) {
	assert.Equal(t, 8.5, attendance.WorkedHours(at(9, 30), at(18, 0)))
	assert.Equal(t, 8.76, attendance.WorkedHours(at(9, 30), at(18, 15).Add(30*time.Second)))
	assert.Equal(t, 0.0, attendance.WorkedHours(at(18, 0), at(9, 0)))
}
