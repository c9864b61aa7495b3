package attendance

import (
	"math"
	"time"
)

const (
	StatusPresent = "Present"
	StatusLate    = "Late"
	StatusHalfDay = "Half Day"

	OvertimeSuffix = " (Overtime)"
)

// Jam kebijakan absensi. Tim teknis mulai lebih siang dan pulang lebih awal.
const (
	techStartHour, techStartMinute       = 10, 0
	nonTechStartHour, nonTechStartMinute = 9, 30

	graceMinutes = 15

	halfDayHour = 12

	techOvertimeHour, techOvertimeMinute       = 18, 0
	nonTechOvertimeHour, nonTechOvertimeMinute = 18, 30
)

func startOfShift(day time.Time, techTeam bool) time.Time {
	h, m := nonTechStartHour, nonTechStartMinute
	if techTeam {
		h, m = techStartHour, techStartMinute
	}
	return time.Date(day.Year(), day.Month(), day.Day(), h, m, 0, 0, day.Location())
}

func overtimeCutoff(day time.Time, techTeam bool) time.Time {
	h, m := nonTechOvertimeHour, nonTechOvertimeMinute
	if techTeam {
		h, m = techOvertimeHour, techOvertimeMinute
	}
	return time.Date(day.Year(), day.Month(), day.Day(), h, m, 0, 0, day.Location())
}

// CheckInStatus menurunkan status dari jam check-in:
//   - mulai pukul 12:00 ke atas -> Half Day;
//   - sampai 15 menit setelah jam mulai (inklusif) -> Present;
//   - selain itu -> Late.
func CheckInStatus(checkIn time.Time, techTeam bool) string {
	halfDay := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(), halfDayHour, 0, 0, 0, checkIn.Location())
	if !checkIn.Before(halfDay) {
		return StatusHalfDay
	}

	deadline := startOfShift(checkIn, techTeam).Add(graceMinutes * time.Minute)
	if !checkIn.After(deadline) {
		return StatusPresent
	}
	return StatusLate
}

// CheckOutStatus menambahkan suffix Overtime kalau check-out lewat dari
// batas pulang (18:00 tim teknis, 18:30 lainnya). Status dasar tidak diubah.
func CheckOutStatus(status string, checkOut time.Time, techTeam bool) string {
	if checkOut.After(overtimeCutoff(checkOut, techTeam)) {
		return status + OvertimeSuffix
	}
	return status
}

// WorkedHours menghitung selisih check-out dan check-in dalam jam
// pecahan, dibulatkan ke 2 desimal.
func WorkedHours(checkIn, checkOut time.Time) float64 {
	hours := checkOut.Sub(checkIn).Hours()
	if hours < 0 {
		hours = 0
	}
	return math.Round(hours*100) / 100
}
