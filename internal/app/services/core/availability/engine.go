package availability

import (
	"fmt"
	"time"

	"medicore-service/internal/app/models"
)

func validWindow(a, b Clock) bool {
	return a.Minutes() < b.Minutes()
}

// dayWindow resolves the weekday entry for date into a validated window.
// The second return is false when the day is closed or misconfigured.
func dayWindow(weekly models.WeeklyAvailability, date time.Time) (Clock, Clock, bool) {
	day := weekly.ForWeekday(date.Weekday())
	if !day.Available {
		return Clock{}, Clock{}, false
	}
	start, ok1 := ParseClock(day.Start)
	end, ok2 := ParseClock(day.End)
	if !ok1 || !ok2 || !validWindow(start, end) {
		return Clock{}, Clock{}, false
	}
	return start, end, true
}

// IsDayAvailable reports whether the doctor works on the weekday of date.
func IsDayAvailable(weekly models.WeeklyAvailability, date time.Time) bool {
	_, _, ok := dayWindow(weekly, date)
	return ok
}

// Slots enumerates the discrete slot starts within [start, end) spaced by
// slotMinutes. A candidate whose end would exceed the window end is dropped,
// so 09:00-17:00 at 30 minutes yields 09:00 through 16:30.
func Slots(weekly models.WeeklyAvailability, date time.Time, slotMinutes int) []Clock {
	start, end, ok := dayWindow(weekly, date)
	if !ok {
		return nil
	}
	if slotMinutes <= 0 {
		slotMinutes = DefaultSlotMinutes
	}
	var out []Clock
	for m := start.Minutes(); m+slotMinutes <= end.Minutes(); m += slotMinutes {
		out = append(out, Clock{H: m / 60, M: m % 60})
	}
	return out
}

// IsSlotBookable reports whether t falls inside the day's working window.
// Membership is [start, end): 16:59 is bookable against a 17:00 close,
// 17:00 itself is not. Alignment to the slot grid is not required.
func IsSlotBookable(weekly models.WeeklyAvailability, date time.Time, t Clock) bool {
	start, end, ok := dayWindow(weekly, date)
	if !ok {
		return false
	}
	return t.Minutes() >= start.Minutes() && t.Minutes() < end.Minutes()
}

// HasConflict reports whether another blocking appointment already holds the
// exact doctor+date+time slot. Times are normalized before comparison so
// "9.30" and "09:30" collide.
func HasConflict(existing []BookedSlot, doctorID, date string, t Clock) bool {
	for _, booked := range existing {
		if booked.DoctorID != doctorID || booked.Date != date {
			continue
		}
		if !booked.Status.IsBlocking() {
			continue
		}
		bookedClock, ok := ParseClock(booked.Time)
		if !ok {
			continue
		}
		if bookedClock.Minutes() == t.Minutes() {
			return true
		}
	}
	return false
}

// Decide runs the booking checks in their fixed order: doctor status, past
// date/time, working hours, then slot conflict. The first failure wins. On
// success it returns the normalized booking with status scheduled.
func Decide(req BookingRequest, doctor *models.Doctor, existing []BookedSlot, now time.Time, loc *time.Location) (Booking, error) {
	if loc == nil {
		loc = time.Local
	}

	if doctor.Status != models.DoctorActive {
		return Booking{}, ErrDoctorUnavailable
	}

	requestedClock, ok := ParseClock(req.Time)
	if !ok {
		return Booking{}, ErrOutsideWorkingHours
	}
	date, err := time.ParseInLocation(models.AppointmentDateLayout, req.Date, loc)
	if err != nil {
		return Booking{}, ErrOutsideWorkingHours
	}

	requestedAt := time.Date(date.Year(), date.Month(), date.Day(), requestedClock.H, requestedClock.M, 0, 0, loc)
	if !requestedAt.After(now) {
		return Booking{}, ErrPastDateTime
	}

	if !IsSlotBookable(doctor.WeeklyAvailability, date, requestedClock) {
		return Booking{}, ErrOutsideWorkingHours
	}

	if HasConflict(existing, req.DoctorID, date.Format(models.AppointmentDateLayout), requestedClock) {
		return Booking{}, ErrSlotConflict
	}

	duration := req.DurationMinutes
	if duration <= 0 {
		duration = DefaultSlotMinutes
	}

	return Booking{
		Date:            date.Format(models.AppointmentDateLayout),
		Time:            requestedClock.String(),
		DurationMinutes: duration,
		Status:          models.AppointmentScheduled,
	}, nil
}

// ValidateWeekly fails fast on the first misconfigured day: an available day
// needs parseable start/end clocks with start strictly before end.
func ValidateWeekly(weekly models.WeeklyAvailability) error {
	days := []struct {
		name string
		day  models.DayAvailability
	}{
		{"monday", weekly.Monday},
		{"tuesday", weekly.Tuesday},
		{"wednesday", weekly.Wednesday},
		{"thursday", weekly.Thursday},
		{"friday", weekly.Friday},
		{"saturday", weekly.Saturday},
		{"sunday", weekly.Sunday},
	}
	for _, d := range days {
		if !d.day.Available {
			continue
		}
		start, ok := ParseClock(d.day.Start)
		if !ok {
			return fmt.Errorf("%s: invalid start time '%s'", d.name, d.day.Start)
		}
		end, ok := ParseClock(d.day.End)
		if !ok {
			return fmt.Errorf("%s: invalid end time '%s'", d.name, d.day.End)
		}
		if !validWindow(start, end) {
			return fmt.Errorf("%s: start >= end (%02d:%02d >= %02d:%02d)", d.name, start.H, start.M, end.H, end.M)
		}
	}
	return nil
}
