package availability

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"medicore-service/internal/app/models"
)

// DefaultSlotMinutes is the slot length used when a caller passes a
// non-positive value.
const DefaultSlotMinutes = 30

// Booking outcomes, checked in this order.
var (
	ErrDoctorUnavailable   = errors.New("doctor is not accepting appointments")
	ErrPastDateTime        = errors.New("requested date and time is not in the future")
	ErrOutsideWorkingHours = errors.New("requested time is outside working hours")
	ErrSlotConflict        = errors.New("slot already held by a blocking appointment")
)

// Clock holds a local wall time (hour and minute).
type Clock struct {
	H int
	M int
}

// ParseClock accepts "HH:MM" and "HH.MM" with flexible zero padding.
func ParseClock(s string) (Clock, bool) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ".", ":")
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return Clock{}, false
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return Clock{}, false
	}
	return Clock{H: h, M: m}, true
}

func (c Clock) Minutes() int {
	return c.H*60 + c.M
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.H, c.M)
}

// BookedSlot is the projection of an appointment the conflict check needs.
type BookedSlot struct {
	DoctorID string
	Date     string
	Time     string
	Status   models.AppointmentStatus
}

// BookedSlotsFromAppointments projects stored appointments into booked slots.
func BookedSlotsFromAppointments(appointments []models.Appointment) []BookedSlot {
	out := make([]BookedSlot, 0, len(appointments))
	for _, a := range appointments {
		out = append(out, BookedSlot{
			DoctorID: a.DoctorID,
			Date:     a.Date,
			Time:     a.Time,
			Status:   a.Status,
		})
	}
	return out
}

// BookingRequest carries the booking intent into Decide.
type BookingRequest struct {
	PatientID       string
	DoctorID        string
	Date            string
	Time            string
	DurationMinutes int
	Type            models.AppointmentType
	Priority        models.AppointmentPriority
	Reason          string
	Notes           string
}

// Booking is the accepted outcome of Decide with date and time normalized
// to their canonical forms.
type Booking struct {
	Date            string
	Time            string
	DurationMinutes int
	Status          models.AppointmentStatus
}
