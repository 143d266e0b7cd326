package clinic

import "time"

const (
	defaultBasePrice  = 150.0
	defaultMultiplier = 1.0
)

var basePrices = map[string]float64{
	"Cardiology":  200,
	"Pediatrics":  150,
	"Orthopedics": 180,
	"Neurology":   250,
	"Dermatology": 120,
}

var typeMultipliers = map[AppointmentType]float64{
	TypeConsultation: 1,
	TypeFollowUp:     0.8,
	TypeEmergency:    1.5,
	TypeSurgery:      3,
}

// EstimatePrice derives an appointment's estimated price from the doctor's
// specialty and the appointment type. Unknown specialties fall back to the
// default base price, unknown types to multiplier 1.
func EstimatePrice(specialty string, apptType AppointmentType) float64 {
	base, ok := basePrices[specialty]
	if !ok {
		base = defaultBasePrice
	}
	mult, ok := typeMultipliers[apptType]
	if !ok {
		mult = defaultMultiplier
	}
	return base * mult
}

var dateLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseLocalDate parses an ISO-8601 local date or date-time string, without
// timezone handling, in the process-local location.
func ParseLocalDate(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.ParseInLocation(layout, s, time.Local)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// availableOn reports whether the doctor's recurring weekly schedule includes
// the given date's weekday. It says nothing about free slots at that time.
func (d Doctor) availableOn(t time.Time) bool {
	day := t.Weekday().String()
	for _, w := range d.Availability {
		if w == day {
			return true
		}
	}
	return false
}
