// Package planner validates trip requests and runs the weather-then-itinerary
// pipeline behind the dashboard.
package planner

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar format of the date and return form fields.
const DateLayout = "2006-01-02"

// Parsed dates are UTC midnights, so whole days divide evenly. Going through
// time.Duration would overflow past ~292 years.
const secondsPerDay = 24 * 60 * 60

// Form is the trip request exactly as submitted.
type Form struct {
	Source      string `form:"source" json:"source"`
	Destination string `form:"destination" json:"destination"`
	StartDate   string `form:"date" json:"date"`
	EndDate     string `form:"return" json:"return"`
}

// Trip is a validated Form. Days is End minus Start in whole calendar days.
type Trip struct {
	Source      string
	Destination string
	Start       time.Time
	End         time.Time
	Days        int
}

func (t Trip) StartDate() string { return t.Start.Format(DateLayout) }

func (t Trip) EndDate() string { return t.End.Format(DateLayout) }

// Reason names the terminal rejection states.
type Reason string

const (
	MissingField       Reason = "missing_field"
	BadDate            Reason = "bad_date"
	InvertedRange      Reason = "inverted_range"
	WeatherUnavailable Reason = "weather_unavailable"
)

var ErrRejected = errors.New("trip request rejected")

var notices = map[Reason]string{
	MissingField:       "Please fill in all fields.",
	BadDate:            "Invalid date format. Please use YYYY-MM-DD.",
	InvertedRange:      "Return date must be after travel date.",
	WeatherUnavailable: "Error fetching weather data. Please try again.",
}

// Rejection ends a plan before presentation. Notice is safe to show users;
// Err holds the cause for logs.
type Rejection struct {
	Reason Reason
	Notice string
	Err    error
}

func reject(reason Reason, err error) *Rejection {
	return &Rejection{Reason: reason, Notice: notices[reason], Err: err}
}

func (r *Rejection) Error() string {
	if r.Err == nil {
		return fmt.Sprintf("trip rejected (%s)", r.Reason)
	}
	return fmt.Sprintf("trip rejected (%s): %v", r.Reason, r.Err)
}

func (r *Rejection) Unwrap() error { return r.Err }

func (r *Rejection) Is(target error) bool { return target == ErrRejected }

// ParseTrip validates f. Every failure is a *Rejection.
func ParseTrip(f Form) (Trip, error) {
	source := strings.TrimSpace(f.Source)
	destination := strings.TrimSpace(f.Destination)
	startRaw := strings.TrimSpace(f.StartDate)
	endRaw := strings.TrimSpace(f.EndDate)

	if source == "" || destination == "" || startRaw == "" || endRaw == "" {
		return Trip{}, reject(MissingField, nil)
	}

	start, err := time.Parse(DateLayout, startRaw)
	if err != nil {
		return Trip{}, reject(BadDate, err)
	}
	end, err := time.Parse(DateLayout, endRaw)
	if err != nil {
		return Trip{}, reject(BadDate, err)
	}

	if end.Before(start) {
		return Trip{}, reject(InvertedRange, fmt.Errorf("%s is before %s", endRaw, startRaw))
	}

	return Trip{
		Source:      source,
		Destination: destination,
		Start:       start,
		End:         end,
		Days:        int(end.Unix()/secondsPerDay - start.Unix()/secondsPerDay),
	}, nil
}
