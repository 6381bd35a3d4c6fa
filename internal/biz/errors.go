package biz

import (
	"errors"
	"fmt"
)

// Outcome categories. A *Diagnostic always unwraps to one of these.
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("not found")
	ErrThresholdNotMet = errors.New("threshold not met")
)

// Reason identifies which diagnostic a query produced.
type Reason int

const (
	ReasonMonthOutOfRange Reason = iota + 1
	ReasonUnknownMonth
	ReasonWeekdayOutOfRange
	ReasonUnknownWeekday
	ReasonTitleNotFound
	ReasonVotesBelowThreshold
	ReasonActorNotFound
	ReasonActorMoviesMissing
	ReasonDirectorNotFound
	ReasonDirectorMoviesMissing
)

var reasonNames = map[Reason]string{
	ReasonMonthOutOfRange:       "month_out_of_range",
	ReasonUnknownMonth:          "unknown_month",
	ReasonWeekdayOutOfRange:     "weekday_out_of_range",
	ReasonUnknownWeekday:        "unknown_weekday",
	ReasonTitleNotFound:         "title_not_found",
	ReasonVotesBelowThreshold:   "votes_below_threshold",
	ReasonActorNotFound:         "actor_not_found",
	ReasonActorMoviesMissing:    "actor_movies_missing",
	ReasonDirectorNotFound:      "director_not_found",
	ReasonDirectorMoviesMissing: "director_movies_missing",
}

func (r Reason) String() string {
	if name, ok := reasonNames[r]; ok {
		return name
	}
	return fmt.Sprintf("reason(%d)", int(r))
}

// Diagnostic is an expected, non-fatal query outcome such as an unknown month
// or a title that is not in the dataset. Subject is the user input it refers to.
type Diagnostic struct {
	Reason  Reason
	Subject string
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s", d.Reason, d.Subject)
}

func (d *Diagnostic) Unwrap() error {
	switch d.Reason {
	case ReasonMonthOutOfRange, ReasonUnknownMonth, ReasonWeekdayOutOfRange, ReasonUnknownWeekday:
		return ErrInvalidInput
	case ReasonVotesBelowThreshold:
		return ErrThresholdNotMet
	default:
		return ErrNotFound
	}
}

func diagnose(reason Reason, subject string) error {
	return &Diagnostic{Reason: reason, Subject: subject}
}
