package biz

import (
	"context"
	"time"
)

// Movie domain model
type Movie struct {
	ID          int64
	Title       string
	ReleaseDate *time.Time
	VoteAverage float64
	VoteCount   int64
	Budget      float64
	Revenue     float64
	Return      float64
}

// ReleaseYear returns the release year, or false when the date is unknown.
func (m *Movie) ReleaseYear() (int, bool) {
	if m.ReleaseDate == nil {
		return 0, false
	}
	return m.ReleaseDate.Year(), true
}

// CastCredit links a person to a movie they acted in.
type CastCredit struct {
	MovieID int64
	Name    string
}

// CrewCredit links a person to a movie with a job title.
type CrewCredit struct {
	MovieID int64
	Name    string
	Job     string
}

// Period is a resolved month or weekday.
type Period struct {
	Code int
	Name string
}

// ReleaseCount is the result of a month or weekday count.
type ReleaseCount struct {
	Period Period
	Count  int
}

// TitleScore is the result of a score lookup.
type TitleScore struct {
	Title       string
	Year        int
	YearKnown   bool
	VoteAverage float64
}

// TitleVotes is the result of a vote lookup.
type TitleVotes struct {
	Title       string
	Year        int
	YearKnown   bool
	VoteCount   int64
	VoteAverage float64
}

// ActorSuccess aggregates the return of every movie an actor appears in.
type ActorSuccess struct {
	Name          string
	Movies        []*Movie
	TotalReturn   float64
	AverageReturn float64
}

// DirectorSuccess lists the movies a director directed.
type DirectorSuccess struct {
	Name   string
	Movies []*Movie
}

// DatasetRepo gives access to the loaded dataset
type DatasetRepo interface {
	Snapshot(ctx context.Context) (*Dataset, error)
}

// MessageCache stores rendered query messages keyed by operation and parameter.
type MessageCache interface {
	Get(ctx context.Context, op, param string) (string, bool)
	Set(ctx context.Context, op, param, message string)
}
