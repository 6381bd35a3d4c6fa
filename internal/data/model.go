package data

import (
	"time"
)

// Movie represents the movies table
type Movie struct {
	Seq         int64      `gorm:"primaryKey;autoIncrement"`
	MovieID     int64      `gorm:"column:movie_id;not null;index:idx_movies_movie_id"`
	Title       string     `gorm:"not null;size:512;index:idx_movies_title,expression:LOWER(title)"`
	ReleaseDate *time.Time `gorm:"type:date"`
	VoteAverage float64    `gorm:"type:decimal(4,2)"`
	VoteCount   int64
	Budget      float64
	Revenue     float64
	Return      *float64 `gorm:"column:return"`
}

// TableName overrides the table name
func (Movie) TableName() string {
	return "movies"
}

// CastMember represents the movie_cast table
type CastMember struct {
	Seq     int64  `gorm:"primaryKey;autoIncrement"`
	MovieID int64  `gorm:"column:movie_id;not null;index:idx_cast_movie_id"`
	Name    string `gorm:"not null;size:255;index:idx_cast_name,expression:LOWER(name)"`
}

// TableName overrides the table name
func (CastMember) TableName() string {
	return "movie_cast"
}

// CrewMember represents the movie_crew table
type CrewMember struct {
	Seq     int64  `gorm:"primaryKey;autoIncrement"`
	MovieID int64  `gorm:"column:movie_id;not null;index:idx_crew_movie_id"`
	Name    string `gorm:"not null;size:255;index:idx_crew_name,expression:LOWER(name)"`
	Job     string `gorm:"not null;size:100"`
}

// TableName overrides the table name
func (CrewMember) TableName() string {
	return "movie_crew"
}

// movieRow is a movies record as read from any source, before normalization.
type movieRow struct {
	ID          int64
	Title       string
	ReleaseDate string
	VoteAverage float64
	VoteCount   int64
	Budget      float64
	Revenue     float64
	Return      *float64
}

// tables is the raw content of a dataset source.
type tables struct {
	movies []movieRow
	cast   []castRow
	crew   []crewRow
}

type castRow struct {
	MovieID int64
	Name    string
}

type crewRow struct {
	MovieID int64
	Name    string
	Job     string
}
