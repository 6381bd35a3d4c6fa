package biz

import (
	"strings"
	"time"
)

const directorJob = "director"

// Dataset is an immutable, fully normalized snapshot of the three tables.
// Slices keep the source row order.
type Dataset struct {
	ID       string
	LoadedAt time.Time

	Movies []*Movie
	Cast   []CastCredit
	Crew   []CrewCredit

	byID map[int64]int
}

// NewDataset indexes movies by id. Callers must pass movies with unique ids;
// later duplicates are unreachable through MovieByID.
func NewDataset(id string, movies []*Movie, cast []CastCredit, crew []CrewCredit) *Dataset {
	ds := &Dataset{
		ID:       id,
		LoadedAt: time.Now().UTC(),
		Movies:   movies,
		Cast:     cast,
		Crew:     crew,
		byID:     make(map[int64]int, len(movies)),
	}
	for i, m := range movies {
		if _, ok := ds.byID[m.ID]; !ok {
			ds.byID[m.ID] = i
		}
	}
	return ds
}

// MovieByID looks a movie up by identifier.
func (ds *Dataset) MovieByID(id int64) (*Movie, bool) {
	i, ok := ds.byID[id]
	if !ok {
		return nil, false
	}
	return ds.Movies[i], true
}

// FindTitle returns the first movie whose title equals title, ignoring case.
func (ds *Dataset) FindTitle(title string) (*Movie, bool) {
	for _, m := range ds.Movies {
		if strings.EqualFold(m.Title, title) {
			return m, true
		}
	}
	return nil, false
}

// CastMovieIDs returns the distinct movie ids credited to name in Cast.
// The second value reports whether any cast row matched at all.
func (ds *Dataset) CastMovieIDs(name string) (map[int64]struct{}, bool) {
	ids := make(map[int64]struct{})
	for _, c := range ds.Cast {
		if strings.EqualFold(c.Name, name) {
			ids[c.MovieID] = struct{}{}
		}
	}
	return ids, len(ids) > 0
}

// DirectorMovieIDs is CastMovieIDs over Crew rows whose job is director.
func (ds *Dataset) DirectorMovieIDs(name string) (map[int64]struct{}, bool) {
	ids := make(map[int64]struct{})
	for _, c := range ds.Crew {
		if strings.EqualFold(c.Job, directorJob) && strings.EqualFold(c.Name, name) {
			ids[c.MovieID] = struct{}{}
		}
	}
	return ids, len(ids) > 0
}

// MoviesByIDs returns the movies whose id is in ids, in dataset order.
func (ds *Dataset) MoviesByIDs(ids map[int64]struct{}) []*Movie {
	movies := make([]*Movie, 0, len(ids))
	for _, m := range ds.Movies {
		if _, ok := ids[m.ID]; ok {
			movies = append(movies, m)
		}
	}
	return movies
}

// CountReleases counts movies with a known release date accepted by match.
func (ds *Dataset) CountReleases(match func(time.Time) bool) int {
	n := 0
	for _, m := range ds.Movies {
		if m.ReleaseDate != nil && match(*m.ReleaseDate) {
			n++
		}
	}
	return n
}
