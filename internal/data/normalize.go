package data

import (
	"math"
	"strconv"
	"strings"
	"time"

	"cinestats/internal/biz"

	"github.com/go-kratos/kratos/v2/log"
)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/01/02",
}

// parseDate returns nil for blank, null-like or unparseable values.
func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "nan", "nat", "none", "null":
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &d
		}
	}
	return nil
}

// parseInt coerces to 0 when s is not a number; "12.0" is accepted.
func parseInt(s string) int64 {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return int64(f)
	}
	return 0
}

// parseFloat coerces to 0 when s is not a finite number.
func parseFloat(s string) float64 {
	f, ok := parseOptionalFloat(s)
	if !ok {
		return 0
	}
	return f
}

func parseOptionalFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// computeReturn is revenue/budget, 0 when budget is not positive.
func computeReturn(budget, revenue float64) float64 {
	if budget <= 0 {
		return 0
	}
	return revenue / budget
}

// normalize turns raw source tables into a query-ready snapshot: dates are
// parsed once here, missing returns are computed and duplicate movie ids
// keep their first row.
func normalize(id string, t *tables, logger *log.Helper) *biz.Dataset {
	movies := make([]*biz.Movie, 0, len(t.movies))
	seen := make(map[int64]struct{}, len(t.movies))
	var duplicates, undated int

	for _, row := range t.movies {
		if _, ok := seen[row.ID]; ok {
			duplicates++
			continue
		}
		seen[row.ID] = struct{}{}

		m := &biz.Movie{
			ID:          row.ID,
			Title:       row.Title,
			ReleaseDate: parseDate(row.ReleaseDate),
			VoteAverage: row.VoteAverage,
			VoteCount:   row.VoteCount,
			Budget:      row.Budget,
			Revenue:     row.Revenue,
		}
		if row.Return != nil && !math.IsNaN(*row.Return) && !math.IsInf(*row.Return, 0) {
			m.Return = *row.Return
		} else {
			m.Return = computeReturn(row.Budget, row.Revenue)
		}
		if m.ReleaseDate == nil {
			undated++
		}
		movies = append(movies, m)
	}

	cast := make([]biz.CastCredit, 0, len(t.cast))
	for _, row := range t.cast {
		cast = append(cast, biz.CastCredit{MovieID: row.MovieID, Name: row.Name})
	}
	crew := make([]biz.CrewCredit, 0, len(t.crew))
	for _, row := range t.crew {
		crew = append(crew, biz.CrewCredit{MovieID: row.MovieID, Name: row.Name, Job: row.Job})
	}

	if duplicates > 0 {
		logger.Warnf("dropped %d movies with duplicate movie_id", duplicates)
	}
	if undated > 0 {
		logger.Warnf("%d movies have no usable release_date", undated)
	}
	return biz.NewDataset(id, movies, cast, crew)
}
