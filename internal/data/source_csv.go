package data

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"cinestats/internal/conf"
)

// tableSource reads the three raw tables from one backing store.
type tableSource interface {
	Load(ctx context.Context) (*tables, error)
	Close() error
}

type csvSource struct {
	movies, cast, crew string
}

func newCSVSource(c *conf.Data_Source) *csvSource {
	return &csvSource{movies: c.Movies, cast: c.Cast, crew: c.Crew}
}

func (s *csvSource) Load(ctx context.Context) (*tables, error) {
	var t tables
	var err error
	if t.movies, err = readFile(ctx, s.movies, decodeMovies); err != nil {
		return nil, err
	}
	if t.cast, err = readFile(ctx, s.cast, decodeCast); err != nil {
		return nil, err
	}
	if t.crew, err = readFile(ctx, s.crew, decodeCrew); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *csvSource) Close() error { return nil }

func readFile[T any](ctx context.Context, path string, decode func(io.Reader) ([]T, error)) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	rows, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return rows, nil
}

func decodeMovies(r io.Reader) ([]movieRow, error) {
	var rows []movieRow
	err := eachRecord(r, []string{"movie_id|id", "title"}, func(rec record) {
		id := rec.value("movie_id")
		if !rec.has("movie_id") {
			id = rec.value("id")
		}
		row := movieRow{
			ID:          parseInt(id),
			Title:       rec.value("title"),
			ReleaseDate: rec.value("release_date"),
			VoteAverage: parseFloat(rec.value("vote_average")),
			VoteCount:   parseInt(rec.value("vote_count")),
			Budget:      parseFloat(rec.value("budget")),
			Revenue:     parseFloat(rec.value("revenue")),
		}
		if ret, ok := parseOptionalFloat(rec.value("return")); ok {
			row.Return = &ret
		}
		rows = append(rows, row)
	})
	return rows, err
}

func decodeCast(r io.Reader) ([]castRow, error) {
	var rows []castRow
	err := eachRecord(r, []string{"movie_id", "name"}, func(rec record) {
		rows = append(rows, castRow{
			MovieID: parseInt(rec.value("movie_id")),
			Name:    rec.value("name"),
		})
	})
	return rows, err
}

func decodeCrew(r io.Reader) ([]crewRow, error) {
	var rows []crewRow
	err := eachRecord(r, []string{"movie_id", "name", "job"}, func(rec record) {
		rows = append(rows, crewRow{
			MovieID: parseInt(rec.value("movie_id")),
			Name:    rec.value("name"),
			Job:     rec.value("job"),
		})
	})
	return rows, err
}

type record struct {
	header map[string]int
	row    []string
}

func (r record) has(key string) bool {
	_, ok := r.header[key]
	return ok
}

func (r record) value(key string) string {
	idx, ok := r.header[key]
	if !ok || idx >= len(r.row) {
		return ""
	}
	return strings.TrimSpace(r.row[idx])
}

func hasAny(header map[string]int, names []string) bool {
	for _, name := range names {
		if _, ok := header[name]; ok {
			return true
		}
	}
	return false
}

// eachRecord reads a headed CSV stream and calls fn for every non-empty row.
// A required entry may list alternatives separated by "|".
func eachRecord(r io.Reader, required []string, fn func(record)) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := readHeader(cr)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("missing header")
		}
		return err
	}
	for _, col := range required {
		if !hasAny(header, strings.Split(col, "|")) {
			return fmt.Errorf("missing column %q", col)
		}
	}

	for {
		row, err := cr.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if len(row) == 0 || (len(row) == 1 && strings.TrimSpace(row[0]) == "") {
			continue
		}
		fn(record{header: header, row: row})
	}
}

func readHeader(r *csv.Reader) (map[string]int, error) {
	row, err := r.Read()
	if err != nil {
		return nil, err
	}
	header := make(map[string]int, len(row))
	for idx, name := range row {
		name = strings.TrimPrefix(name, "\ufeff")
		header[strings.TrimSpace(strings.ToLower(name))] = idx
	}
	return header, nil
}
