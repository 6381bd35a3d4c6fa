package data

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"cinestats/internal/conf"

	_ "github.com/duckdb/duckdb-go/v2"
)

// parquetSource reads parquet files through an in-memory DuckDB connection.
type parquetSource struct {
	conn               *sql.DB
	movies, cast, crew string
}

func newParquetSource(c *conf.Data_Source) (*parquetSource, error) {
	conn, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb: %w", err)
	}
	return &parquetSource{conn: conn, movies: c.Movies, cast: c.Cast, crew: c.Crew}, nil
}

// quoteLiteral renders path as a SQL string literal for read_parquet.
func quoteLiteral(path string) string {
	return "'" + strings.ReplaceAll(path, "'", "''") + "'"
}

const parquetMoviesQuery = `
SELECT
	TRY_CAST(movie_id AS BIGINT),
	CAST(title AS VARCHAR),
	CAST(release_date AS VARCHAR),
	TRY_CAST(vote_average AS DOUBLE),
	TRY_CAST(vote_count AS BIGINT),
	TRY_CAST(budget AS DOUBLE),
	TRY_CAST(revenue AS DOUBLE),
	TRY_CAST("return" AS DOUBLE)
FROM read_parquet(%s)`

const parquetCastQuery = `
SELECT TRY_CAST(movie_id AS BIGINT), CAST(name AS VARCHAR)
FROM read_parquet(%s)`

const parquetCrewQuery = `
SELECT TRY_CAST(movie_id AS BIGINT), CAST(name AS VARCHAR), CAST(job AS VARCHAR)
FROM read_parquet(%s)`

func (s *parquetSource) Load(ctx context.Context) (*tables, error) {
	var t tables

	rows, err := s.conn.QueryContext(ctx, fmt.Sprintf(parquetMoviesQuery, quoteLiteral(s.movies)))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", s.movies, err)
	}
	for rows.Next() {
		var (
			id, votes                     sql.NullInt64
			title, released               sql.NullString
			average, budget, revenue, ret sql.NullFloat64
		)
		if err := rows.Scan(&id, &title, &released, &average, &votes, &budget, &revenue, &ret); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan movie: %w", err)
		}
		row := movieRow{
			ID:          id.Int64,
			Title:       title.String,
			ReleaseDate: released.String,
			VoteAverage: average.Float64,
			VoteCount:   votes.Int64,
			Budget:      budget.Float64,
			Revenue:     revenue.Float64,
		}
		if ret.Valid {
			v := ret.Float64
			row.Return = &v
		}
		t.movies = append(t.movies, row)
	}
	if err := closeRows(rows); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.movies, err)
	}

	rows, err = s.conn.QueryContext(ctx, fmt.Sprintf(parquetCastQuery, quoteLiteral(s.cast)))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", s.cast, err)
	}
	for rows.Next() {
		var id sql.NullInt64
		var name sql.NullString
		if err := rows.Scan(&id, &name); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan cast: %w", err)
		}
		t.cast = append(t.cast, castRow{MovieID: id.Int64, Name: strings.TrimSpace(name.String)})
	}
	if err := closeRows(rows); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.cast, err)
	}

	rows, err = s.conn.QueryContext(ctx, fmt.Sprintf(parquetCrewQuery, quoteLiteral(s.crew)))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", s.crew, err)
	}
	for rows.Next() {
		var id sql.NullInt64
		var name, job sql.NullString
		if err := rows.Scan(&id, &name, &job); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan crew: %w", err)
		}
		t.crew = append(t.crew, crewRow{
			MovieID: id.Int64,
			Name:    strings.TrimSpace(name.String),
			Job:     strings.TrimSpace(job.String),
		})
	}
	if err := closeRows(rows); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.crew, err)
	}

	return &t, nil
}

func closeRows(rows *sql.Rows) error {
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	return rows.Close()
}

func (s *parquetSource) Close() error {
	return s.conn.Close()
}
