package data

import (
	"context"
	"fmt"
	"time"

	"cinestats/internal/conf"

	"github.com/go-kratos/kratos/v2/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// postgresSource reads the tables from movies, movie_cast and movie_crew,
// ordered by their insertion sequence.
type postgresSource struct {
	db  *gorm.DB
	log *log.Helper
}

func newPostgresSource(c *conf.Data_Source, logger log.Logger) (*postgresSource, error) {
	l := log.NewHelper(logger)

	db, err := gorm.Open(postgres.Open(c.Database), &gorm.Config{})
	if err != nil {
		l.Errorf("failed to connect to database: %v", err)
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		l.Errorf("failed to get database instance: %v", err)
		return nil, err
	}
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetMaxOpenConns(4)
	sqlDB.SetConnMaxLifetime(time.Hour)

	l.Info("database connected successfully")
	return &postgresSource{db: db, log: l}, nil
}

func (s *postgresSource) Load(ctx context.Context) (*tables, error) {
	var movies []Movie
	if err := s.db.WithContext(ctx).Order("seq").Find(&movies).Error; err != nil {
		return nil, fmt.Errorf("failed to load movies: %w", err)
	}
	var cast []CastMember
	if err := s.db.WithContext(ctx).Order("seq").Find(&cast).Error; err != nil {
		return nil, fmt.Errorf("failed to load cast: %w", err)
	}
	var crew []CrewMember
	if err := s.db.WithContext(ctx).Order("seq").Find(&crew).Error; err != nil {
		return nil, fmt.Errorf("failed to load crew: %w", err)
	}

	t := &tables{
		movies: make([]movieRow, 0, len(movies)),
		cast:   make([]castRow, 0, len(cast)),
		crew:   make([]crewRow, 0, len(crew)),
	}
	for i := range movies {
		t.movies = append(t.movies, modelToRow(&movies[i]))
	}
	for _, c := range cast {
		t.cast = append(t.cast, castRow{MovieID: c.MovieID, Name: c.Name})
	}
	for _, c := range crew {
		t.crew = append(t.crew, crewRow{MovieID: c.MovieID, Name: c.Name, Job: c.Job})
	}
	return t, nil
}

func (s *postgresSource) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Helper: Convert data.Movie to a raw movie row
func modelToRow(m *Movie) movieRow {
	row := movieRow{
		ID:          m.MovieID,
		Title:       m.Title,
		VoteAverage: m.VoteAverage,
		VoteCount:   m.VoteCount,
		Budget:      m.Budget,
		Revenue:     m.Revenue,
		Return:      m.Return,
	}
	if m.ReleaseDate != nil {
		row.ReleaseDate = m.ReleaseDate.Format("2006-01-02")
	}
	return row
}
