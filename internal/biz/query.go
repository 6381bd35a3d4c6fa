package biz

import (
	"context"
	"fmt"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
)

// ProviderSet is biz providers.
var ProviderSet = wire.NewSet(NewQueryUseCase)

// MinVoteCount is the smallest vote count a title needs for a vote lookup.
const MinVoteCount = 2000

// QueryUseCase answers the analytical queries over the loaded dataset
type QueryUseCase struct {
	repo DatasetRepo
	log  *log.Helper
}

// NewQueryUseCase creates a new QueryUseCase instance
func NewQueryUseCase(repo DatasetRepo, logger log.Logger) *QueryUseCase {
	return &QueryUseCase{
		repo: repo,
		log:  log.NewHelper(logger),
	}
}

func (uc *QueryUseCase) snapshot(ctx context.Context) (*Dataset, error) {
	ds, err := uc.repo.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get dataset: %w", err)
	}
	return ds, nil
}

// MonthReleases counts the movies released in the given month.
func (uc *QueryUseCase) MonthReleases(ctx context.Context, tok Token) (*ReleaseCount, error) {
	period, err := ResolveMonth(tok)
	if err != nil {
		return nil, err
	}
	ds, err := uc.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	count := ds.CountReleases(func(t time.Time) bool {
		return int(t.Month()) == period.Code
	})
	return &ReleaseCount{Period: period, Count: count}, nil
}

// WeekdayReleases counts the movies released on the given weekday.
func (uc *QueryUseCase) WeekdayReleases(ctx context.Context, tok Token) (*ReleaseCount, error) {
	period, err := ResolveWeekday(tok)
	if err != nil {
		return nil, err
	}
	ds, err := uc.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	count := ds.CountReleases(func(t time.Time) bool {
		return isoWeekday(t) == period.Code
	})
	return &ReleaseCount{Period: period, Count: count}, nil
}

// isoWeekday numbers days Monday=1 ... Sunday=7.
func isoWeekday(t time.Time) int {
	return (int(t.Weekday())+6)%7 + 1
}

// TitleScore returns release year and vote average of the first movie titled title.
func (uc *QueryUseCase) TitleScore(ctx context.Context, title string) (*TitleScore, error) {
	ds, err := uc.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	m, ok := ds.FindTitle(title)
	if !ok {
		return nil, diagnose(ReasonTitleNotFound, title)
	}
	year, known := m.ReleaseYear()
	return &TitleScore{
		Title:       title,
		Year:        year,
		YearKnown:   known,
		VoteAverage: m.VoteAverage,
	}, nil
}

// TitleVotes returns vote statistics of the first movie titled title when it
// has at least MinVoteCount votes.
func (uc *QueryUseCase) TitleVotes(ctx context.Context, title string) (*TitleVotes, error) {
	ds, err := uc.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	m, ok := ds.FindTitle(title)
	if !ok {
		return nil, diagnose(ReasonTitleNotFound, title)
	}
	if m.VoteCount < MinVoteCount {
		return nil, diagnose(ReasonVotesBelowThreshold, title)
	}
	year, known := m.ReleaseYear()
	return &TitleVotes{
		Title:       title,
		Year:        year,
		YearKnown:   known,
		VoteCount:   m.VoteCount,
		VoteAverage: m.VoteAverage,
	}, nil
}

// ActorSuccess sums the return of every distinct movie the actor appears in.
func (uc *QueryUseCase) ActorSuccess(ctx context.Context, name string) (*ActorSuccess, error) {
	ds, err := uc.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	ids, ok := ds.CastMovieIDs(name)
	if !ok {
		return nil, diagnose(ReasonActorNotFound, name)
	}
	movies := ds.MoviesByIDs(ids)
	if len(movies) == 0 {
		uc.log.Warnf("actor '%s' has %d cast movie ids missing from movies", name, len(ids))
		return nil, diagnose(ReasonActorMoviesMissing, name)
	}

	var total float64
	for _, m := range movies {
		total += m.Return
	}
	return &ActorSuccess{
		Name:          name,
		Movies:        movies,
		TotalReturn:   total,
		AverageReturn: total / float64(len(movies)),
	}, nil
}

// DirectorSuccess lists the movies credited to name with the Director job.
func (uc *QueryUseCase) DirectorSuccess(ctx context.Context, name string) (*DirectorSuccess, error) {
	ds, err := uc.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	ids, ok := ds.DirectorMovieIDs(name)
	if !ok {
		return nil, diagnose(ReasonDirectorNotFound, name)
	}
	movies := ds.MoviesByIDs(ids)
	if len(movies) == 0 {
		uc.log.Warnf("director '%s' has %d crew movie ids missing from movies", name, len(ids))
		return nil, diagnose(ReasonDirectorMoviesMissing, name)
	}
	return &DirectorSuccess{Name: name, Movies: movies}, nil
}
