package service

import (
	"context"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
	"google.golang.org/protobuf/types/known/wrapperspb"

	v1 "cinestats/api/query/v1"
	"cinestats/internal/biz"
)

// ProviderSet is service providers.
var ProviderSet = wire.NewSet(NewQueryService)

// Operation names used for cache keys and metric labels.
const (
	opMonthReleases   = "cantidad_filmaciones_mes"
	opWeekdayReleases = "cantidad_filmaciones_dia"
	opTitleScore      = "score_titulo"
	opTitleVotes      = "votos_titulo"
	opActorSuccess    = "exito_actor"
	opDirectorSuccess = "exito_director"
)

var _ v1.QueryServiceServer = (*QueryService)(nil)

// QueryService implements the QueryService API
type QueryService struct {
	uc    *biz.QueryUseCase
	cache biz.MessageCache
	log   *log.Helper
}

// NewQueryService creates a new QueryService
func NewQueryService(uc *biz.QueryUseCase, cache biz.MessageCache, logger log.Logger) *QueryService {
	return &QueryService{
		uc:    uc,
		cache: cache,
		log:   log.NewHelper(logger),
	}
}

// answer runs a query and turns its result into the reply message.
// Diagnostics are answers too; only infrastructure failures become errors.
func (s *QueryService) answer(ctx context.Context, op, param string, run func(context.Context) (string, error)) (*wrapperspb.StringValue, error) {
	if cached, ok := s.cache.Get(ctx, op, param); ok {
		recordCacheLookup(op, true)
		return wrapperspb.String(cached), nil
	}
	recordCacheLookup(op, false)

	msg, err := run(ctx)
	recordOutcome(op, err)
	if err != nil {
		var d *biz.Diagnostic
		if !errors.As(err, &d) {
			s.log.WithContext(ctx).Errorf("%s(%q) failed: %v", op, param, err)
			return nil, errors.InternalServer("QUERY_FAILED", "failed to answer query")
		}
		s.log.WithContext(ctx).Debugf("%s(%q): %s", op, param, d.Reason)
		msg = renderDiagnostic(d)
	}

	s.cache.Set(ctx, op, param, msg)
	return wrapperspb.String(msg), nil
}

// CantidadFilmacionesMes counts releases in a month given by Spanish name or number.
func (s *QueryService) CantidadFilmacionesMes(ctx context.Context, req *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	return s.answer(ctx, opMonthReleases, req.GetValue(), func(ctx context.Context) (string, error) {
		r, err := s.uc.MonthReleases(ctx, biz.ParseToken(req.GetValue()))
		if err != nil {
			return "", err
		}
		return renderMonthCount(r), nil
	})
}

// CantidadFilmacionesDia counts releases on a weekday given by Spanish name or ISO number.
func (s *QueryService) CantidadFilmacionesDia(ctx context.Context, req *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	return s.answer(ctx, opWeekdayReleases, req.GetValue(), func(ctx context.Context) (string, error) {
		r, err := s.uc.WeekdayReleases(ctx, biz.ParseToken(req.GetValue()))
		if err != nil {
			return "", err
		}
		return renderWeekdayCount(r), nil
	})
}

func (s *QueryService) ScoreTitulo(ctx context.Context, req *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	return s.answer(ctx, opTitleScore, req.GetValue(), func(ctx context.Context) (string, error) {
		r, err := s.uc.TitleScore(ctx, req.GetValue())
		if err != nil {
			return "", err
		}
		return renderTitleScore(r), nil
	})
}

func (s *QueryService) VotosTitulo(ctx context.Context, req *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	return s.answer(ctx, opTitleVotes, req.GetValue(), func(ctx context.Context) (string, error) {
		r, err := s.uc.TitleVotes(ctx, req.GetValue())
		if err != nil {
			return "", err
		}
		return renderTitleVotes(r), nil
	})
}

func (s *QueryService) ExitoActor(ctx context.Context, req *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	return s.answer(ctx, opActorSuccess, req.GetValue(), func(ctx context.Context) (string, error) {
		r, err := s.uc.ActorSuccess(ctx, req.GetValue())
		if err != nil {
			return "", err
		}
		return renderActorSuccess(r), nil
	})
}

func (s *QueryService) ExitoDirector(ctx context.Context, req *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	return s.answer(ctx, opDirectorSuccess, req.GetValue(), func(ctx context.Context) (string, error) {
		r, err := s.uc.DirectorSuccess(ctx, req.GetValue())
		if err != nil {
			return "", err
		}
		return renderDirectorSuccess(r), nil
	})
}
