package data

import (
	"context"
	"fmt"
	"time"

	"cinestats/internal/biz"
	"cinestats/internal/conf"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
)

// ProviderSet is data providers.
var ProviderSet = wire.NewSet(
	NewData,
	NewDatasetRepo,
	NewMessageCache,
)

const defaultLoadTimeout = time.Minute

// Data holds the loaded dataset snapshot and the optional cache connection
type Data struct {
	dataset *biz.Dataset
	rdb     *redis.Client
	ttl     time.Duration
	log     *log.Helper
}

// NewData loads and normalizes the dataset, then connects to Redis when configured.
// The dataset source is released as soon as the snapshot is built.
func NewData(c *conf.Data, logger log.Logger) (*Data, func(), error) {
	l := log.NewHelper(logger)
	if c == nil || c.Source == nil {
		return nil, nil, fmt.Errorf("data.source is not configured")
	}

	timeout := c.Source.LoadTimeout.AsDuration()
	if timeout <= 0 {
		timeout = defaultLoadTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	dataset, err := loadDataset(ctx, c.Source, logger)
	if err != nil {
		l.Errorf("failed to load dataset: %v", err)
		return nil, nil, err
	}
	l.Infof("dataset %s loaded: %d movies, %d cast rows, %d crew rows",
		dataset.ID, len(dataset.Movies), len(dataset.Cast), len(dataset.Crew))

	data := &Data{
		dataset: dataset,
		log:     l,
	}

	if c.Redis != nil && c.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:         c.Redis.Addr,
			ReadTimeout:  c.Redis.ReadTimeout.AsDuration(),
			WriteTimeout: c.Redis.WriteTimeout.AsDuration(),
		})

		pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer pingCancel()

		if err := rdb.Ping(pingCtx).Err(); err != nil {
			l.Warnf("failed to connect to redis: %v", err)
			// Redis is optional, continue without it
			_ = rdb.Close()
		} else {
			l.Info("redis connected successfully")
			data.rdb = rdb
			data.ttl = c.Redis.Ttl.AsDuration()
		}
	}

	cleanup := func() {
		l.Info("closing data resources")
		if data.rdb != nil {
			if err := data.rdb.Close(); err != nil {
				l.Errorf("failed to close redis: %v", err)
			}
		}
	}

	return data, cleanup, nil
}

func newSource(c *conf.Data_Source, logger log.Logger) (tableSource, error) {
	switch c.Kind {
	case "", "csv":
		return newCSVSource(c), nil
	case "parquet":
		return newParquetSource(c)
	case "postgres":
		return newPostgresSource(c, logger)
	case "http":
		return newHTTPSource(c, logger), nil
	default:
		return nil, fmt.Errorf("unknown data source kind %q", c.Kind)
	}
}

func loadDataset(ctx context.Context, c *conf.Data_Source, logger log.Logger) (*biz.Dataset, error) {
	src, err := newSource(c, logger)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := src.Close(); err != nil {
			log.NewHelper(logger).Warnf("failed to close data source: %v", err)
		}
	}()

	raw, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s source: %w", c.Kind, err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate snapshot ID: %w", err)
	}
	return normalize(id.String(), raw, log.NewHelper(logger)), nil
}
