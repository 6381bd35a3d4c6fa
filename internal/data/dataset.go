package data

import (
	"context"
	"errors"

	"cinestats/internal/biz"

	"github.com/go-kratos/kratos/v2/log"
)

var errNoDataset = errors.New("dataset not loaded")

type datasetRepo struct {
	data *Data
	log  *log.Helper
}

// NewDatasetRepo creates a new dataset repository
func NewDatasetRepo(data *Data, logger log.Logger) biz.DatasetRepo {
	return &datasetRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func (r *datasetRepo) Snapshot(_ context.Context) (*biz.Dataset, error) {
	if r.data.dataset == nil {
		return nil, errNoDataset
	}
	return r.data.dataset, nil
}
