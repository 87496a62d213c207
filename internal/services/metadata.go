package services

import (
	"context"
	"log/slog"
)

// metadataService loads the distinct department list that populates the
// filter control. It runs outside the orchestration cycle and is not
// parameterized by the filter state.
type metadataService struct {
	log  *slog.Logger
	pool warehousePool
}

func NewMetadataService(log *slog.Logger, pool warehousePool) *metadataService {
	return &metadataService{log: log, pool: pool}
}

func (s *metadataService) ListDepartments(ctx context.Context) ([]string, error) {
	sess, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer sess.Release()
	return sess.ListDepartments(ctx)
}
