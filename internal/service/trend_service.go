package service

import (
	"context"
	"time"

	"levscore/internal/dto"
	"levscore/internal/repository"
	"levscore/internal/worker"
)

type TrendService interface {
	// List returns the most recent monthly snapshots, newest first.
	List(ctx context.Context, limit int) ([]dto.TrendSnapshotResponse, error)
	// Refresh enqueues an immediate poll of the external index.
	Refresh(ctx context.Context) error
}

type trendService struct {
	trends     repository.TrendRepository
	dispatcher *worker.Dispatcher
}

func NewTrendService(trends repository.TrendRepository, dispatcher *worker.Dispatcher) TrendService {
	return &trendService{trends: trends, dispatcher: dispatcher}
}

func (s *trendService) List(ctx context.Context, limit int) ([]dto.TrendSnapshotResponse, error) {
	if limit < 1 || limit > 120 {
		limit = 24
	}
	snapshots, err := s.trends.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.TrendSnapshotResponse, len(snapshots))
	for i, snap := range snapshots {
		resp[i] = dto.TrendSnapshotResponse{
			Month:      snap.Month,
			IndexValue: snap.IndexValue,
			Source:     snap.Source,
			FetchedAt:  snap.FetchedAt.UTC().Format(time.RFC3339),
		}
	}
	return resp, nil
}

func (s *trendService) Refresh(ctx context.Context) error {
	return s.dispatcher.EnqueueTrendRefresh(ctx)
}
