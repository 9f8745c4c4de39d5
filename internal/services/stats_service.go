package services

import (
	"context"

	"github.com/enigma-chat/enigma/internal/domain/stats"
	"github.com/enigma-chat/enigma/internal/repository"
)

type StatsService struct {
	stats repository.StatsRepository
	users repository.UserRepository
}

func NewStatsService(statsRepo repository.StatsRepository, users repository.UserRepository) *StatsService {
	return &StatsService{stats: statsRepo, users: users}
}

func (s *StatsService) Snapshot(ctx context.Context) (stats.Snapshot, error) {
	online, err := s.users.CountOnline(ctx)
	if err != nil {
		return stats.Snapshot{}, err
	}
	row, err := s.stats.Get(ctx)
	if err != nil {
		return stats.Snapshot{}, err
	}
	return stats.Snapshot{OnlineUsers: online, TotalVisits: row.TotalVisits}, nil
}

// RecordVisit increments the visit counter exactly once per page-level
// visit; the stats poll endpoint never calls this.
func (s *StatsService) RecordVisit(ctx context.Context) (stats.Snapshot, error) {
	if err := s.stats.IncrementVisits(ctx); err != nil {
		return stats.Snapshot{}, err
	}
	return s.Snapshot(ctx)
}
