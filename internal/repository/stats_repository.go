package repository

import (
	"context"
	"time"

	"github.com/enigma-chat/enigma/internal/domain/stats"

	"gorm.io/gorm"
)

// The stats row is a singleton seeded by pkg/database.
const statsRowID = 1

type PostgresStatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &PostgresStatsRepository{db: db}
}

func (r *PostgresStatsRepository) Get(ctx context.Context) (stats.SiteStats, error) {
	var s stats.SiteStats
	err := r.db.WithContext(ctx).First(&s, statsRowID).Error
	return s, err
}

func (r *PostgresStatsRepository) IncrementVisits(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Model(&stats.SiteStats{}).
		Where("id = ?", statsRowID).
		Updates(map[string]interface{}{
			"total_visits": gorm.Expr("total_visits + 1"),
			"last_updated": time.Now(),
		}).Error
}
