package repository

import (
	"context"

	"github.com/enigma-chat/enigma/internal/domain/media"

	"gorm.io/gorm"
)

type PostgresMediaRepository struct {
	db *gorm.DB
}

func NewMediaRepository(db *gorm.DB) MediaRepository {
	return &PostgresMediaRepository{db: db}
}

func (r *PostgresMediaRepository) Create(ctx context.Context, m *media.MediaItem) error {
	return r.db.WithContext(ctx).Create(m).Error
}
