package repository

import (
	"context"

	"github.com/enigma-chat/enigma/internal/domain/keys"

	"gorm.io/gorm"
)

type PostgresKeyRepository struct {
	db *gorm.DB
}

func NewKeyRepository(db *gorm.DB) KeyRepository {
	return &PostgresKeyRepository{db: db}
}

func (r *PostgresKeyRepository) CreateGrant(ctx context.Context, g *keys.KeyGrant) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *PostgresKeyRepository) CreateShare(ctx context.Context, s *keys.ShareGrant) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *PostgresKeyRepository) GrantsByOwner(ctx context.Context, owner string) ([]keys.KeyGrant, error) {
	var grants []keys.KeyGrant
	err := r.db.WithContext(ctx).
		Where("owner_handle = ?", owner).
		Order("created_at ASC").
		Find(&grants).Error
	return grants, err
}

func (r *PostgresKeyRepository) SharesForRecipient(ctx context.Context, recipient string) ([]keys.ShareGrant, error) {
	var shares []keys.ShareGrant
	err := r.db.WithContext(ctx).
		Where("recipient = ?", recipient).
		Order("shared_at ASC").
		Find(&shares).Error
	return shares, err
}
