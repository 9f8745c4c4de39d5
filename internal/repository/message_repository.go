package repository

import (
	"context"

	"github.com/enigma-chat/enigma/internal/domain/message"

	"gorm.io/gorm"
)

type PostgresMessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &PostgresMessageRepository{db: db}
}

func (r *PostgresMessageRepository) CreatePrivate(ctx context.Context, m *message.PrivateMessage) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *PostgresMessageRepository) CreatePublic(ctx context.Context, m *message.PublicMessage) error {
	return r.db.WithContext(ctx).Create(m).Error
}

// RecentPublic returns the newest public messages first, capped at limit.
func (r *PostgresMessageRepository) RecentPublic(ctx context.Context, limit int) ([]message.PublicMessage, error) {
	var msgs []message.PublicMessage
	err := r.db.WithContext(ctx).
		Order("sent_at DESC").
		Limit(limit).
		Find(&msgs).Error
	return msgs, err
}

// RecentPrivate returns the newest private messages where handle is sender or
// recipient, capped at limit. Audience filtering happens here, not at read
// time in the assembler.
func (r *PostgresMessageRepository) RecentPrivate(ctx context.Context, handle string, limit int) ([]message.PrivateMessage, error) {
	var msgs []message.PrivateMessage
	err := r.db.WithContext(ctx).
		Where("sender = ? OR recipient = ?", handle, handle).
		Order("sent_at DESC").
		Limit(limit).
		Find(&msgs).Error
	return msgs, err
}
