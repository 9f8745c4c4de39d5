package repository

import (
	"context"
	"errors"

	"github.com/enigma-chat/enigma/internal/domain/call"
	enigma_errors "github.com/enigma-chat/enigma/pkg/errors"

	"gorm.io/gorm"
)

type PostgresCallRepository struct {
	db *gorm.DB
}

func NewCallRepository(db *gorm.DB) CallRepository {
	return &PostgresCallRepository{db: db}
}

func (r *PostgresCallRepository) Create(ctx context.Context, c *call.CallInvite) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *PostgresCallRepository) GetByRoom(ctx context.Context, roomID string) (call.CallInvite, error) {
	var c call.CallInvite
	err := r.db.WithContext(ctx).Where("room_id = ?", roomID).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return call.CallInvite{}, enigma_errors.ErrNotFound
		}
		return call.CallInvite{}, err
	}
	return c, nil
}

// TransitionStatus moves an invite from one status to another. The guarded
// update makes concurrent responses to the same invite resolve to one winner.
func (r *PostgresCallRepository) TransitionStatus(ctx context.Context, roomID, from, to string) error {
	res := r.db.WithContext(ctx).
		Model(&call.CallInvite{}).
		Where("room_id = ? AND status = ?", roomID, from).
		Update("status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return enigma_errors.ErrInvalidTransition
	}
	return nil
}

func (r *PostgresCallRepository) PendingFor(ctx context.Context, callee string) ([]call.CallInvite, error) {
	var invites []call.CallInvite
	err := r.db.WithContext(ctx).
		Where("callee = ? AND status = ?", callee, call.StatusPending).
		Order("created_at ASC").
		Find(&invites).Error
	return invites, err
}
