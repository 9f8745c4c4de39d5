package repository

import (
	"context"
	"errors"
	"time"

	"github.com/enigma-chat/enigma/internal/domain/user"
	enigma_errors "github.com/enigma-chat/enigma/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostgresUserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &PostgresUserRepository{db: db}
}

// Create inserts a new user row. The unique index on handle makes racing
// claims of the same handle resolve to exactly one success.
func (r *PostgresUserRepository) Create(ctx context.Context, u *user.User) error {
	res := r.db.WithContext(ctx).Create(u)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return enigma_errors.ErrAlreadyTaken
		}
		return res.Error
	}
	return nil
}

func (r *PostgresUserRepository) GetByHandle(ctx context.Context, handle string) (user.User, error) {
	var u user.User
	err := r.db.WithContext(ctx).Where("handle = ?", handle).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user.User{}, enigma_errors.ErrNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

func (r *PostgresUserRepository) GetBySessionID(ctx context.Context, sessionID uuid.UUID) (user.User, error) {
	var u user.User
	err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user.User{}, enigma_errors.ErrNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

func (r *PostgresUserRepository) Touch(ctx context.Context, handle string, at time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&user.User{}).
		Where("handle = ?", handle).
		Updates(map[string]interface{}{"last_active": at, "is_online": true})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return enigma_errors.ErrNotFound
	}
	return nil
}

// SweepStale flips is_online off for every user whose last_active is older
// than the cutoff and returns the swept handles so presence caches can be
// pruned. Idempotent.
func (r *PostgresUserRepository) SweepStale(ctx context.Context, cutoff time.Time) ([]string, error) {
	var handles []string
	err := r.db.WithContext(ctx).
		Model(&user.User{}).
		Where("is_online = ? AND last_active < ?", true, cutoff).
		Pluck("handle", &handles).Error
	if err != nil {
		return nil, err
	}
	if len(handles) == 0 {
		return nil, nil
	}
	res := r.db.WithContext(ctx).
		Model(&user.User{}).
		Where("handle IN ?", handles).
		Update("is_online", false)
	if res.Error != nil {
		return nil, res.Error
	}
	return handles, nil
}

func (r *PostgresUserRepository) IsOnline(ctx context.Context, handle string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&user.User{}).
		Where("handle = ? AND is_online = ?", handle, true).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresUserRepository) CountOnline(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&user.User{}).
		Where("is_online = ?", true).
		Count(&count).Error
	return count, err
}
