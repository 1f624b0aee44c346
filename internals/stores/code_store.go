package stores

import (
	"context"
	"errors"
	"time"

	"cinepass-auth/internals/models"

	"gorm.io/gorm"
)

// CodeStore persists one-time verification codes. Expired rows are
// indistinguishable from absent rows: every read filters on expires_at,
// regardless of whether the janitor has physically purged the row yet.
type CodeStore interface {
	Insert(ctx context.Context, code *models.VerificationCode) error
	FindByEmailAndCode(ctx context.Context, email, code string) (*models.VerificationCode, error)
	DeleteByEmailAndCode(ctx context.Context, email, code string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

type gormCodeStore struct {
	db *gorm.DB
}

func NewCodeStore(db *gorm.DB) CodeStore {
	return &gormCodeStore{db: db}
}

func (s *gormCodeStore) Insert(ctx context.Context, code *models.VerificationCode) error {
	return s.db.WithContext(ctx).Create(code).Error
}

func (s *gormCodeStore) FindByEmailAndCode(ctx context.Context, email, code string) (*models.VerificationCode, error) {
	var entry models.VerificationCode
	err := s.db.WithContext(ctx).
		Where("email = ? AND code = ? AND expires_at > ?", email, code, time.Now()).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// DeleteByEmailAndCode consumes a code. Unscoped so the row is physically
// removed rather than soft-deleted; a consumed code must never match again.
func (s *gormCodeStore) DeleteByEmailAndCode(ctx context.Context, email, code string) error {
	return s.db.WithContext(ctx).Unscoped().
		Where("email = ? AND code = ?", email, code).
		Delete(&models.VerificationCode{}).Error
}

// DeleteExpired hard-deletes every row past its expiry. Called by the janitor.
func (s *gormCodeStore) DeleteExpired(ctx context.Context) (int64, error) {
	result := s.db.WithContext(ctx).Unscoped().
		Where("expires_at < ?", time.Now()).
		Delete(&models.VerificationCode{})
	return result.RowsAffected, result.Error
}
