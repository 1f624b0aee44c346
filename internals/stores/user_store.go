package stores

import (
	"context"
	"errors"

	"cinepass-auth/internals/models"

	"gorm.io/gorm"
)

var (
	// ErrDuplicateEmail is returned when an insert collides with the unique
	// index on users.email. The index is the real guard against concurrent
	// signups; any application-level existence check is advisory only.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("record not found")
)

// UserStore persists credential records, one per email.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Insert(ctx context.Context, user *models.User) error
	SetVerified(ctx context.Context, email string) error
}

type gormUserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) UserStore {
	return &gormUserStore{db: db}
}

func (s *gormUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Insert relies on gorm.Config{TranslateError: true} so the driver's
// unique-constraint violation surfaces as gorm.ErrDuplicatedKey.
func (s *gormUserStore) Insert(ctx context.Context, user *models.User) error {
	err := s.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateEmail
	}
	return err
}

func (s *gormUserStore) SetVerified(ctx context.Context, email string) error {
	return s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ?", email).
		Update("verified", true).Error
}
