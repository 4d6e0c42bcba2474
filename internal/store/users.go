package store

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/autimapro/autimapro/internal/domain"
	"github.com/autimapro/autimapro/pkg/common"
)

// UserStore handles database operations for storefront accounts.
type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.ShopUser, error) {
	var u domain.ShopUser
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "query user")
	}
	return &u, nil
}

// Upsert creates the account for email when absent, otherwise touches it.
// Reports whether a new row was created.
func (s *UserStore) Upsert(ctx context.Context, email string) (*domain.ShopUser, bool, error) {
	var u domain.ShopUser
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		now := time.Now()
		u = domain.ShopUser{
			ID:        common.UUIDint64(),
			Email:     email,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.db.WithContext(ctx).Create(&u).Error; err != nil {
			return nil, false, errors.Wrap(err, "create user")
		}
		return &u, true, nil
	case err != nil:
		return nil, false, errors.Wrap(err, "query user")
	}

	if err := s.db.WithContext(ctx).Model(&u).Update("updated_at", time.Now()).Error; err != nil {
		return nil, false, errors.Wrap(err, "touch user")
	}
	return &u, false, nil
}

// IsAdmin reports whether the account exists and carries the admin role. A
// missing account is an ordinary deny, not an error.
func (s *UserStore) IsAdmin(ctx context.Context, email string) (bool, error) {
	u, err := s.GetByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return u.Role == domain.RoleAdmin, nil
}

func (s *UserStore) SetRole(ctx context.Context, email, role string) error {
	res := s.db.WithContext(ctx).Model(&domain.ShopUser{}).
		Where("email = ?", email).
		Updates(map[string]interface{}{"role": role, "updated_at": time.Now()})
	if res.Error != nil {
		return errors.Wrap(res.Error, "update role")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *UserStore) Delete(ctx context.Context, email string) error {
	res := s.db.WithContext(ctx).Where("email = ?", email).Delete(&domain.ShopUser{})
	if res.Error != nil {
		return errors.Wrap(res.Error, "delete user")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *UserStore) List(ctx context.Context) ([]domain.ShopUser, error) {
	var rows []domain.ShopUser
	if err := s.db.WithContext(ctx).Order("id DESC").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "list users")
	}
	return rows, nil
}
