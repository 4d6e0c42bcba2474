package store

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/autimapro/autimapro/internal/domain"
	"github.com/autimapro/autimapro/pkg/common"
)

// CatalogStore handles database operations for catalog products.
type CatalogStore struct {
	db *gorm.DB
}

func NewCatalogStore(db *gorm.DB) *CatalogStore {
	return &CatalogStore{db: db}
}

// List returns products newest first. A limit <= 0 returns all rows.
func (s *CatalogStore) List(ctx context.Context, limit int) ([]domain.Product, error) {
	query := s.db.WithContext(ctx).Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var rows []domain.Product
	if err := query.Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	return rows, nil
}

func (s *CatalogStore) Get(ctx context.Context, id int64) (*domain.Product, error) {
	var p domain.Product
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "query product")
	}
	return &p, nil
}

func (s *CatalogStore) Create(ctx context.Context, p *domain.Product) error {
	if p.ID == 0 {
		p.ID = common.UUIDint64()
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	return errors.Wrap(s.db.WithContext(ctx).Create(p).Error, "create product")
}

func (s *CatalogStore) Update(ctx context.Context, id int64, updates map[string]interface{}) (*domain.Product, error) {
	updates["updated_at"] = time.Now()
	res := s.db.WithContext(ctx).Model(&domain.Product{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "update product")
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.Get(ctx, id)
}

func (s *CatalogStore) Delete(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Product{})
	if res.Error != nil {
		return errors.Wrap(res.Error, "delete product")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DecrementStock consumes qty units of a product as one conditional update.
// The guard in the WHERE clause makes concurrent placements safe: each
// decrement either applies in full against sufficient stock or not at all,
// and quantity can never go negative.
//
// With refuseExactZero set, a decrement that would leave zero stock is
// refused as well (legacy storefront compatibility, see ShopConfig).
func (s *CatalogStore) DecrementStock(ctx context.Context, id int64, qty int, refuseExactZero bool) error {
	need := qty
	if refuseExactZero {
		need = qty + 1
	}
	res := s.db.WithContext(ctx).Model(&domain.Product{}).
		Where("id = ? AND quantity >= ?", id, need).
		UpdateColumn("quantity", gorm.Expr("quantity - ?", qty))
	if res.Error != nil {
		return errors.Wrap(res.Error, "decrement stock")
	}
	if res.RowsAffected > 0 {
		return nil
	}

	// Nothing matched; classify the refusal.
	p, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if refuseExactZero && p.Quantity == qty {
		return ErrZeroStockDrop
	}
	return ErrInsufficientStock
}

// RestoreStock is the compensating increment for a decrement whose follow-up
// order insert failed.
func (s *CatalogStore) RestoreStock(ctx context.Context, id int64, qty int) error {
	return errors.Wrap(s.db.WithContext(ctx).Model(&domain.Product{}).
		Where("id = ?", id).
		UpdateColumn("quantity", gorm.Expr("quantity + ?", qty)).Error,
		"restore stock")
}
