package store

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/autimapro/autimapro/internal/domain"
	"github.com/autimapro/autimapro/pkg/common"
)

// OrderLedger handles database operations for order records.
type OrderLedger struct {
	db *gorm.DB
}

func NewOrderLedger(db *gorm.DB) *OrderLedger {
	return &OrderLedger{db: db}
}

func (s *OrderLedger) Create(ctx context.Context, o *domain.Order) error {
	if o.ID == 0 {
		o.ID = common.UUIDint64()
	}
	now := time.Now()
	o.CreatedAt = now
	o.UpdatedAt = now
	return errors.Wrap(s.db.WithContext(ctx).Create(o).Error, "create order")
}

func (s *OrderLedger) Get(ctx context.Context, id int64) (*domain.Order, error) {
	var o domain.Order
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "query order")
	}
	return &o, nil
}

// ListByEmail returns the orders belonging to email, newest first.
func (s *OrderLedger) ListByEmail(ctx context.Context, email string) ([]domain.Order, error) {
	var rows []domain.Order
	err := s.db.WithContext(ctx).
		Where("email = ?", email).
		Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "list orders")
	}
	return rows, nil
}

// DeleteOwned deletes the order only when it belongs to email.
func (s *OrderLedger) DeleteOwned(ctx context.Context, id int64, email string) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND email = ?", id, email).
		Delete(&domain.Order{})
	if res.Error != nil {
		return errors.Wrap(res.Error, "delete order")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AttachPayment records the client-reported payment confirmation on an
// existing order. An unknown id fails with ErrNotFound instead of creating a
// partial record.
func (s *OrderLedger) AttachPayment(ctx context.Context, id int64, transactionID string, paid bool) (*domain.Order, error) {
	res := s.db.WithContext(ctx).Model(&domain.Order{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"transaction_id": transactionID,
			"paid":           paid,
			"updated_at":     time.Now(),
		})
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "attach payment")
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.Get(ctx, id)
}

// CountUnpaidBefore counts orders created before cutoff that never received a
// payment confirmation. Used by the daily sweep job.
func (s *OrderLedger) CountUnpaidBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&domain.Order{}).
		Where("created_at < ? AND (paid IS NULL OR paid = ?)", cutoff, false).
		Count(&total).Error
	return total, errors.Wrap(err, "count unpaid orders")
}
