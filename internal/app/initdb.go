package app

import (
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/autimapro/autimapro/internal/domain"
	"github.com/autimapro/autimapro/pkg/common"
)

// checkSuper ensures the bootstrap admin account exists and carries the admin
// role; without it no account could ever be promoted.
func (a *Application) checkSuper() {
	email := a.appConfig.Shop.AdminEmail
	if email == "" {
		return
	}

	var user domain.ShopUser
	err := a.gormDB.Where("email = ?", email).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		now := time.Now()
		if err := a.gormDB.Create(&domain.ShopUser{
			ID:        common.UUIDint64(),
			Email:     email,
			Role:      domain.RoleAdmin,
			CreatedAt: now,
			UpdatedAt: now,
		}).Error; err != nil {
			zap.L().Error("failed to create default admin account", zap.Error(err))
		} else {
			zap.L().Info("initialized default admin account", zap.String("email", email))
		}
		return
	case err != nil:
		zap.L().Error("failed to query default admin account", zap.Error(err))
		return
	}

	if user.Role == domain.RoleAdmin {
		return
	}
	if err := a.gormDB.Model(&domain.ShopUser{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
		"role":       domain.RoleAdmin,
		"updated_at": time.Now(),
	}).Error; err != nil {
		zap.L().Error("failed to repair default admin account", zap.Error(err))
		return
	}
	zap.L().Warn("repaired default admin account role", zap.String("email", email))
}

// checkProducts seeds demo catalog items on an empty database.
func (a *Application) checkProducts() {
	defaultProducts := []domain.Product{
		{Name: "demo-drill-press", Price: 189.99, Supplier: "Autima Pro", MinOrderQty: 1, Quantity: 40},
		{Name: "demo-cnc-router-bit", Price: 24.5, Supplier: "Autima Pro", MinOrderQty: 10, Quantity: 500},
		{Name: "demo-hydraulic-clamp", Price: 74.0, Supplier: "Autima Pro", MinOrderQty: 2, Quantity: 120},
	}

	for _, p := range defaultProducts {
		var count int64
		a.gormDB.Model(&domain.Product{}).Where("name = ?", p.Name).Count(&count)
		if count == 0 {
			p.ID = common.UUIDint64()
			p.CreatedAt = time.Now()
			p.UpdatedAt = time.Now()
			if err := a.gormDB.Create(&p).Error; err != nil {
				zap.L().Error("failed to create default product", zap.String("name", p.Name), zap.Error(err))
			} else {
				zap.L().Info("initialized default product", zap.String("name", p.Name))
			}
		}
	}
}
