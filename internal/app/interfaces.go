package app

import (
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/autimapro/autimapro/config"
	"github.com/autimapro/autimapro/internal/events"
)

// DBProvider provides database access
type DBProvider interface {
	DB() *gorm.DB
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// BusProvider provides the in-process event bus
type BusProvider interface {
	Bus() *events.Bus
}

// SchedulerProvider provides task scheduling capability
type SchedulerProvider interface {
	Scheduler() *cron.Cron
}

// AppContext combines all provider interfaces for full application context.
// Components should depend on specific providers or this combined interface.
type AppContext interface {
	DBProvider
	ConfigProvider
	BusProvider
	SchedulerProvider

	MigrateDB() error
	InitDb()
	DropAll()
}
