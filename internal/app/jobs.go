package app

import (
	"context"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
	"go.uber.org/zap"

	"github.com/autimapro/autimapro/internal/store"
	"github.com/autimapro/autimapro/pkg/metrics"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	var err error
	_, err = a.sched.AddFunc("@every 30s", func() {
		go a.SchedSystemMonitorTask()
		go a.SchedProcessMonitorTask()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	_, err = a.sched.AddFunc("@daily", func() {
		a.SchedUnpaidOrderSweep()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	a.sched.Start()
}

// SchedSystemMonitorTask system monitor
func (a *Application) SchedSystemMonitorTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	cpuuse, err := cpu.Percent(0, false)
	if err == nil && len(cpuuse) > 0 {
		metrics.SetGauge("system_cpuuse", int64(cpuuse[0]*100))
	}

	meminfo, err := mem.VirtualMemory()
	if err == nil {
		metrics.SetGauge("system_memuse", int64(meminfo.Used/1024/1024))
	}
}

// SchedProcessMonitorTask app process monitor
func (a *Application) SchedProcessMonitorTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return
	}

	cpuuse, err := p.CPUPercent()
	if err == nil {
		metrics.SetGauge("autimapro_cpuuse", int64(cpuuse*100))
	}

	meminfo, err := p.MemoryInfo()
	if err == nil {
		metrics.SetGauge("autimapro_memuse", int64(meminfo.RSS/1024/1024))
	}
}

// SchedUnpaidOrderSweep reports orders that never received a payment
// confirmation within the configured window. They are kept, not deleted; the
// gauge and log line exist so an operator notices the backlog.
func (a *Application) SchedUnpaidOrderSweep() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	days := a.appConfig.Shop.UnpaidSweepDays
	if days <= 0 {
		days = 7
	}
	cutoff := time.Now().Add(-time.Hour * 24 * time.Duration(days))

	ledger := store.NewOrderLedger(a.gormDB)
	total, err := ledger.CountUnpaidBefore(context.Background(), cutoff)
	if err != nil {
		zap.L().Error("unpaid order sweep failed", zap.Error(err))
		return
	}

	metrics.SetGauge("orders_unpaid_stale", total)
	if total > 0 {
		zap.L().Warn("stale unpaid orders detected",
			zap.Int64("count", total),
			zap.Int("older_than_days", days))
	}
}
