package infrastructure

import (
	"context"
	"time"

	"gorm.io/gorm"

	"forecast.app/internal/ports"
)

// DatabaseHealthChecker pings the favorites store
type DatabaseHealthChecker struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewDatabaseHealthChecker(db *gorm.DB) *DatabaseHealthChecker {
	return &DatabaseHealthChecker{db: db, timeout: 2 * time.Second}
}

// Check verifies the store answers a ping and reports pool usage
func (d *DatabaseHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "database",
		Status:    StatusUnhealthy,
		Details:   make(map[string]interface{}),
	}

	if d.db == nil {
		status.Error = "database instance is nil"
		return status
	}

	sqlDB, err := d.db.DB()
	if err != nil {
		status.Error = "failed to get underlying database connection"
		return status
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		status.Error = err.Error()
		return status
	}

	stats := sqlDB.Stats()
	status.Status = StatusHealthy
	status.Details["dialect"] = d.db.Dialector.Name()
	status.Details["open_connections"] = stats.OpenConnections
	status.Details["in_use"] = stats.InUse
	return status
}
