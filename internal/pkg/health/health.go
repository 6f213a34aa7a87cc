package health

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/propnest/PropNest/internal/pkg/cache"
	"github.com/propnest/PropNest/internal/pkg/database"
)

const probeTimeout = 2 * time.Second

// Check is the outcome of one dependency probe
type Check struct {
	Name    string `json:"name"`
	Healthy bool   `json:"healthy"`
	Detail  string `json:"detail,omitempty"`
}

// Report aggregates the dependency checks behind the health endpoint
type Report struct {
	Healthy   bool      `json:"healthy"`
	Checks    []Check   `json:"checks"`
	CheckedAt time.Time `json:"checked_at"`
}

// RunChecks probes the database, the cache and the uploads directory.
// Every probe is bounded so a hung dependency cannot stall the endpoint.
func RunChecks(uploadsDir string) Report {
	report := Report{
		Healthy:   true,
		CheckedAt: time.Now().UTC(),
	}

	report.Checks = append(report.Checks,
		checkDatabase(),
		checkCache(),
		checkUploadsDir(uploadsDir),
	)

	for _, c := range report.Checks {
		if !c.Healthy {
			report.Healthy = false
			break
		}
	}

	return report
}

func checkDatabase() Check {
	check := Check{Name: "database"}

	db := database.GetDB()
	if db == nil {
		check.Detail = "not connected"
		return check
	}

	sqlDB, err := db.DB()
	if err != nil {
		check.Detail = err.Error()
		return check
	}

	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		check.Detail = err.Error()
		return check
	}

	check.Healthy = true
	return check
}

func checkCache() Check {
	check := Check{Name: "cache"}

	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	if err := cache.Ping(ctx); err != nil {
		check.Detail = err.Error()
		return check
	}

	check.Healthy = true
	return check
}

// checkUploadsDir verifies the photo storage directory is writable by
// creating and removing a probe file.
func checkUploadsDir(uploadsDir string) Check {
	check := Check{Name: "uploads"}

	if uploadsDir == "" {
		check.Detail = "no uploads directory configured"
		return check
	}

	if err := os.MkdirAll(uploadsDir, 0755); err != nil {
		check.Detail = err.Error()
		return check
	}

	probe := filepath.Join(uploadsDir, ".healthcheck")
	if err := os.WriteFile(probe, []byte("ok"), 0644); err != nil {
		check.Detail = err.Error()
		return check
	}
	_ = os.Remove(probe)

	check.Healthy = true
	return check
}
