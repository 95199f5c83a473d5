package CronJobs

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/samer29/vascare-sub001/Models"

	"github.com/go-co-op/gocron"
	"gorm.io/gorm"
)

// Maintenance owns the background jobs: sweeping stale export files and
// warning about an approaching licence expiry.
type Maintenance struct {
	DB        *gorm.DB
	ExportDir string
}

func NewMaintenance(db *gorm.DB, exportDir string) *Maintenance {
	return &Maintenance{
		DB:        db,
		ExportDir: exportDir,
	}
}

// Start schedules the jobs and returns the running scheduler.
func (m *Maintenance) Start() *gocron.Scheduler {
	scheduler := gocron.NewScheduler(time.Local)

	scheduler.Every(1).Hour().Do(func() {
		if err := m.SweepExports(); err != nil {
			log.Printf("Error sweeping export directory: %v", err)
		}
	})

	scheduler.Every(1).Day().At("08:00").Do(func() {
		m.WarnLicenceExpiry()
	})

	scheduler.StartAsync()
	log.Println("Maintenance jobs started")

	return scheduler
}

// SweepExports removes export files whose per-request cleanup never ran,
// for example because the process restarted mid-download.
func (m *Maintenance) SweepExports() error {
	entries, err := os.ReadDir(m.ExportDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if time.Since(info.ModTime()) > time.Hour {
			if err := os.Remove(filepath.Join(m.ExportDir, entry.Name())); err != nil {
				log.Printf("Failed to remove stale export %s: %v", entry.Name(), err)
			}
		}
	}
	return nil
}

// WarnLicenceExpiry logs when the active licence has lapsed or is about to.
func (m *Maintenance) WarnLicenceExpiry() {
	license, err := Models.LatestLicense(m.DB)
	if err != nil {
		log.Println("Licence check: no licence registered")
		return
	}

	expiry, err := time.Parse("2006-01-02", license.ExpiryDate)
	if err != nil {
		log.Printf("Licence check: unreadable expiry date %q", license.ExpiryDate)
		return
	}

	remaining := time.Until(expiry)
	switch {
	case remaining < 0:
		log.Printf("Licence check: licence expired on %s", license.ExpiryDate)
	case remaining < 14*24*time.Hour:
		log.Printf("Licence check: licence expires on %s", license.ExpiryDate)
	}
}
