package cron

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/surveysavvy/surveysavvy/services"
)

// CronManager re-scans the watched import folder on a schedule. Files that
// were already imported are naturally skipped by the importer's idempotent
// persistence, so re-running over the same folder is cheap.
type CronManager struct {
	cron     *cron.Cron
	importer *services.ImportService
	folder   string
	schedule string
}

// NewCronManager creates a manager that imports folder on the given
// six-field cron schedule (seconds precision).
func NewCronManager(importer *services.ImportService, folder, schedule string) *CronManager {
	c := cron.New(cron.WithSeconds())

	return &CronManager{
		cron:     c,
		importer: importer,
		folder:   folder,
		schedule: schedule,
	}
}

// Start registers the scan job and starts the scheduler.
func (m *CronManager) Start() error {
	log.Printf("Starting folder watch on %s (schedule %q)...", m.folder, m.schedule)

	_, err := m.cron.AddFunc(m.schedule, func() {
		m.logJobStart("scan_import_folder")
		m.ScanImportFolder()
	})
	if err != nil {
		return err
	}

	m.cron.Start()

	log.Println("Folder watch started successfully")
	return nil
}

// Stop stops the scheduler and waits for a running scan to finish.
func (m *CronManager) Stop() {
	log.Println("Stopping folder watch...")
	ctx := m.cron.Stop()
	<-ctx.Done()
	log.Println("Folder watch stopped")
}

// ScanImportFolder runs one batch import over the watched folder.
func (m *CronManager) ScanImportFolder() {
	batch, err := m.importer.ImportFolder(m.folder)
	if err != nil {
		m.logJobError("scan_import_folder", err)
		return
	}

	m.logJobComplete("scan_import_folder", batch.Total, batch.Successful, batch.Failed)
}

func (m *CronManager) logJobStart(jobName string) {
	log.Printf("[CRON] Starting job: %s at %s", jobName, time.Now().Format(time.RFC3339))
}

func (m *CronManager) logJobComplete(jobName string, total, successful, failed int) {
	log.Printf("[CRON] Completed job: %s - %d files, %d imported, %d failed",
		jobName, total, successful, failed)
}

func (m *CronManager) logJobError(jobName string, err error) {
	log.Printf("[CRON] Error in job: %s - %v", jobName, err)
}
