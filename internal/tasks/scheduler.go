package tasks

import (
	"context"
	"errors"
	"log"

	"easyblog/internal/services"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the periodic posts backup on a cron expression.
type Scheduler struct {
	cron          *cron.Cron
	backupService *services.BackupService
	spec          string
}

func NewScheduler(backupService *services.BackupService, spec string) *Scheduler {
	return &Scheduler{
		cron:          cron.New(),
		backupService: backupService,
		spec:          spec,
	}
}

// Start registers the backup job and starts the cron loop. With an empty
// cron expression scheduled backups stay disabled.
func (s *Scheduler) Start() error {
	if s.spec == "" {
		log.Println("Scheduled backups disabled (BACKUP_CRON not set)")
		return nil
	}
	if _, err := s.cron.AddFunc(s.spec, s.runBackup); err != nil {
		return err
	}
	s.cron.Start()
	log.Printf("Scheduled backups enabled: %s", s.spec)
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) runBackup() {
	path, err := s.backupService.Run(context.Background())
	if errors.Is(err, services.ErrBackupNoChange) {
		log.Println("Backup skipped: no changes since last archive")
		return
	}
	if err != nil {
		log.Printf("Backup failed: %v", err)
		return
	}
	log.Printf("Backup written to %s", path)
}
