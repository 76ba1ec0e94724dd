package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"gatepass/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// BackupService copies the current snapshot to timestamped files on a cron schedule
type BackupService struct {
	repo repositories.SnapshotRepository
	dir  string
	cron *cron.Cron
	now  func() time.Time
}

// NewBackupService creates a backup service writing into dir
func NewBackupService(repo repositories.SnapshotRepository, dir string) *BackupService {
	return &BackupService{
		repo: repo,
		dir:  dir,
		cron: cron.New(),
		now:  time.Now,
	}
}

// Start schedules backups using a standard 5-field cron spec
func (s *BackupService) Start(schedule string) error {
	if _, err := s.cron.AddFunc(schedule, s.run); err != nil {
		return fmt.Errorf("invalid backup schedule %q: %w", schedule, err)
	}
	s.cron.Start()
	log.Printf("🚀 BackupService started [%s -> %s]", schedule, s.dir)
	return nil
}

// Stop waits for a running backup to finish
func (s *BackupService) Stop() {
	<-s.cron.Stop().Done()
	log.Println("🛑 BackupService stopped")
}

func (s *BackupService) run() {
	path, err := s.Backup(context.Background())
	if err != nil {
		log.Printf("❌ Snapshot backup failed: %v", err)
		return
	}
	log.Printf("✅ Snapshot backed up to %s", path)
}

// Backup writes the current snapshot and returns the file path
func (s *BackupService) Backup(ctx context.Context) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(s.repo.Load(ctx), "", "  ")
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("database-%s.json", s.now().UTC().Format("20060102-150405"))
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
