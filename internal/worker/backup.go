package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"go-ticket-sales/internal/store"
	"go-ticket-sales/pkg/logger"
)

// BackupScheduler periodically snapshots durable state to a timestamped JSON
// artifact. Snapshots are taken with the store's own read consistency, so
// sales are never blocked by a running backup.
type BackupScheduler struct {
	store    store.LedgerStore
	dir      string
	interval time.Duration
	log      *zap.Logger
}

// BackupArtifact is the on-disk envelope around a snapshot.
type BackupArtifact struct {
	ArtifactID uuid.UUID       `json:"artifact_id"`
	TakenAt    time.Time       `json:"taken_at"`
	Snapshot   *store.Snapshot `json:"snapshot"`
}

func NewBackupScheduler(ledger store.LedgerStore, dir string, interval time.Duration) *BackupScheduler {
	return &BackupScheduler{
		store:    ledger,
		dir:      dir,
		interval: interval,
		log:      logger.WithComponent("backup_scheduler"),
	}
}

func (b *BackupScheduler) Name() string { return "backup_scheduler" }

func (b *BackupScheduler) Interval() time.Duration { return b.interval }

func (b *BackupScheduler) Tick(ctx context.Context) error {
	path, err := b.RunOnce(ctx)
	if err != nil {
		return err
	}
	b.log.Info("backup created", zap.String("path", path))
	return nil
}

// RunOnce takes one snapshot and writes it to
// <dir>/backup_tickets_<yyyymmdd_hhmmss>.json, returning the path.
func (b *BackupScheduler) RunOnce(ctx context.Context) (string, error) {
	snap, err := b.store.Snapshot(ctx)
	if err != nil {
		return "", err
	}

	artifact := BackupArtifact{
		ArtifactID: uuid.New(),
		TakenAt:    snap.TakenAt,
		Snapshot:   snap,
	}

	if err := os.MkdirAll(b.dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}

	name := fmt.Sprintf("backup_tickets_%s.json", snap.TakenAt.Format("20060102_150405"))
	path := filepath.Join(b.dir, name)

	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}

	return path, nil
}
