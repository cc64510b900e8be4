package backup

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/nwinter/lifehub/internal/model"
	"github.com/nwinter/lifehub/internal/store"
)

// s3Client is an interface for testability.
type s3Client interface {
	PutObject(ctx context.Context, input *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, input *s3.DeleteObjectInput, opts ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Config holds S3-compatible storage configuration.
type S3Config struct {
	Endpoint  string
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
}

// Config holds backup manager configuration. The manager stays disabled
// unless the bucket, credentials, and passphrase are all set.
type Config struct {
	S3            S3Config
	DBPath        string
	Passphrase    string
	Interval      time.Duration
	RetentionDays int
}

// Manager periodically snapshots the database, encrypts the snapshot, and
// uploads it to S3-compatible storage. Uploads are tracked in the backups
// table and pruned past the retention window.
type Manager struct {
	cfg    Config
	db     *sql.DB
	store  *store.BackupStore
	client s3Client
	logger *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewManager(cfg Config, db *sql.DB, bs *store.BackupStore, logger *slog.Logger) *Manager {
	if cfg.Interval <= 0 {
		cfg.Interval = 24 * time.Hour
	}
	if cfg.RetentionDays <= 0 {
		cfg.RetentionDays = 30
	}

	m := &Manager{cfg: cfg, db: db, store: bs, logger: logger}
	if m.Enabled() {
		m.client = newS3Client(cfg.S3)
	}
	return m
}

func newS3Client(cfg S3Config) *s3.Client {
	opts := s3.Options{
		Region:       cfg.Region,
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		UsePathStyle: true,
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}
	return s3.New(opts)
}

// Enabled reports whether the manager has enough configuration to run.
func (m *Manager) Enabled() bool {
	return m.cfg.S3.Bucket != "" && m.cfg.S3.AccessKey != "" &&
		m.cfg.S3.SecretKey != "" && m.cfg.Passphrase != ""
}

// Start begins the scheduled backup loop. It returns immediately when the
// manager is not configured.
func (m *Manager) Start(ctx context.Context) {
	if !m.Enabled() {
		m.logger.Info("backups disabled: missing configuration")
		return
	}

	m.mu.Lock()
	ctx, m.cancel = context.WithCancel(ctx)
	m.done = make(chan struct{})
	m.mu.Unlock()

	m.logger.Info("backup scheduler started", "interval", m.cfg.Interval)

	go func() {
		defer close(m.done)
		ticker := time.NewTicker(m.cfg.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := m.RunNow(ctx); err != nil {
					m.logger.Error("scheduled backup failed", "error", err)
				}
				if err := m.prune(ctx); err != nil {
					m.logger.Error("backup prune failed", "error", err)
				}
			}
		}
	}()
}

// Stop cancels the loop and waits for an in-flight run to finish.
func (m *Manager) Stop() {
	m.mu.Lock()
	cancel := m.cancel
	done := m.done
	m.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

// RunNow performs one backup cycle and returns the record id.
func (m *Manager) RunNow(ctx context.Context) (int64, error) {
	if m.client == nil {
		return 0, fmt.Errorf("backup not configured")
	}

	timestamp := time.Now().UTC().Format("2006-01-02T150405Z")
	filename := fmt.Sprintf("lifehub-%s.db.enc", timestamp)
	s3Key := "backups/" + filename

	record, err := m.store.Create(filename, s3Key)
	if err != nil {
		return 0, fmt.Errorf("create backup record: %w", err)
	}

	m.store.UpdateStatus(record.ID, model.BackupStatusUploading, "")

	data, err := m.snapshotDB(ctx, record.ID)
	if err != nil {
		m.store.UpdateStatus(record.ID, model.BackupStatusFailed, err.Error())
		return 0, err
	}

	sealed, err := Encrypt(data, m.cfg.Passphrase)
	if err != nil {
		m.store.UpdateStatus(record.ID, model.BackupStatusFailed, err.Error())
		return 0, fmt.Errorf("encrypt snapshot: %w", err)
	}

	_, err = m.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(m.cfg.S3.Bucket),
		Key:           aws.String(s3Key),
		Body:          bytes.NewReader(sealed),
		ContentLength: aws.Int64(int64(len(sealed))),
	})
	if err != nil {
		m.store.UpdateStatus(record.ID, model.BackupStatusFailed, err.Error())
		return 0, fmt.Errorf("upload to s3: %w", err)
	}

	m.store.UpdateStatus(record.ID, model.BackupStatusComplete, "")
	m.store.UpdateSize(record.ID, int64(len(sealed)))

	m.logger.Info("backup complete", "key", s3Key, "bytes", len(sealed))
	return record.ID, nil
}

// snapshotDB checkpoints the WAL and reads a consistent copy of the database
// file.
func (m *Manager) snapshotDB(ctx context.Context, recordID int64) ([]byte, error) {
	if _, err := m.db.ExecContext(ctx, "PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		return nil, fmt.Errorf("wal checkpoint: %w", err)
	}

	dbCopy := filepath.Join(os.TempDir(), fmt.Sprintf("lifehub-backup-%d.db", recordID))
	defer os.Remove(dbCopy)

	if err := copyFile(m.cfg.DBPath, dbCopy); err != nil {
		return nil, fmt.Errorf("copy database: %w", err)
	}

	data, err := os.ReadFile(dbCopy)
	if err != nil {
		return nil, fmt.Errorf("read database copy: %w", err)
	}
	return data, nil
}

// prune deletes completed backups past the retention window, in S3 first and
// then in the backups table.
func (m *Manager) prune(ctx context.Context) error {
	cutoff := time.Now().UTC().AddDate(0, 0, -m.cfg.RetentionDays)
	old, err := m.store.ListOlderThan(cutoff)
	if err != nil {
		return fmt.Errorf("list old backups: %w", err)
	}

	for _, record := range old {
		if _, err := m.client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(m.cfg.S3.Bucket),
			Key:    aws.String(record.S3Key),
		}); err != nil {
			m.logger.Error("failed to delete s3 object", "key", record.S3Key, "error", err)
			continue
		}
		if err := m.store.Delete(record.ID); err != nil {
			return fmt.Errorf("delete backup record: %w", err)
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
