// Package audit persists the upload activity trail. Every finished upload
// leaves one row behind, so the trail survives restarts even though parsed
// descriptors never do.
package audit

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/Dakshp001/SOC-Central-sub003/internal/ingest/entity"
	"github.com/Dakshp001/SOC-Central-sub003/internal/pkg/pkguid"
)

type ActivityRecord struct {
	Seq        int64  `gorm:"primaryKey;autoIncrement:false"`
	EventID    string `gorm:"uniqueIndex;size:64"`
	SessionID  string `gorm:"index;size:64"`
	UploadID   string `gorm:"size:64"`
	Filename   string `gorm:"size:512"`
	Tool       string `gorm:"size:16"`
	Status     string `gorm:"size:16"`
	Err        string `gorm:"type:text"`
	RowCount   int64
	Columns    int
	FinishedAt int64
	CreatedAt  time.Time `gorm:"index"`
}

type Store struct {
	db  *gorm.DB
	seq pkguid.NumberID
}

func Open(path string, seq pkguid.NumberID) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&ActivityRecord{}); err != nil {
		return nil, err
	}

	return &Store{db: db, seq: seq}, nil
}

// Append records one finished upload. Appending the same event twice is a
// no-op, which lets the consumer retry safely.
func (s *Store) Append(ctx context.Context, event entity.UploadActivityEvent) error {
	var existing ActivityRecord
	err := s.db.WithContext(ctx).Where("event_id = ?", event.EventID).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	record := ActivityRecord{
		Seq:        s.seq.Generate(),
		EventID:    event.EventID,
		SessionID:  event.SessionID,
		UploadID:   event.UploadID,
		Filename:   event.Filename,
		Tool:       string(event.Tool),
		Status:     string(event.Status),
		Err:        event.Err,
		RowCount:   event.RowCount,
		Columns:    event.Columns,
		FinishedAt: event.FinishedAt,
	}

	return s.db.WithContext(ctx).Create(&record).Error
}

// Recent returns the newest records first. limit is clamped to [1, 500]
// with a default of 50.
func (s *Store) Recent(ctx context.Context, limit int) ([]ActivityRecord, error) {
	if limit < 1 {
		limit = 50
	}
	if limit > 500 {
		limit = 500
	}

	var records []ActivityRecord
	err := s.db.WithContext(ctx).Order("seq desc").Limit(limit).Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

// Handle lets the store sit directly behind the activity consumer.
func (s *Store) Handle(ctx context.Context, event entity.UploadActivityEvent) error {
	if event.EventID == "" {
		return errors.New("missing event id")
	}

	return s.Append(ctx, event)
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}
