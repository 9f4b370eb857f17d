package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/shashidharbabu/aerive-client/pkg/config"
	"github.com/shashidharbabu/aerive-client/pkg/logger"
)

// entry is the single kv table backing the sqlite store.
type entry struct {
	Key       string `gorm:"primaryKey;size:128"`
	Value     string
	UpdatedAt time.Time
}

func (entry) TableName() string {
	return "client_state"
}

// SQLiteStore persists client state in a local sqlite file via GORM.
type SQLiteStore struct {
	conn *gorm.DB
}

// NewSQLiteStore opens (and migrates) the local state database.
func NewSQLiteStore(ctx context.Context, cfg config.StorageConfig, logg *logger.Logger) (*SQLiteStore, error) {
	if cfg.SQLitePath == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}

	gormLogger := gormlogger.New(
		log.New(io.Discard, "", log.LstdFlags),
		gormlogger.Config{LogLevel: gormlogger.Silent},
	)

	conn, err := gorm.Open(sqlite.Open(cfg.SQLitePath), &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening state database: %w", err)
	}

	if err := conn.WithContext(ctx).AutoMigrate(&entry{}); err != nil {
		return nil, fmt.Errorf("migrating state database: %w", err)
	}

	if logg != nil {
		logg.Info(ctx, "state database ready")
	}

	return &SQLiteStore{conn: conn}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (string, bool, error) {
	var row entry
	err := s.conn.WithContext(ctx).First(&row, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading %q: %w", key, err)
	}
	return row.Value, true, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	row := entry{Key: key, Value: value, UpdatedAt: time.Now()}
	err := s.conn.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("writing %q: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if err := s.conn.WithContext(ctx).Delete(&entry{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("deleting %q: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	sqlDB, err := s.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
