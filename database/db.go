package database

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"

	"github.com/asterix-bot/storage-bot/config"
)

var ErrNotFound = errors.New("record not found")

// Store is the access ledger. One Store shares a single pooled connection handle
// between all goroutines.
type Store struct {
	db *gorm.DB
}

func Init(ctx context.Context) *Store {
	logger := log.FromContext(ctx)
	s, err := Open(ctx, config.C().DB.Path)
	if err != nil {
		logger.Fatal("Failed to open database", "error", err)
	}
	logger.Info("Database initialized")
	return s
}

func Open(ctx context.Context, path string) (*Store, error) {
	logger := log.FromContext(ctx)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	db, err := gorm.Open(GetDialect(DSN(path)), &gorm.Config{
		Logger: glogger.New(logger, glogger.Config{
			Colorful:                  true,
			SlowThreshold:             time.Second * 5,
			LogLevel:                  glogger.Error,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
		}),
		PrepareStmt: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	logger.Debug("Database connected", "path", path)
	if err := db.WithContext(ctx).AutoMigrate(&User{}, &File{}, &Search{}); err != nil {
		return nil, fmt.Errorf("database migration failed: %w", err)
	}
	logger.Debug("Database migrated")
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
