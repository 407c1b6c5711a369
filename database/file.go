package database

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UpsertFile registers a storage message or refreshes its metadata.
// An empty title keeps the stored one; the download counter is never overwritten.
func (s *Store) UpsertFile(ctx context.Context, file *File) error {
	columns := []string{"file_name", "caption", "type", "category", "size", "updated_at"}
	if file.Title != "" {
		columns = append(columns, "title")
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "message_id"}},
		DoUpdates: clause.AssignmentColumns(columns),
	}).Omit("downloads").Create(file).Error
}

func (s *Store) GetFile(ctx context.Context, messageID int) (*File, error) {
	var file File
	if err := s.db.WithContext(ctx).Where("message_id = ?", messageID).First(&file).Error; err != nil {
		return nil, notFound(err)
	}
	return &file, nil
}

// IncrementDownloads bumps the counter in one statement. Unregistered message ids are a no-op.
func (s *Store) IncrementDownloads(ctx context.Context, messageID int) error {
	return s.db.WithContext(ctx).Model(&File{}).
		Where("message_id = ?", messageID).
		UpdateColumn("downloads", gorm.Expr("downloads + ?", 1)).Error
}

// LatestFiles lists the newest registered files of a category, all categories when empty.
func (s *Store) LatestFiles(ctx context.Context, category string, limit int) ([]File, error) {
	q := s.db.WithContext(ctx).Order("message_id DESC").Limit(limit)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var files []File
	err := q.Find(&files).Error
	return files, err
}

func (s *Store) TopFiles(ctx context.Context, limit int) ([]File, error) {
	var files []File
	err := s.db.WithContext(ctx).
		Order("downloads DESC").Order("message_id DESC").
		Limit(limit).
		Find(&files).Error
	return files, err
}
