package database

import (
	"context"
	"time"

	"gorm.io/gorm/clause"
)

// RecordUser creates the user on first contact and refreshes the profile afterwards.
// The join date and ban flag are never touched by later calls.
func (s *Store) RecordUser(ctx context.Context, userID int64, username, firstName string) error {
	user := User{UserID: userID, Username: username, FirstName: firstName}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"username", "first_name", "updated_at"}),
	}).Create(&user).Error
}

func (s *Store) GetUser(ctx context.Context, userID int64) (*User, error) {
	var user User
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// IsBanned reports false for users the ledger has never seen.
func (s *Store) IsBanned(ctx context.Context, userID int64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&User{}).
		Where("user_id = ? AND banned = ?", userID, true).
		Count(&count).Error
	return count > 0, err
}

// Ban marks the user as banned, creating the row if needed. There is no unban.
func (s *Store) Ban(ctx context.Context, userID int64) error {
	user := User{UserID: userID, Banned: true}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"banned":     true,
			"updated_at": time.Now(),
		}),
	}).Create(&user).Error
}
