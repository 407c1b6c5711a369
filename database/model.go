package database

import "time"

type User struct {
	ID        uint   `gorm:"primarykey"`
	UserID    int64  `gorm:"uniqueIndex;not null"`
	Username  string `gorm:"index"`
	FirstName string
	JoinDate  time.Time `gorm:"autoCreateTime"`
	Banned    bool      `gorm:"not null;default:false"`
	UpdatedAt time.Time
}

type File struct {
	ID        uint `gorm:"primarykey"`
	MessageID int  `gorm:"uniqueIndex;not null"` // storage channel message id
	FileName  string
	Title     string
	Caption   string
	Type      string // document, video, audio, photo or other
	Category  string `gorm:"index"`
	Size      int64
	Downloads int64 `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Search is one row of the append-only search log.
type Search struct {
	ID      uint  `gorm:"primarykey"`
	UserID  int64 `gorm:"index"`
	Query   string
	Results int
	Date    time.Time `gorm:"autoCreateTime;index"`
}

const (
	CategoryMovie  = "movie"
	CategorySeries = "series"
	CategoryOther  = "other"
)
