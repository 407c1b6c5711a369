package database

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/asterix-bot/storage-bot/pkg/matcher"
)

type SearchOptions struct {
	Cutoff int // minimum score, 0..100
	Limit  int // 0 means no limit
}

type Match struct {
	File  File
	Score int
}

// Search ranks every registered file against query and logs the search.
// Ordering is score desc, then downloads desc, then message id desc.
func (s *Store) Search(ctx context.Context, userID int64, query string, opts SearchOptions) ([]Match, error) {
	var files []File
	err := s.db.WithContext(ctx).
		Where("file_name <> '' OR title <> '' OR caption <> ''").
		Order("downloads DESC").Order("message_id DESC").
		Find(&files).Error
	if err != nil {
		return nil, err
	}
	ranked := matcher.Rank(query, files, searchTexts, opts.Cutoff)
	if opts.Limit > 0 && len(ranked) > opts.Limit {
		ranked = ranked[:opts.Limit]
	}
	matches := make([]Match, len(ranked))
	for i, r := range ranked {
		matches[i] = Match{File: r.Item, Score: r.Score}
	}
	entry := Search{UserID: userID, Query: query, Results: len(matches)}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		log.FromContext(ctx).Warn("Failed to log search", "user", userID, "error", err)
	}
	return matches, nil
}

func searchTexts(f File) []string {
	texts := make([]string, 0, 3)
	for _, t := range []string{f.Title, f.FileName, firstLine(f.Caption)} {
		if t != "" {
			texts = append(texts, t)
		}
	}
	return texts
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return line
}

type Stats struct {
	Users     int64
	Banned    int64
	Files     int64
	Downloads int64
	Searches  int64
}

func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	var st Stats
	db := s.db.WithContext(ctx)
	if err := db.Model(&User{}).Count(&st.Users).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&User{}).Where("banned = ?", true).Count(&st.Banned).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&File{}).Count(&st.Files).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&File{}).Select("COALESCE(SUM(downloads), 0)").Scan(&st.Downloads).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&Search{}).Count(&st.Searches).Error; err != nil {
		return nil, err
	}
	return &st, nil
}
