package core

import (
	"regexp"
	"strings"

	"github.com/asterix-bot/storage-bot/common/utils/strutil"
	"github.com/asterix-bot/storage-bot/common/utils/tgutil"
	"github.com/asterix-bot/storage-bot/database"
)

var seriesRe = regexp.MustCompile(`(?i)\bS\d{1,2}\s*E\d{1,3}\b|\bS\d{1,2}\b|\bseason\b|\bepisode\b|\bep\s?\d+\b|web[\s._-]?series`)

var videoExts = []string{".mkv", ".mp4", ".avi", ".mov", ".webm", ".m4v", ".ts"}

var tagCategories = map[string]string{
	"webseries": database.CategorySeries,
	"series":    database.CategorySeries,
	"movie":     database.CategoryMovie,
	"movies":    database.CategoryMovie,
}

// Classify files a stored message under series, movie or other.
// A category hashtag in the caption wins over the name heuristics.
func Classify(info tgutil.MediaInfo, title string) string {
	for _, tag := range strutil.ExtractTags(info.Caption) {
		if category, ok := tagCategories[tag]; ok {
			return category
		}
	}
	text := strings.Join([]string{title, info.FileName, info.Caption}, " ")
	text = strings.NewReplacer(".", " ", "_", " ", "-", " ").Replace(text)
	if seriesRe.MatchString(text) {
		return database.CategorySeries
	}
	if info.Type == tgutil.MediaVideo || strings.HasPrefix(info.MimeType, "video/") {
		return database.CategoryMovie
	}
	name := strings.ToLower(info.FileName)
	for _, ext := range videoExts {
		if strings.HasSuffix(name, ext) {
			return database.CategoryMovie
		}
	}
	return database.CategoryOther
}

func fileRecord(info tgutil.MediaInfo, title string) *database.File {
	typ := info.Type
	if typ == "" {
		typ = "other"
	}
	return &database.File{
		MessageID: info.MessageID,
		FileName:  info.FileName,
		Title:     strings.TrimSpace(title),
		Caption:   info.Caption,
		Type:      typ,
		Category:  Classify(info, title),
		Size:      info.Size,
	}
}
