package core

import (
	"testing"

	"github.com/asterix-bot/storage-bot/common/utils/tgutil"
	"github.com/asterix-bot/storage-bot/database"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		info  tgutil.MediaInfo
		title string
		want  string
	}{
		{"episode tag", tgutil.MediaInfo{FileName: "Mohanagar.S01E03.720p.mkv", Type: tgutil.MediaVideo}, "", database.CategorySeries},
		{"season word in title", tgutil.MediaInfo{FileName: "x.mkv"}, "Mohanagar Season 2", database.CategorySeries},
		{"web series caption", tgutil.MediaInfo{FileName: "x.mp4", Caption: "New web-series!"}, "", database.CategorySeries},
		{"video", tgutil.MediaInfo{FileName: "Interstellar.2014.mkv", Type: tgutil.MediaVideo}, "", database.CategoryMovie},
		{"video extension", tgutil.MediaInfo{FileName: "Interstellar.2014.MP4", Type: tgutil.MediaDocument}, "", database.CategoryMovie},
		{"video mime", tgutil.MediaInfo{FileName: "42", MimeType: "video/mp4"}, "", database.CategoryMovie},
		{"series hashtag", tgutil.MediaInfo{FileName: "Interstellar.2014.mkv", Type: tgutil.MediaVideo, Caption: "Part one #WebSeries"}, "", database.CategorySeries},
		{"movie hashtag", tgutil.MediaInfo{FileName: "Mohanagar.S01.mkv", Caption: "#movie"}, "", database.CategoryMovie},
		{"document", tgutil.MediaInfo{FileName: "subs.srt", Type: tgutil.MediaDocument}, "", database.CategoryOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.info, tt.title); got != tt.want {
				t.Errorf("Classify() = %q, want %q", got, tt.want)
			}
		})
	}
}
