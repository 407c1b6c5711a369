package tgutil

import (
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gotd/td/tg"
)

const (
	MediaVideo    = "video"
	MediaAudio    = "audio"
	MediaDocument = "document"
	MediaPhoto    = "photo"
)

// MediaInfo is what the bot remembers about a stored file message.
type MediaInfo struct {
	MessageID int
	FileName  string
	Caption   string
	MimeType  string
	Type      string
	Size      int64
}

// DescribeMessage extracts the file metadata of msg.
// It returns false when the message carries no document or photo.
func DescribeMessage(msg *tg.Message) (MediaInfo, bool) {
	if msg == nil || msg.Media == nil {
		return MediaInfo{}, false
	}
	info := MediaInfo{
		MessageID: msg.ID,
		Caption:   strings.TrimSpace(msg.Message),
	}
	switch media := msg.Media.(type) {
	case *tg.MessageMediaDocument:
		doc, ok := media.Document.AsNotEmpty()
		if !ok {
			return MediaInfo{}, false
		}
		info.MimeType = doc.MimeType
		info.Size = doc.Size
		info.Type = MediaDocument
		for _, attr := range doc.Attributes {
			switch a := attr.(type) {
			case *tg.DocumentAttributeFilename:
				info.FileName = a.FileName
			case *tg.DocumentAttributeVideo:
				info.Type = MediaVideo
			case *tg.DocumentAttributeAudio:
				info.Type = MediaAudio
				if info.FileName == "" && a.Title != "" {
					info.FileName = a.Title
				}
			}
		}
		if info.FileName == "" {
			info.FileName = fmt.Sprintf("%d%s", doc.ID, extension(doc.MimeType))
		}
	case *tg.MessageMediaPhoto:
		photo, ok := media.Photo.AsNotEmpty()
		if !ok {
			return MediaInfo{}, false
		}
		info.Type = MediaPhoto
		info.MimeType = "image/jpeg"
		info.FileName = fmt.Sprintf("%d.jpg", photo.ID)
		info.Size = largestPhotoSize(photo)
	default:
		return MediaInfo{}, false
	}
	return info, true
}

func extension(mime string) string {
	if mime == "" {
		return ""
	}
	if mmt := mimetype.Lookup(mime); mmt != nil {
		return mmt.Extension()
	}
	return ""
}

func largestPhotoSize(photo *tg.Photo) int64 {
	var size int64
	for _, s := range photo.Sizes {
		switch v := s.(type) {
		case *tg.PhotoSize:
			size = max(size, int64(v.Size))
		case *tg.PhotoSizeProgressive:
			for _, n := range v.Sizes {
				size = max(size, int64(n))
			}
		}
	}
	return size
}
