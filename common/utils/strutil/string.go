package strutil

import (
	"regexp"
	"strings"

	"github.com/duke-git/lancet/v2/slice"
)

var TagRe = regexp.MustCompile(`(?:^|[\p{Zs}\s.,!?(){}[\]<>"'|])#([\p{L}\d_]+)`)

// ExtractTags returns the distinct hashtags in text, lowercased and in order of appearance.
func ExtractTags(text string) []string {
	matches := TagRe.FindAllStringSubmatch(text, -1)
	tags := make([]string, 0, len(matches))
	for _, match := range matches {
		if len(match) > 1 {
			tags = append(tags, strings.ToLower(match[1]))
		}
	}
	return slice.Unique(tags)
}
