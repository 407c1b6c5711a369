package re

import "testing"

func TestParseMessageRef(t *testing.T) {
	tests := []struct {
		in        string
		want      MessageRef
		wantError bool
	}{
		{"55", MessageRef{MessageID: 55}, false},
		{" 55 ", MessageRef{MessageID: 55}, false},
		{"https://t.me/c/3017034291/55", MessageRef{MessageID: 55, ChannelID: 3017034291}, false},
		{"https://t.me/FreeWebseriesBD/12?single", MessageRef{MessageID: 12, Username: "FreeWebseriesBD"}, false},
		{"0", MessageRef{}, true},
		{"-4", MessageRef{}, true},
		{"abc", MessageRef{}, true},
		{"https://example.com/c/1/2", MessageRef{}, true},
	}
	for _, tt := range tests {
		got, err := ParseMessageRef(tt.in)
		if (err != nil) != tt.wantError {
			t.Errorf("ParseMessageRef(%q) error = %v, wantError %v", tt.in, err, tt.wantError)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMessageRef(%q) = %+v; want %+v", tt.in, got, tt.want)
		}
	}
}
