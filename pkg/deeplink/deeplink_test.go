package deeplink_test

import (
	"errors"
	"testing"

	"github.com/asterix-bot/storage-bot/pkg/deeplink"
)

func TestRoundTrip(t *testing.T) {
	for _, id := range []int{1, 7, 12345, 1<<31 - 1} {
		got, err := deeplink.Decode(deeplink.Encode(id))
		if err != nil {
			t.Fatalf("Decode(Encode(%d)) returned error: %v", id, err)
		}
		if got != id {
			t.Fatalf("Decode(Encode(%d)) = %d", id, got)
		}
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		token   string
		want    int
		wantErr bool
	}{
		{"file_12345", 12345, false},
		{"12345", 12345, false},
		{" file_9 ", 9, false},
		{"file_", 0, true},
		{"", 0, true},
		{"file_abc", 0, true},
		{"file_-3", 0, true},
		{"file_+3", 0, true},
		{"file_0", 0, true},
		{"file_1.5", 0, true},
		{"file_99999999999", 0, true},
		{"video_12", 0, true},
	}
	for _, tt := range tests {
		got, err := deeplink.Decode(tt.token)
		if tt.wantErr {
			if !errors.Is(err, deeplink.ErrInvalidToken) {
				t.Fatalf("Decode(%q) error = %v, want ErrInvalidToken", tt.token, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("Decode(%q) unexpected error: %v", tt.token, err)
		}
		if got != tt.want {
			t.Fatalf("Decode(%q) = %d, want %d", tt.token, got, tt.want)
		}
	}
}

func TestURL(t *testing.T) {
	got := deeplink.URL("@AsterixBot", 42)
	want := "https://t.me/AsterixBot?start=file_42"
	if got != want {
		t.Fatalf("URL() = %q, want %q", got, want)
	}
}
