package youtube

import (
	"errors"
	"testing"
)

func TestParseVideoID(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{"short link", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"short link with www", "https://www.youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"watch link", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"watch link no www", "https://youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"watch link extra params", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s", "dQw4w9WgXcQ", false},
		{"shorts link", "https://www.youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"shorts with trailing segment", "https://www.youtube.com/shorts/dQw4w9WgXcQ/extra", "dQw4w9WgXcQ", false},
		{"leading whitespace", "  https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", false},

		{"empty string", "", "", true},
		{"not a url", "::::", "", true},
		{"no scheme", "youtube.com/watch?v=dQw4w9WgXcQ", "", true},
		{"wrong host", "https://vimeo.com/12345", "", true},
		{"watch without v", "https://www.youtube.com/watch?list=PL123", "", true},
		{"short link empty path", "https://youtu.be/", "", true},
		{"short link nested path", "https://youtu.be/a/b", "", true},
		{"channel path", "https://www.youtube.com/channel/UC123", "", true},
		{"bare shorts path", "https://www.youtube.com/shorts/", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseVideoID(tt.url)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidLocator) {
					t.Fatalf("ParseVideoID(%q) err = %v, want ErrInvalidLocator", tt.url, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseVideoID(%q) unexpected error: %v", tt.url, err)
			}
			if got != tt.want {
				t.Errorf("ParseVideoID(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}
