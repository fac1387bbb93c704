package filesystem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolvePath(t *testing.T) {
	tests := []struct {
		name string
		uri  string
		want string
	}{
		{"file uri", "file:///home/user/report.pdf", "/home/user/report.pdf"},
		{"escaped file uri", "file:///home/user/annual%20report.pdf", "/home/user/annual report.pdf"},
		{"bare path", "/tmp/docs/a.txt", "/tmp/docs/a.txt"},
		{"unclean path", "/tmp/docs/../a.txt", "/tmp/a.txt"},
		{"relative path", "docs/a.txt", "docs/a.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolvePath(tt.uri))
		})
	}
}
