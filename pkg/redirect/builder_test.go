package redirect

import (
	"errors"
	"testing"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		path     string
		rawQuery string
		want     string
	}{
		{
			name:     "path and query preserved",
			target:   "https://example.org",
			path:     "/foo/bar",
			rawQuery: "x=1",
			want:     "https://example.org/foo/bar?x=1",
		},
		{
			name:   "root path no trailing slash",
			target: "https://example.org",
			path:   "/",
			want:   "https://example.org",
		},
		{
			name:   "missing scheme gets https",
			target: "example.org",
			path:   "/foo",
			want:   "https://example.org/foo",
		},
		{
			name:   "trailing slash stripped",
			target: "https://example.org/",
			path:   "/foo",
			want:   "https://example.org/foo",
		},
		{
			name:   "multiple trailing slashes stripped",
			target: "https://example.org///",
			path:   "/",
			want:   "https://example.org",
		},
		{
			name:   "target with base path",
			target: "https://example.org/base/",
			path:   "/foo",
			want:   "https://example.org/base/foo",
		},
		{
			name:     "query without path",
			target:   "example.org",
			path:     "/",
			rawQuery: "a=b&c=d",
			want:     "https://example.org?a=b&c=d",
		},
		{
			name:   "http scheme kept",
			target: "http://example.org",
			path:   "/foo",
			want:   "http://example.org/foo",
		},
		{
			name:   "empty path",
			target: "example.org",
			path:   "",
			want:   "https://example.org",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Build(tt.target, tt.path, tt.rawQuery)
			if err != nil {
				t.Fatalf("Build failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Build() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuild_InvalidTarget(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{
			name:   "empty string",
			target: "",
		},
		{
			name:   "scheme only",
			target: "https://",
		},
		{
			name:   "path only",
			target: "/just/a/path",
		},
		{
			name:   "slashes only",
			target: "///",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.target, "/foo", "")
			if !errors.Is(err, ErrInvalidTarget) {
				t.Errorf("Build(%q) error = %v, want ErrInvalidTarget", tt.target, err)
			}
		})
	}
}
