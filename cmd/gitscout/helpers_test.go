package main

import "testing"

func TestSessionNameFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://github.com/owner/repo", "repo"},
		{"https://github.com/owner/repo.git", "repo"},
		{"https://github.com/owner/repo/", "repo"},
		{"git@github.com:owner/my-repo.git", "my-repo"},
		{"https://example.com/a/b/weird.name", "weird-name"},
		{"", "repo"},
		{"///", "repo"},
	}

	for _, tt := range tests {
		if got := sessionNameFromURL(tt.url); got != tt.want {
			t.Errorf("sessionNameFromURL(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}
