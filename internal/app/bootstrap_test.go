package app

import (
	"errors"
	"testing"

	"skill-matrix/internal/config"
)

func TestListenAddr(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"8080", ":8080", false},
		{" :9090 ", ":9090", false},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ListenAddr(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ListenAddr(%q): unexpected err %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ListenAddr(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestNewContainer_RequiresDatabase(t *testing.T) {
	_, err := NewContainer(config.Config{}, nil)
	if !errors.Is(err, errDatabaseNotConfigured) {
		t.Fatalf("expected errDatabaseNotConfigured, got %v", err)
	}
}
