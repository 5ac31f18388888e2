package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type testRequest struct {
	Messages []string `json:"messages" yaml:"messages"`
}

func TestLoadRequest(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"yaml", "req.yaml", "messages:\n  - a\n  - b\n"},
		{"json", "req.json", `{"messages": ["a", "b"]}`},
		{"no extension yaml", "req", "messages: [a, b]\n"},
		{"no extension json", "req", `{"messages": ["a", "b"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("WriteFile error: %v", err)
			}

			var req testRequest
			if err := LoadRequest(path, &req); err != nil {
				t.Fatalf("LoadRequest error: %v", err)
			}
			if len(req.Messages) != 2 || req.Messages[0] != "a" || req.Messages[1] != "b" {
				t.Errorf("Messages = %v, want [a b]", req.Messages)
			}
		})
	}
}

func TestLoadRequest_Errors(t *testing.T) {
	var req testRequest
	if err := LoadRequest(filepath.Join(t.TempDir(), "missing.yaml"), &req); err == nil {
		t.Error("LoadRequest should fail for a missing file")
	}
	if err := ParseRequest([]byte("{not json"), "req.json", &req); err == nil {
		t.Error("ParseRequest should fail for invalid JSON")
	}
}

func TestOpenInput(t *testing.T) {
	stdin := strings.NewReader("from stdin")
	for _, path := range []string{"", "-"} {
		rc, err := OpenInput(path, stdin)
		if err != nil {
			t.Fatalf("OpenInput(%q) error: %v", path, err)
		}
		rc.Close()
	}

	path := filepath.Join(t.TempDir(), "in.txt")
	os.WriteFile(path, []byte("from file"), 0644)
	rc, err := OpenInput(path, stdin)
	if err != nil {
		t.Fatalf("OpenInput error: %v", err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	if string(data) != "from file" {
		t.Errorf("read %q, want %q", data, "from file")
	}

	if _, err := OpenInput(filepath.Join(t.TempDir(), "missing"), stdin); err == nil {
		t.Error("OpenInput should fail for a missing file")
	}
}
