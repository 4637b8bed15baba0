package deps

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCheckBinariesReportsMissing(t *testing.T) {
	statuses := CheckBinaries([]Requirement{
		{Name: "bogus", Command: "tublisher-test-no-such-binary"},
		{Name: "empty", Command: "  "},
	})
	if len(statuses) != 2 {
		t.Fatalf("got %d statuses, want 2", len(statuses))
	}
	if statuses[0].Available {
		t.Error("missing binary reported as available")
	}
	if statuses[1].Detail != "command not configured" {
		t.Errorf("empty command detail = %q", statuses[1].Detail)
	}
}

func TestCheckBinariesAcceptsAbsolutePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ffmpeg")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	statuses := CheckBinaries([]Requirement{{Name: "ffmpeg", Command: path}})
	if !statuses[0].Available {
		t.Errorf("absolute path not resolved: %+v", statuses[0])
	}
}

func TestResolveFFmpegOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ffmpeg")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}

	resolved, err := ResolveFFmpeg(path)
	if err != nil {
		t.Fatalf("ResolveFFmpeg: %v", err)
	}
	if resolved != path {
		t.Errorf("resolved = %q, want %q", resolved, path)
	}
}

func TestResolveFFmpegMissingOverride(t *testing.T) {
	if _, err := ResolveFFmpeg(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error for missing override")
	}
}

func TestRequirementsUsesOverride(t *testing.T) {
	reqs := Requirements("/opt/ffmpeg/bin/ffmpeg")
	found := false
	for _, req := range reqs {
		if req.Name == "ffmpeg" && req.Command == "/opt/ffmpeg/bin/ffmpeg" {
			found = true
		}
	}
	if !found {
		t.Errorf("override not applied: %+v", reqs)
	}
}
