package services

import (
	"errors"
	"testing"
)

func TestWrapTagsMarker(t *testing.T) {
	underlying := errors.New("exit status 1")
	err := Wrap(ErrExternalTool, "audio", "download", "yt-dlp failed", underlying)

	if !errors.Is(err, ErrExternalTool) {
		t.Fatal("wrapped error should match ErrExternalTool")
	}
	if !errors.Is(err, underlying) {
		t.Fatal("wrapped error should match underlying error")
	}
	want := "external tool error: audio: download: yt-dlp failed: exit status 1"
	if err.Error() != want {
		t.Fatalf("message = %q, want %q", err.Error(), want)
	}
}

func TestWrapDefaultsMarkerAndDetail(t *testing.T) {
	err := Wrap(nil, "", "", "", nil)
	if !errors.Is(err, ErrTransient) {
		t.Fatal("nil marker should default to ErrTransient")
	}
	if err.Error() != "transient failure: service failure" {
		t.Fatalf("message = %q", err.Error())
	}
}
