package captions

import (
	"errors"
	"testing"
)

func TestSelectTrackHonorsPreferenceOrder(t *testing.T) {
	tracks := []captionTrack{
		{BaseURL: "http://example/en", LanguageCode: "en"},
		{BaseURL: "http://example/ko", LanguageCode: "ko"},
	}

	track, err := selectTrack(tracks, []string{"ko", "en"})
	if err != nil {
		t.Fatalf("selectTrack: %v", err)
	}
	if track.LanguageCode != "ko" {
		t.Errorf("selected %q, want ko", track.LanguageCode)
	}
}

func TestSelectTrackFallsBackToSecondPreference(t *testing.T) {
	tracks := []captionTrack{
		{BaseURL: "http://example/en", LanguageCode: "en"},
	}

	track, err := selectTrack(tracks, []string{"ko", "en"})
	if err != nil {
		t.Fatalf("selectTrack: %v", err)
	}
	if track.LanguageCode != "en" {
		t.Errorf("selected %q, want en", track.LanguageCode)
	}
}

func TestSelectTrackMatchesRegionalVariant(t *testing.T) {
	tracks := []captionTrack{
		{BaseURL: "http://example/en-US", LanguageCode: "en-US"},
	}

	track, err := selectTrack(tracks, []string{"en"})
	if err != nil {
		t.Fatalf("selectTrack: %v", err)
	}
	if track.LanguageCode != "en-US" {
		t.Errorf("selected %q, want en-US", track.LanguageCode)
	}
}

func TestSelectTrackNoMatch(t *testing.T) {
	tracks := []captionTrack{
		{BaseURL: "http://example/fr", LanguageCode: "fr"},
	}

	if _, err := selectTrack(tracks, []string{"ko", "en"}); !errors.Is(err, ErrNoCaptions) {
		t.Fatalf("err = %v, want ErrNoCaptions", err)
	}
}

func TestSelectTrackSkipsUnparseableCodes(t *testing.T) {
	tracks := []captionTrack{
		{BaseURL: "http://example/bad", LanguageCode: "???"},
		{BaseURL: "http://example/en", LanguageCode: "en"},
	}

	track, err := selectTrack(tracks, []string{"en"})
	if err != nil {
		t.Fatalf("selectTrack: %v", err)
	}
	if track.LanguageCode != "en" {
		t.Errorf("selected %q, want en", track.LanguageCode)
	}
}
