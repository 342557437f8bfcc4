package utils

import "testing"

func TestDetermineLocale_QueryParamWins(t *testing.T) {
	got := DetermineLocale("tr-TR", "en-US,en;q=0.9,tr;q=0.8", []string{"en", "tr"}, "en")
	if got != "tr" {
		t.Fatalf("want tr, got %s", got)
	}
}

func TestDetermineLocale_AcceptLanguageOrder(t *testing.T) {
	got := DetermineLocale("", "en-US,en;q=0.9,tr;q=0.8", []string{"en", "tr"}, "en")
	if got != "en" {
		t.Fatalf("want en, got %s", got)
	}
}

func TestDetermineLocale_AcceptLanguagePrefersHigherQ(t *testing.T) {
	got := DetermineLocale("", "tr;q=0.9,en;q=0.8", []string{"en", "tr"}, "en")
	if got != "tr" {
		t.Fatalf("want tr, got %s", got)
	}
}

func TestDetermineLocale_UnsupportedQueryFallsThrough(t *testing.T) {
	got := DetermineLocale("fr", "tr;q=0.9", []string{"en", "tr"}, "en")
	if got != "tr" {
		t.Fatalf("want tr from Accept-Language, got %s", got)
	}
}

func TestDetermineLocale_DefaultFallback(t *testing.T) {
	got := DetermineLocale("", "fr-FR,es;q=0.9", []string{"en", "tr"}, "en")
	if got != "en" {
		t.Fatalf("want en fallback, got %s", got)
	}
}
