package utils

import "testing"

func TestT_Fallback(t *testing.T) {
	if got := T("fr", "health.ok"); got != "ok" {
		t.Fatalf("fallback to en failed: %s", got)
	}
}

func TestT_Turkish(t *testing.T) {
	if got := T("tr", "rating.5"); got != "Çok iyi" {
		t.Fatalf("want Turkish rating label, got %s", got)
	}
}

func TestT_UnknownKeyEchoes(t *testing.T) {
	if got := T("en", "no.such.key"); got != "no.such.key" {
		t.Fatalf("unknown key should echo, got %s", got)
	}
}

func TestTf_FormatsArgs(t *testing.T) {
	if got := Tf("en", "ack.saved", 4); got != "Your rating of 4 has been recorded." {
		t.Fatalf("Tf = %q", got)
	}
}
