package mailer

import (
	"sync"
	"testing"
)

// unreachableConfig points at a closed local port so every send fails fast
// and drives the pool-replacement path.
func unreachableConfig() *Config {
	cfg := &Config{From: "noreply@example.com"}
	srv := Server{Host: "127.0.0.1", Port: "1", Connections: 2, SendTimeout: 1}
	cfg.Servers = []Server{srv}
	return cfg
}

func TestSMTPConcurrentFailedSends(t *testing.T) {
	m, err := NewSMTP(unreachableConfig())
	if err != nil {
		t.Fatalf("NewSMTP: %v", err)
	}

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = m.Send("a@example.com", "subject", "<p>hi</p>")
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err == nil {
			t.Fatalf("send %d unexpectedly succeeded against a closed port", i)
		}
	}
	if got := m.pool(0); got == nil {
		t.Fatalf("pool slot emptied by reconnect")
	}
}

func TestSMTPSequentialFailedSendsReplacePool(t *testing.T) {
	m, err := NewSMTP(unreachableConfig())
	if err != nil {
		t.Fatalf("NewSMTP: %v", err)
	}
	before := m.pool(0)
	if _, err := m.Send("a@example.com", "subject", "<p>hi</p>"); err == nil {
		t.Fatalf("send unexpectedly succeeded against a closed port")
	}
	if m.pool(0) == before {
		t.Fatalf("failed send did not replace the pool")
	}
	if _, err := m.Send("a@example.com", "subject", "<p>hi</p>"); err == nil {
		t.Fatalf("second send unexpectedly succeeded")
	}
}
