package mailer

import (
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net/smtp"
	"net/textproto"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jordan-wright/email"
)

const defaultSendTimeout = 10 * time.Second

// SMTP delivers HTML mail over pooled SMTP connections. Servers are used
// round-robin; after a failed send the affected pool is reconnected so a
// flapping server does not poison subsequent deliveries.
type SMTP struct {
	cfg     *Config
	servers []Server
	counter uint64

	mu    sync.Mutex
	pools []*email.Pool
}

func NewSMTP(cfg *Config) (*SMTP, error) {
	m := &SMTP{cfg: cfg}
	for _, srv := range cfg.Servers {
		pool, err := connect(srv)
		if err != nil {
			slog.Error("smtp pool setup failed", "server", srv.Address(), "error", err)
			continue
		}
		m.servers = append(m.servers, srv)
		m.pools = append(m.pools, pool)
	}
	if len(m.pools) == 0 {
		return nil, errors.New("no smtp server connection available")
	}
	return m, nil
}

func connect(srv Server) (*email.Pool, error) {
	var auth smtp.Auth
	if srv.Auth.Username != "" || srv.Auth.Password != "" {
		auth = smtp.PlainAuth("", srv.Auth.Username, srv.Auth.Password, srv.Host)
	}
	conns := srv.Connections
	if conns <= 0 {
		conns = 1
	}
	tlsCfg := &tls.Config{
		ServerName:         srv.Host,
		InsecureSkipVerify: srv.InsecureSkipVerify,
	}
	return email.NewPool(srv.Address(), conns, auth, tlsCfg)
}

// Send delivers one HTML message and returns its Message-Id. The attempt is
// bounded by the server's sendTimeout; no retry is made here, the caller
// records per-recipient outcomes.
func (m *SMTP) Send(to, subject, htmlBody string) (string, error) {
	n := atomic.AddUint64(&m.counter, 1)
	idx := int(n % uint64(len(m.servers)))
	srv := m.servers[idx]

	msgID := fmt.Sprintf("<%s@%s>", uuid.NewString(), srv.Host)
	e := &email.Email{
		To:      []string{to},
		From:    m.cfg.From,
		ReplyTo: m.cfg.ReplyTo,
		Subject: subject,
		HTML:    []byte(htmlBody),
		Headers: textproto.MIMEHeader{"Message-Id": {msgID}},
	}

	timeout := time.Duration(srv.SendTimeout) * time.Second
	if timeout <= 0 {
		timeout = defaultSendTimeout
	}
	pool := m.pool(idx)
	if err := pool.Send(e, timeout); err != nil {
		slog.Error("smtp send failed", "server", srv.Address(), "error", err)
		m.reconnect(idx, pool)
		return "", err
	}
	return msgID, nil
}

func (m *SMTP) pool(idx int) *email.Pool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pools[idx]
}

// reconnect replaces the pool at idx after a failed send and closes the old
// one. When a concurrent send already swapped the slot, the fresh pool is
// discarded instead.
func (m *SMTP) reconnect(idx int, failed *email.Pool) {
	srv := m.servers[idx]
	pool, err := connect(srv)
	if err != nil {
		slog.Error("smtp reconnect failed", "server", srv.Address(), "error", err)
		return
	}
	m.mu.Lock()
	if m.pools[idx] != failed {
		m.mu.Unlock()
		pool.Close()
		return
	}
	m.pools[idx] = pool
	m.mu.Unlock()
	failed.Close()
}

// Log is the transport used when no SMTP config is present: it writes the
// would-be delivery to the log and reports success, so local development
// exercises the full create flow without a mail server.
type Log struct{}

func (Log) Send(to, subject, htmlBody string) (string, error) {
	msgID := fmt.Sprintf("<%s@localhost>", uuid.NewString())
	slog.Info("smtp disabled, invite logged instead of sent",
		"to", to,
		"subject", subject,
		"message_id", msgID,
		"body_bytes", len(htmlBody),
	)
	return msgID, nil
}
