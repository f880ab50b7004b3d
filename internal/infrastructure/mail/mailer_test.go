package mail

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"net"
	"net/textproto"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/sandeep2351/linkedin-clone/internal/core/ports"
)

var welcome = ports.WelcomeMessage{
	UserID:     "1",
	Email:      "alice@example.com",
	Name:       "Alice",
	ProfileURL: "http://localhost:5173/profile/alice",
}

// relay is a minimal SMTP server that accepts a single session and records it.
type relay struct {
	mu   sync.Mutex
	auth string
	from string
	rcpt string
	data string
}

func (r *relay) record(field *string, v string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	*field = v
}

func (r *relay) snapshot() relay {
	r.mu.Lock()
	defer r.mu.Unlock()
	return relay{auth: r.auth, from: r.from, rcpt: r.rcpt, data: r.data}
}

func startRelay(t *testing.T) (string, *relay) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	r := &relay{}
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		tp := textproto.NewConn(conn)
		_ = tp.PrintfLine("220 localhost ESMTP")
		for {
			line, err := tp.ReadLine()
			if err != nil {
				return
			}
			upper := strings.ToUpper(line)
			switch {
			case strings.HasPrefix(upper, "EHLO"):
				_ = tp.PrintfLine("250-localhost")
				_ = tp.PrintfLine("250 AUTH PLAIN")
			case strings.HasPrefix(upper, "AUTH PLAIN "):
				r.record(&r.auth, line[len("AUTH PLAIN "):])
				_ = tp.PrintfLine("235 authenticated")
			case strings.HasPrefix(upper, "MAIL FROM:"):
				r.record(&r.from, line[len("MAIL FROM:"):])
				_ = tp.PrintfLine("250 OK")
			case strings.HasPrefix(upper, "RCPT TO:"):
				r.record(&r.rcpt, line[len("RCPT TO:"):])
				_ = tp.PrintfLine("250 OK")
			case upper == "DATA":
				_ = tp.PrintfLine("354 end with <CRLF>.<CRLF>")
				b, err := tp.ReadDotBytes()
				if err != nil {
					return
				}
				r.record(&r.data, string(b))
				_ = tp.PrintfLine("250 queued")
			case upper == "QUIT":
				_ = tp.PrintfLine("221 bye")
				return
			default:
				_ = tp.PrintfLine("502 command not implemented")
			}
		}
	}()
	return ln.Addr().String(), r
}

// startSilentRelay accepts connections and never sends the SMTP greeting.
func startSilentRelay(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	var mu sync.Mutex
	var conns []net.Conn
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			mu.Lock()
			conns = append(conns, conn)
			mu.Unlock()
		}
	}()
	t.Cleanup(func() {
		ln.Close()
		mu.Lock()
		defer mu.Unlock()
		for _, c := range conns {
			c.Close()
		}
	})
	return ln.Addr().String()
}

func sendAsync(ctx context.Context, m *SMTPMailer) <-chan error {
	done := make(chan error, 1)
	go func() { done <- m.SendWelcome(ctx, welcome) }()
	return done
}

func TestNew_SelectsLogMailerWithoutAddr(t *testing.T) {
	m := New(Config{}, zerolog.New(io.Discard))
	if _, ok := m.(*LogMailer); !ok {
		t.Fatalf("expected *LogMailer, got %T", m)
	}

	m = New(Config{Addr: "smtp.example.com:587"}, zerolog.New(io.Discard))
	if _, ok := m.(*SMTPMailer); !ok {
		t.Fatalf("expected *SMTPMailer, got %T", m)
	}
}

func TestSMTPMailer_SendWelcome(t *testing.T) {
	addr, r := startRelay(t)
	m := NewSMTPMailer(Config{Addr: addr, Username: "u", Password: "p", From: "noreply@example.com"})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := m.SendWelcome(ctx, welcome); err != nil {
		t.Fatalf("SendWelcome: %v", err)
	}

	got := r.snapshot()
	creds, err := base64.StdEncoding.DecodeString(got.auth)
	if err != nil || string(creds) != "\x00u\x00p" {
		t.Fatalf("unexpected PLAIN credentials %q (err %v)", creds, err)
	}
	if got.from != "<noreply@example.com>" {
		t.Fatalf("unexpected sender %q", got.from)
	}
	if got.rcpt != "<alice@example.com>" {
		t.Fatalf("unexpected recipient %q", got.rcpt)
	}
	if !strings.Contains(got.data, "Subject: "+welcomeSubject) ||
		!strings.Contains(got.data, "Hi Alice") ||
		!strings.Contains(got.data, "/profile/alice") {
		t.Fatalf("unexpected body: %s", got.data)
	}
}

func TestSMTPMailer_NoAuthWithoutUsername(t *testing.T) {
	addr, r := startRelay(t)
	m := NewSMTPMailer(Config{Addr: addr, From: "noreply@example.com"})

	if err := m.SendWelcome(context.Background(), welcome); err != nil {
		t.Fatalf("SendWelcome: %v", err)
	}
	if got := r.snapshot(); got.auth != "" || got.rcpt == "" {
		t.Fatalf("unexpected session: %+v", &got)
	}
}

func TestSMTPMailer_SilentRelayHonoursDeadline(t *testing.T) {
	m := NewSMTPMailer(Config{Addr: startSilentRelay(t), From: "noreply@example.com"})

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	select {
	case err := <-sendAsync(ctx, m):
		if err == nil {
			t.Fatalf("expected an error from a relay that never greets")
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("SendWelcome still blocked 3s after a 200ms deadline")
	}
}

func TestSMTPMailer_CancelAbortsSession(t *testing.T) {
	m := NewSMTPMailer(Config{Addr: startSilentRelay(t), From: "noreply@example.com"})

	ctx, cancel := context.WithCancel(context.Background())
	done := sendAsync(ctx, m)
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("SendWelcome ignored cancellation")
	}
}

func TestSMTPMailer_SendError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	ln.Close()

	m := NewSMTPMailer(Config{Addr: addr, From: "noreply@example.com"})
	if err := m.SendWelcome(context.Background(), welcome); err == nil {
		t.Fatalf("expected error")
	}
}

func TestSMTPMailer_CancelledBeforeSend(t *testing.T) {
	m := NewSMTPMailer(Config{Addr: "127.0.0.1:1", From: "noreply@example.com"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := m.SendWelcome(ctx, welcome); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
