// Package mail sends the transactional welcome email.
package mail

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sandeep2351/linkedin-clone/internal/core/ports"
)

const (
	welcomeSubject = "Welcome to LinkedIn Clone"

	defaultSessionTimeout = 30 * time.Second
)

// Config holds SMTP settings. An empty Addr selects the log-only mailer.
type Config struct {
	Addr     string
	Username string
	Password string
	From     string
}

// New returns an SMTP mailer, or a LogMailer when no SMTP address is configured.
func New(cfg Config, log zerolog.Logger) ports.Mailer {
	if cfg.Addr == "" {
		return NewLogMailer(log)
	}
	return NewSMTPMailer(cfg)
}

// SMTPMailer delivers mail through a plain SMTP relay, upgrading to TLS when
// the relay offers STARTTLS.
type SMTPMailer struct {
	cfg    Config
	dialer *net.Dialer
}

func NewSMTPMailer(cfg Config) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, dialer: &net.Dialer{}}
}

// SendWelcome runs one SMTP session bounded by ctx. The context deadline
// becomes the connection deadline (defaultSessionTimeout when ctx has none)
// and cancelling ctx aborts any blocked read or write.
func (m *SMTPMailer) SendWelcome(ctx context.Context, msg ports.WelcomeMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	host, _, err := net.SplitHostPort(m.cfg.Addr)
	if err != nil {
		return fmt.Errorf("smtp addr: %w", err)
	}

	conn, err := m.dialer.DialContext(ctx, "tcp", m.cfg.Addr)
	if err != nil {
		return fmt.Errorf("smtp dial: %w", err)
	}
	defer conn.Close()

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(defaultSessionTimeout)
	}
	if err := conn.SetDeadline(deadline); err != nil {
		return fmt.Errorf("smtp deadline: %w", err)
	}
	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetDeadline(time.Now())
	})
	defer stop()

	if err := m.session(conn, host, msg); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("smtp send: %w", ctxErr)
		}
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

func (m *SMTPMailer) session(conn net.Conn, host string, msg ports.WelcomeMessage) error {
	c, err := smtp.NewClient(conn, host)
	if err != nil {
		return err
	}
	defer c.Close()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: host}); err != nil {
			return err
		}
	}
	if m.cfg.Username != "" {
		if err := c.Auth(smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, host)); err != nil {
			return err
		}
	}

	if err := c.Mail(m.cfg.From); err != nil {
		return err
	}
	if err := c.Rcpt(msg.Email); err != nil {
		return err
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(buildWelcome(m.cfg.From, msg)); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return c.Quit()
}

// LogMailer writes the message to the log instead of sending it.
type LogMailer struct {
	log zerolog.Logger
}

func NewLogMailer(log zerolog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) SendWelcome(_ context.Context, msg ports.WelcomeMessage) error {
	m.log.Info().
		Str("to", msg.Email).
		Str("profile_url", msg.ProfileURL).
		Msg("welcome email (log mailer)")
	return nil
}

func buildWelcome(from string, msg ports.WelcomeMessage) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", msg.Email)
	fmt.Fprintf(&b, "Subject: %s\r\n", welcomeSubject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n\r\n")
	fmt.Fprintf(&b, "Hi %s,\r\n\r\n", msg.Name)
	b.WriteString("Thanks for joining. Your profile is ready:\r\n")
	fmt.Fprintf(&b, "%s\r\n\r\n", msg.ProfileURL)
	b.WriteString("Complete it to start connecting with people you know.\r\n")
	return []byte(b.String())
}
