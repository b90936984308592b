// Package mail delivers one-time verification and password reset codes.
package mail

import (
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strings"

	"github.com/listoria/listoria-server/internal/config"
	"github.com/listoria/listoria-server/internal/logger"
)

// Sender delivers one-time codes to users.
type Sender interface {
	SendVerificationCode(ctx context.Context, to, name, code string) error
	SendResetCode(ctx context.Context, to, code string) error
}

const (
	verifySubject = "Listoria - Hesap Doğrulama Kodu"
	resetSubject  = "Şifre Sıfırlama Kodu"
)

func verifyBody(name, code string) string {
	return fmt.Sprintf(`Merhaba %s,

Listoria'ya hoş geldin! Hesabını doğrulamak için aşağıdaki 6 haneli kodu kullan:

Doğrulama Kodu: %s

Bu kod 15 dakika boyunca geçerlidir. Güvenliğin için bu kodu kimseyle paylaşma.

Eğer bu hesabı sen oluşturmadıysan, bu e-postayı görmezden gel.

Listoria Ekibi`, name, code)
}

func resetBody(code string) string {
	return "Şifrenizi sıfırlamak için aşağıdaki kodu kullanın: " + code
}

// NewSender builds a Sender from mail configuration. An empty host selects
// the log-only sender so development setups work without SMTP credentials.
func NewSender(cfg config.MailConfig, log *logger.Logger) Sender {
	if cfg.Host == "" {
		log.Warn("mail host not configured, codes will only be logged")
		return &LogSender{log: log}
	}
	return &SMTPSender{
		host:     cfg.Host,
		port:     cfg.Port,
		sender:   cfg.Sender,
		password: cfg.Password,
		log:      log,
	}
}

// SMTPSender delivers mail over SMTP with implicit TLS.
type SMTPSender struct {
	host     string
	port     string
	sender   string
	password string
	log      *logger.Logger
}

// SendVerificationCode mails an account verification code.
func (s *SMTPSender) SendVerificationCode(ctx context.Context, to, name, code string) error {
	return s.send(ctx, to, verifySubject, verifyBody(name, code))
}

// SendResetCode mails a password reset code.
func (s *SMTPSender) SendResetCode(ctx context.Context, to, code string) error {
	return s.send(ctx, to, resetSubject, resetBody(code))
}

func (s *SMTPSender) send(ctx context.Context, to, subject, body string) error {
	addr := net.JoinHostPort(s.host, s.port)

	dialer := &tls.Dialer{Config: &tls.Config{ServerName: s.host, MinVersion: tls.VersionTLS12}}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial smtp server: %w", err)
	}

	client, err := smtp.NewClient(conn, s.host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer client.Close()

	auth := smtp.PlainAuth("", s.sender, s.password, s.host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}

	if err := client.Mail(s.sender); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("smtp rcpt to: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write([]byte(buildMessage(s.sender, to, subject, body))); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finish message: %w", err)
	}

	if err := client.Quit(); err != nil {
		return fmt.Errorf("smtp quit: %w", err)
	}

	s.log.Info("mail sent", "to", to, "subject", subject)
	return nil
}

// buildMessage assembles RFC 5322 headers and body. The subject is
// Q-encoded since it can contain Turkish characters.
func buildMessage(from, to, subject, body string) string {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", subject) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return b.String()
}

// LogSender writes codes to the log instead of sending mail.
// Used in development when no SMTP host is configured.
type LogSender struct {
	log *logger.Logger
}

// SendVerificationCode logs an account verification code.
func (s *LogSender) SendVerificationCode(_ context.Context, to, name, code string) error {
	s.log.Info("verification code issued", "to", to, "name", name, "code", code)
	return nil
}

// SendResetCode logs a password reset code.
func (s *LogSender) SendResetCode(_ context.Context, to, code string) error {
	s.log.Info("password reset code issued", "to", to, "code", code)
	return nil
}
