package services

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"mime"
	"mime/quotedprintable"
	"net"
	"net/smtp"
	"strings"
	"time"
)

// Mail is one outgoing HTML message.
type Mail struct {
	To       string
	Subject  string
	HTMLBody string
}

// MailSession is an open connection to the mail relay. Send may be called
// several times before Close.
type MailSession interface {
	Send(mail Mail) error
	Close() error
}

// MailDialer opens a MailSession.
type MailDialer interface {
	Dial(ctx context.Context) (MailSession, error)
}

type SMTPDialer struct {
	host    string
	port    string
	user    string
	pass    string
	from    string
	timeout time.Duration
	devMode bool
}

func NewSMTPDialer(host, port, user, pass, from string, timeout time.Duration) *SMTPDialer {
	devMode := host == "" || user == ""
	if devMode {
		log.Println("⚠ Email service running in DEV MODE (logging to console)")
	}
	if from == "" {
		from = user
	}
	return &SMTPDialer{
		host:    host,
		port:    port,
		user:    user,
		pass:    pass,
		from:    from,
		timeout: timeout,
		devMode: devMode,
	}
}

func (d *SMTPDialer) Dial(ctx context.Context) (MailSession, error) {
	if d.devMode {
		return consoleSession{}, nil
	}

	addr := net.JoinHostPort(d.host, d.port)
	dialer := &net.Dialer{Timeout: d.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SMTP server %s: %w", addr, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}

	tlsConfig := &tls.Config{ServerName: d.host}

	// Port 465 speaks TLS from the first byte; the rest upgrade with STARTTLS
	if d.port == "465" {
		conn = tls.Client(conn, tlsConfig)
	}

	client, err := smtp.NewClient(conn, d.host)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to start SMTP session: %w", err)
	}

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(tlsConfig); err != nil {
			client.Close()
			return nil, fmt.Errorf("SMTP STARTTLS failed: %w", err)
		}
	}

	if ok, _ := client.Extension("AUTH"); ok {
		if err := client.Auth(smtp.PlainAuth("", d.user, d.pass, d.host)); err != nil {
			client.Close()
			return nil, fmt.Errorf("SMTP authentication failed: %w", err)
		}
	}

	return &smtpSession{client: client, from: d.from}, nil
}

type smtpSession struct {
	client *smtp.Client
	from   string
}

func (s *smtpSession) Send(mail Mail) error {
	msg, err := buildMessage(s.from, mail)
	if err != nil {
		return err
	}

	if err := s.client.Mail(s.from); err != nil {
		s.client.Reset()
		return fmt.Errorf("failed to send email to %s: %w", mail.To, err)
	}
	if err := s.client.Rcpt(mail.To); err != nil {
		s.client.Reset()
		return fmt.Errorf("failed to send email to %s: %w", mail.To, err)
	}

	w, err := s.client.Data()
	if err != nil {
		s.client.Reset()
		return fmt.Errorf("failed to send email to %s: %w", mail.To, err)
	}
	if _, err := w.Write(msg); err != nil {
		w.Close()
		return fmt.Errorf("failed to send email to %s: %w", mail.To, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", mail.To, err)
	}

	log.Printf("📧 Email sent to %s: %s", mail.To, mail.Subject)
	return nil
}

func (s *smtpSession) Close() error {
	if err := s.client.Quit(); err != nil {
		return s.client.Close()
	}
	return nil
}

type consoleSession struct{}

func (consoleSession) Send(mail Mail) error {
	log.Printf("📧 [DEV EMAIL] To: %s | Subject: %s", mail.To, mail.Subject)
	log.Printf("📧 Body:\n%s", mail.HTMLBody)
	return nil
}

func (consoleSession) Close() error { return nil }

var headerSanitizer = strings.NewReplacer("\r", "", "\n", "")

func buildMessage(from string, mail Mail) ([]byte, error) {
	headers := []string{
		fmt.Sprintf("From: %s", headerSanitizer.Replace(from)),
		fmt.Sprintf("To: %s", headerSanitizer.Replace(mail.To)),
		fmt.Sprintf("Subject: %s", mime.QEncoding.Encode("utf-8", headerSanitizer.Replace(mail.Subject))),
		fmt.Sprintf("Date: %s", time.Now().Format(time.RFC1123Z)),
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=UTF-8",
		"Content-Transfer-Encoding: quoted-printable",
	}

	var buf bytes.Buffer
	buf.WriteString(strings.Join(headers, "\r\n"))
	buf.WriteString("\r\n\r\n")

	qp := quotedprintable.NewWriter(&buf)
	if _, err := qp.Write([]byte(mail.HTMLBody)); err != nil {
		return nil, fmt.Errorf("failed to encode email body: %w", err)
	}
	if err := qp.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode email body: %w", err)
	}

	return buf.Bytes(), nil
}
