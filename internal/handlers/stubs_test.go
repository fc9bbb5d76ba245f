package handlers

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"time"

	"denizsel-backend/internal/services"
)

type stubCompleter struct {
	calls []services.CompletionRequest
	reply string
	err   error
}

func (s *stubCompleter) Complete(ctx context.Context, req services.CompletionRequest) (string, error) {
	s.calls = append(s.calls, req)
	return s.reply, s.err
}

type stubMailDialer struct {
	failSend map[int]bool
	sent     []services.Mail
}

func (d *stubMailDialer) Dial(ctx context.Context) (services.MailSession, error) {
	return &stubMailSession{dialer: d}, nil
}

type stubMailSession struct {
	dialer *stubMailDialer
}

func (s *stubMailSession) Send(mail services.Mail) error {
	idx := len(s.dialer.sent)
	s.dialer.sent = append(s.dialer.sent, mail)
	if s.dialer.failSend[idx] {
		return errors.New("454 relay access denied")
	}
	return nil
}

func (s *stubMailSession) Close() error { return nil }

const testOperatorEmail = "ops@denizsel.test"

func newTestContactHandler(d *stubMailDialer) *ContactHandler {
	svc := services.NewContactService(d, services.ContactSettings{
		OperatorEmail:  testOperatorEmail,
		EmergencyPhone: "+90 532 111 22 33",
		CompanyName:    "Denizsel Teknoloji",
		CompanyAddress: "Tuzla/İstanbul",
		Timeout:        5 * time.Second,
	})
	return NewContactHandler(svc)
}

func newTestChatHandler(c *stubCompleter) *ChatHandler {
	return NewChatHandler(services.NewChatService(c, 300, 0.7, 5*time.Second))
}

func postJSON(h http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}
