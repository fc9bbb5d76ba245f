package services

import (
	"context"
	"errors"
	"sync"
)

type stubCompleter struct {
	mu    sync.Mutex
	calls []CompletionRequest
	reply string
	err   error
}

func (s *stubCompleter) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, req)
	return s.reply, s.err
}

type stubMailDialer struct {
	dialErr error
	// sendErrs is indexed by send order across all sessions
	sendErrs map[int]error
	dials    int
	sent     []Mail
	closed   int
}

func (d *stubMailDialer) Dial(ctx context.Context) (MailSession, error) {
	d.dials++
	if d.dialErr != nil {
		return nil, d.dialErr
	}
	return &stubMailSession{dialer: d}, nil
}

type stubMailSession struct {
	dialer *stubMailDialer
}

func (s *stubMailSession) Send(mail Mail) error {
	idx := len(s.dialer.sent)
	s.dialer.sent = append(s.dialer.sent, mail)
	if err, ok := s.dialer.sendErrs[idx]; ok {
		return err
	}
	return nil
}

func (s *stubMailSession) Close() error {
	s.dialer.closed++
	return nil
}

var errUpstream = errors.New("connection reset by peer")
