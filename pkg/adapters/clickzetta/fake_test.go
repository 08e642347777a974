package clickzetta

import (
	"context"
	"errors"
	"sync"

	"github.com/leapstack-labs/clickzetta/pkg/session"
)

// fakeSession records statements and answers from a canned table.
type fakeSession struct {
	mu         sync.Mutex
	statements []string
	results    map[string]*session.Table
	errs       map[string]error
	closeErr   error
	closed     int
}

func (s *fakeSession) SQL(_ context.Context, query string) (*session.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statements = append(s.statements, query)
	if err, ok := s.errs[query]; ok {
		return nil, err
	}
	if t, ok := s.results[query]; ok {
		return t, nil
	}
	return &session.Table{}, nil
}

func (s *fakeSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed++
	return s.closeErr
}

func (s *fakeSession) Statements() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.statements...)
}

// fakeOpener hands out fresh fakeSessions built by newSession.
type fakeOpener struct {
	mu         sync.Mutex
	opened     []session.Options
	sessions   []*fakeSession
	openErr    error
	missing    error
	newSession func() *fakeSession
}

func (o *fakeOpener) Open(_ context.Context, opts session.Options) (session.Session, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.opened = append(o.opened, opts)
	if o.openErr != nil {
		return nil, o.openErr
	}
	s := &fakeSession{}
	if o.newSession != nil {
		s = o.newSession()
	}
	o.sessions = append(o.sessions, s)
	return s, nil
}

func (o *fakeOpener) Available() error {
	return o.missing
}

func (o *fakeOpener) last() *fakeSession {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.sessions) == 0 {
		return nil
	}
	return o.sessions[len(o.sessions)-1]
}

func validConfig() Config {
	return Config{
		Service:   "api.clickzetta.com",
		Username:  "test_user",
		Password:  "test_password",
		Instance:  "test_instance",
		Workspace: "test_workspace",
	}
}

func tableOf(columns []string, rows ...[]any) *session.Table {
	return &session.Table{Columns: columns, Rows: rows}
}

var errBoom = errors.New("boom")
