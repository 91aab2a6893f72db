package main

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-qtf2html"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Mock converter and pool
// ---------------------------------------------------------------------------

// mockConverter records inputs and returns canned output.
type mockConverter struct {
	mu     sync.Mutex
	inputs []qtf2html.Input
	html   string
	pdf    []byte
	err    error
}

func (m *mockConverter) Convert(_ context.Context, input qtf2html.Input) (*qtf2html.ConvertResult, error) {
	m.mu.Lock()
	m.inputs = append(m.inputs, input)
	m.mu.Unlock()

	if input.Progress != nil {
		input.Progress(100)
	}
	if m.err != nil {
		return nil, m.err
	}
	res := &qtf2html.ConvertResult{HTML: []byte(m.html)}
	if input.PDF {
		res.PDF = m.pdf
	}
	return res, nil
}

func (m *mockConverter) calls() []qtf2html.Input {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]qtf2html.Input(nil), m.inputs...)
}

// mockPool hands out a single shared converter.
type mockPool struct {
	conv    CLIConverter
	size    int
	initErr error
	closed  bool
}

func (p *mockPool) Acquire() CLIConverter {
	if p.conv == nil {
		return nil
	}
	return p.conv
}

func (p *mockPool) Release(CLIConverter) {}
func (p *mockPool) Size() int            { return p.size }
func (p *mockPool) InitError() error     { return p.initErr }
func (p *mockPool) Close() error         { p.closed = true; return nil }

var errMockInit = errors.New("mock init failure")

// testEnv returns an environment writing to buffers with a fixed clock.
func testEnv(pool Pool) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	env := &Environment{
		Now:    func() time.Time { return now },
		Stdout: &stdout,
		Stderr: &stderr,
		NewPool: func(int, ...qtf2html.Option) Pool {
			return pool
		},
	}
	return env, &stdout, &stderr
}

// realEnv returns an environment backed by a real converter pool.
func realEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := &Environment{
		Now:     time.Now,
		Stdout:  &stdout,
		Stderr:  &stderr,
		NewPool: newPoolAdapter,
	}
	return env, &stdout, &stderr
}

func nopLogger(t *testing.T) *zap.Logger {
	t.Helper()
	return zap.NewNop()
}
