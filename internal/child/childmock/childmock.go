// Package childmock holds a mock for child.ProcessHandle in the shape
// internal/mockgen would generate for it (one stub field and one call log
// per method), hand-authored here since the interface is small and stable
// enough not to warrant a go:generate step.
package childmock

import (
	"sync"
	"time"

	"github.com/duskware/blindfuzz/internal/child"
)

// ProcessHandleMock is a concurrency-safe test double for
// child.ProcessHandle.
type ProcessHandleMock struct {
	mu sync.Mutex

	KillStub func()
	KillCalls []ProcessHandle_KillCall

	WaitStub  func() child.Result
	WaitCalls []ProcessHandle_WaitCall

	WaitWithTimeoutStub  func(time.Duration) child.Result
	WaitWithTimeoutCalls []ProcessHandle_WaitWithTimeoutCall
}

type ProcessHandle_KillCall struct{}

type ProcessHandle_WaitCall struct {
	Ret0 child.Result
}

type ProcessHandle_WaitWithTimeoutCall struct {
	Arg0 time.Duration
	Ret0 child.Result
}

func (m *ProcessHandleMock) Kill() {
	m.mu.Lock()
	m.KillCalls = append(m.KillCalls, ProcessHandle_KillCall{})
	stub := m.KillStub
	m.mu.Unlock()
	if stub != nil {
		stub()
	}
}

func (m *ProcessHandleMock) Wait() child.Result {
	m.mu.Lock()
	m.WaitCalls = append(m.WaitCalls, ProcessHandle_WaitCall{})
	stub := m.WaitStub
	m.mu.Unlock()
	if stub != nil {
		return stub()
	}
	return child.Result{}
}

func (m *ProcessHandleMock) WaitWithTimeout(a0 time.Duration) child.Result {
	m.mu.Lock()
	m.WaitWithTimeoutCalls = append(m.WaitWithTimeoutCalls, ProcessHandle_WaitWithTimeoutCall{Arg0: a0})
	stub := m.WaitWithTimeoutStub
	m.mu.Unlock()
	if stub != nil {
		return stub(a0)
	}
	return child.Result{}
}

// Reset clears every stub and call log.
func (m *ProcessHandleMock) Reset() {
	m.mu.Lock()
	m.KillStub, m.KillCalls = nil, nil
	m.WaitStub, m.WaitCalls = nil, nil
	m.WaitWithTimeoutStub, m.WaitWithTimeoutCalls = nil, nil
	m.mu.Unlock()
}
