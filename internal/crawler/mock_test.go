package crawler

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// MockLogger captures diagnostics for assertions
type MockLogger struct {
	mu       sync.Mutex
	messages []string
}

func NewMockLogger() *MockLogger {
	return &MockLogger{
		messages: make([]string, 0),
	}
}

func (m *MockLogger) LogDebug(format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, fmt.Sprintf(format, args...))
}

// Count returns how many messages start with prefix
func (m *MockLogger) Count(prefix string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, msg := range m.messages {
		if strings.HasPrefix(msg, prefix) {
			n++
		}
	}
	return n
}

// Last returns the most recent message
func (m *MockLogger) Last() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.messages) == 0 {
		return ""
	}
	return m.messages[len(m.messages)-1]
}

// MockSleeper records requested pauses without waiting
type MockSleeper struct {
	durations []time.Duration
}

func (m *MockSleeper) Sleep(ctx context.Context, d time.Duration) error {
	m.durations = append(m.durations, d)
	return ctx.Err()
}

// testPolicy is the default policy with a short request timeout
func testPolicy() RetryPolicy {
	policy := DefaultRetryPolicy()
	policy.Timeout = 2 * time.Second
	return policy
}
