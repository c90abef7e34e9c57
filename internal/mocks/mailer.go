package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/webapp/internal/platform/mail"
)

// MockMailer implements mail.Sender for testing
type MockMailer struct {
	SendFn func(ctx context.Context, msg mail.Message) error

	// Sent holds delivered messages in order
	Sent []mail.Message
	Err  error

	mu sync.Mutex
}

var _ mail.Sender = (*MockMailer)(nil)

// Send implements the mail.Sender interface
func (m *MockMailer) Send(ctx context.Context, msg mail.Message) error {
	if m.SendFn != nil {
		return m.SendFn(ctx, msg)
	}
	if m.Err != nil {
		return m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, msg)
	return nil
}
