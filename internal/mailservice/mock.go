package mailservice

import (
	"bytes"
	"errors"
	"sync"

	"github.com/go-mail/mail/v2"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/mock"

	"github.com/sushihentaime/bloglist/internal/common"
)

type MockTemplate struct {
	mock.Mock
}

func (m *MockTemplate) ParseTemplate(name string, data any) (*bytes.Buffer, *bytes.Buffer, *bytes.Buffer, error) {
	args := m.Called(name, data)
	if args.Get(0) == nil {
		return nil, nil, nil, args.Error(3)
	}
	return args.Get(0).(*bytes.Buffer), args.Get(1).(*bytes.Buffer), args.Get(2).(*bytes.Buffer), args.Error(3)
}

type MockDialer struct {
	mock.Mock
}

func (d *MockDialer) DialAndSend(m ...*mail.Message) error {
	args := d.Called(m)
	return args.Error(0)
}

// MockMailer records every send. The first failures sends return an error.
type MockMailer struct {
	mu         sync.Mutex
	failures   int
	calls      int
	recipients []string
	payloads   []any
	sent       chan struct{}
}

func NewMockMailer(failures int) *MockMailer {
	return &MockMailer{failures: failures, sent: make(chan struct{}, 16)}
}

func (m *MockMailer) send(recipient string, data any, templateFile string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	if m.calls <= m.failures {
		return errors.New("smtp unavailable")
	}

	m.recipients = append(m.recipients, recipient)
	m.payloads = append(m.payloads, data)
	m.sent <- struct{}{}
	return nil
}

func (m *MockMailer) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *MockMailer) Recipients() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.recipients...)
}

func (m *MockMailer) Payloads() []any {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]any(nil), m.payloads...)
}

type MockLogger struct {
	mu       sync.Mutex
	messages []string
}

func (l *MockLogger) Error(msg string, args ...any) {
	l.record(msg)
}

func (l *MockLogger) Info(msg string, args ...any) {
	l.record(msg)
}

func (l *MockLogger) record(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, msg)
}

func (l *MockLogger) Messages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.messages...)
}

// MockMessageConsumer hands out a channel the test feeds deliveries into.
type MockMessageConsumer struct {
	mock.Mock
	Deliveries chan amqp.Delivery
}

func NewMockMessageConsumer() *MockMessageConsumer {
	return &MockMessageConsumer{Deliveries: make(chan amqp.Delivery, 4)}
}

func (m *MockMessageConsumer) Consume(key common.BindingKey, exchange common.Exchange, queue common.Queue) (<-chan amqp.Delivery, error) {
	args := m.Called(key, exchange, queue)
	if err := args.Error(0); err != nil {
		return nil, err
	}
	return m.Deliveries, nil
}

// mockAcknowledger counts acks so tests can tell a delivery was settled.
type mockAcknowledger struct {
	mu   sync.Mutex
	acks int
}

func (a *mockAcknowledger) Ack(tag uint64, multiple bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.acks++
	return nil
}

func (a *mockAcknowledger) Nack(tag uint64, multiple, requeue bool) error {
	return nil
}

func (a *mockAcknowledger) Reject(tag uint64, requeue bool) error {
	return nil
}

func (a *mockAcknowledger) Acks() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.acks
}
