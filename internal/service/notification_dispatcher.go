package service

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

type ChannelType string

const (
	ChannelEmail ChannelType = "email"
	ChannelSMS   ChannelType = "sms"
)

type EmailSender interface {
	SendEmail(to, subject, body string) error
}

type SMSSender interface {
	SendSMS(to, message string) error
}

type outboundMessage struct {
	Channel   ChannelType
	Recipient string
	Body      string
	CreatedAt time.Time
}

// Dispatcher forwards account notifications to external channels. It
// implements the account observer contract with a bounded, non-blocking
// enqueue: when the queue is full the message is dropped and counted, so a
// slow channel can never stall a deposit or withdrawal.
type Dispatcher struct {
	name         string
	recipient    string
	emailSender  EmailSender
	smsSender    SMSSender
	messageQueue chan outboundMessage
	workers      int
	dropped      atomic.Int64
	shutdownChan chan struct{}
	wg           sync.WaitGroup
	logger       *slog.Logger
}

func NewDispatcher(
	name string,
	recipient string,
	emailSender EmailSender,
	smsSender SMSSender,
	workers int,
	queueSize int,
	logger *slog.Logger,
) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}

	dispatcher := &Dispatcher{
		name:         name,
		recipient:    recipient,
		emailSender:  emailSender,
		smsSender:    smsSender,
		messageQueue: make(chan outboundMessage, queueSize),
		workers:      workers,
		shutdownChan: make(chan struct{}),
		logger:       logger,
	}

	dispatcher.startWorkers()

	return dispatcher
}

func (d *Dispatcher) Name() string {
	return d.name
}

// Update enqueues the account notification for every configured channel.
// It never blocks.
func (d *Dispatcher) Update(message string) {
	now := time.Now()
	if d.emailSender != nil {
		d.enqueue(outboundMessage{Channel: ChannelEmail, Recipient: d.recipient, Body: message, CreatedAt: now})
	}
	if d.smsSender != nil {
		d.enqueue(outboundMessage{Channel: ChannelSMS, Recipient: d.recipient, Body: message, CreatedAt: now})
	}
}

func (d *Dispatcher) enqueue(msg outboundMessage) {
	select {
	case d.messageQueue <- msg:
	default:
		d.dropped.Add(1)
		d.logger.Warn("Notification queue full, message dropped",
			slog.String("dispatcher", d.name),
			slog.String("channel", string(msg.Channel)))
	}
}

// Dropped reports how many messages were discarded because the queue was full.
func (d *Dispatcher) Dropped() int64 {
	return d.dropped.Load()
}

func (d *Dispatcher) startWorkers() {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(i)
	}
}

func (d *Dispatcher) worker(id int) {
	defer d.wg.Done()

	for {
		select {
		case msg := <-d.messageQueue:
			d.send(msg, id)
		case <-d.shutdownChan:
			return
		}
	}
}

func (d *Dispatcher) send(msg outboundMessage, workerID int) {
	startTime := time.Now()
	var err error

	switch msg.Channel {
	case ChannelEmail:
		err = d.emailSender.SendEmail(msg.Recipient, "Account notification", msg.Body)
	case ChannelSMS:
		err = d.smsSender.SendSMS(msg.Recipient, msg.Body)
	}

	duration := time.Since(startTime)

	if err != nil {
		d.logger.Error("Failed to send notification",
			slog.String("channel", string(msg.Channel)),
			slog.String("recipient", msg.Recipient),
			slog.String("error", err.Error()),
			slog.Int("worker_id", workerID),
			slog.Duration("duration", duration))
	} else {
		d.logger.Info("Notification sent",
			slog.String("channel", string(msg.Channel)),
			slog.String("recipient", msg.Recipient),
			slog.Int("worker_id", workerID),
			slog.Duration("duration", duration))
	}
}

func (d *Dispatcher) Shutdown(ctx context.Context) error {
	close(d.shutdownChan)

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.logger.Info("Notification dispatcher shutdown complete",
			slog.String("dispatcher", d.name))
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type MockEmailSender struct {
	mu         sync.Mutex
	SentEmails []struct {
		To      string
		Subject string
		Body    string
	}
}

func (m *MockEmailSender) SendEmail(to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SentEmails = append(m.SentEmails, struct {
		To      string
		Subject string
		Body    string
	}{to, subject, body})
	return nil
}

func (m *MockEmailSender) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.SentEmails)
}

type MockSMSSender struct {
	mu      sync.Mutex
	SentSMS []struct {
		To      string
		Message string
	}
}

func (m *MockSMSSender) SendSMS(to, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SentSMS = append(m.SentSMS, struct {
		To      string
		Message string
	}{to, message})
	return nil
}

func (m *MockSMSSender) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.SentSMS)
}
