package mailservice

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"golang.org/x/exp/rand"

	"github.com/sushihentaime/bloglist/internal/common"
)

func NewMailService(mb common.MessageConsumer, host, username, password, sender, recipient string, port int, logger MailLogger) *MailService {
	ctx, cancel := context.WithCancel(context.Background())
	return &MailService{
		mb:        mb,
		m:         NewMailer(host, port, username, password, sender, NewTemplate()),
		logger:    logger,
		recipient: recipient,
		retry:     retryPolicy{maxRetries: 5, baseDelay: 500 * time.Millisecond},
		ctx:       ctx,
		cancel:    cancel,
	}
}

// NotifyNewBlogs consumes blog.created events and mails the moderator about each one.
// It returns once the consumer is registered; deliveries are handled in the background until Close.
func (s *MailService) NotifyNewBlogs() error {
	msgs, err := s.mb.Consume(common.BlogCreatedKey, common.BlogExchange, common.BlogCreatedQueue)
	if err != nil {
		s.logger.Error("could not consume message", slog.String("error", err.Error()))
		return err
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				s.handleBlogCreated(msg)

			case <-s.ctx.Done():
				s.logger.Info("stopping NotifyNewBlogs due to context cancellation")
				return
			}
		}
	}()

	return nil
}

func (s *MailService) handleBlogCreated(msg amqp.Delivery) {
	var event blogCreated
	err := json.Unmarshal(msg.Body, &event)
	if err != nil {
		s.logger.Error("could not unmarshal message", slog.String("error", err.Error()))
		msg.Ack(false)
		return
	}

	payload := newBlogPayload{
		ID:       event.ID,
		Title:    event.Title,
		Author:   event.Author,
		Username: event.Username,
	}
	if event.URL != nil {
		payload.URL = *event.URL
	}

	// using exponential backoff with jitter
	var attempt int
	for attempt = 0; attempt < s.retry.maxRetries; attempt++ {
		err = s.m.send(s.recipient, payload, newBlogTemplate)
		if err == nil {
			s.logger.Info("new blog email sent", slog.Int("blog_id", event.ID))
			msg.Ack(false)
			return
		}

		delay := time.Duration(rand.Int63n(int64(s.retry.baseDelay) << uint(attempt)))
		s.logger.Info("delaying new blog email", slog.Int("blog_id", event.ID), slog.Int("attempt", attempt), slog.Duration("delay", delay))

		select {
		case <-time.After(delay):
		case <-s.ctx.Done():
			return
		}
	}

	s.logger.Error("could not send new blog email", slog.Int("blog_id", event.ID), slog.String("error", err.Error()))
	msg.Ack(false)
}

// Close stops the consumer goroutine and waits for it to return.
func (s *MailService) Close() {
	s.cancel()
	s.wg.Wait()
}
