// Package contact handles contact form submissions: validation, the
// deliberate send delay and hand-off to a relay (inbox, mail, or nowhere).
package contact

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	// SubmitDelay is how long a submission shows as sending.
	SubmitDelay = 2 * time.Second
	// ResetDelay is how long the success message stays before the form clears.
	ResetDelay = 3 * time.Second
)

var (
	ErrIncomplete = errors.New("all fields are required")
	// ErrLineBreak rejects a line break in a field that ends up in a mail header.
	ErrLineBreak = errors.New("field must be a single line")
)

// Submission is the contact form as posted.
type Submission struct {
	Name    string `form:"name" json:"name" binding:"required"`
	Email   string `form:"email" json:"email" binding:"required,email"`
	Subject string `form:"subject" json:"subject" binding:"required"`
	Message string `form:"message" json:"message" binding:"required"`
}

// Validate reports ErrIncomplete naming the first empty field, or
// ErrLineBreak when name, email or subject spans more than one line.
func (s Submission) Validate() error {
	for _, f := range []struct {
		name, value string
		singleLine  bool
	}{
		{"name", s.Name, true},
		{"email", s.Email, true},
		{"subject", s.Subject, true},
		{"message", s.Message, false},
	} {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%s: %w", f.name, ErrIncomplete)
		}
		if f.singleLine && strings.ContainsAny(f.value, "\r\n") {
			return fmt.Errorf("%s: %w", f.name, ErrLineBreak)
		}
	}
	return nil
}

// Message is a delivered submission.
type Message struct {
	ID         string
	Submission Submission
	ReceivedAt time.Time
}

// Service validates submissions and hands them to its relays.
type Service struct {
	relays []Relay
	delay  time.Duration
	logger *zap.Logger
	tracer trace.Tracer
	now    func() time.Time
	newID  func() string
}

type Option func(*Service)

func WithDelay(d time.Duration) Option {
	return func(s *Service) { s.delay = d }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.logger = l }
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) { s.tracer = t }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService delivers to every relay given. With none, messages are discarded.
func NewService(relays []Relay, opts ...Option) *Service {
	s := &Service{
		relays: relays,
		delay:  SubmitDelay,
		logger: zap.NewNop(),
		tracer: otel.Tracer("github.com/tanimomor/portfolio/internal/contact"),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Delay is the configured send delay.
func (s *Service) Delay() time.Duration { return s.delay }

// Submit validates, waits out the send delay, then delivers. A cancelled
// context aborts the wait and nothing is delivered.
func (s *Service) Submit(ctx context.Context, sub Submission) (Message, error) {
	if err := sub.Validate(); err != nil {
		return Message{}, err
	}
	if s.delay > 0 {
		t := time.NewTimer(s.delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return Message{}, ctx.Err()
		case <-t.C:
		}
	}
	return s.Deliver(ctx, sub)
}

// Deliver validates and relays immediately. Every relay is tried; their
// errors are joined.
func (s *Service) Deliver(ctx context.Context, sub Submission) (Message, error) {
	if err := sub.Validate(); err != nil {
		return Message{}, err
	}
	msg := Message{ID: s.newID(), Submission: sub, ReceivedAt: s.now().UTC()}

	ctx, span := s.tracer.Start(ctx, "contact.deliver", trace.WithAttributes(
		attribute.String("contact.id", msg.ID),
		attribute.Int("contact.relays", len(s.relays)),
	))
	defer span.End()

	var errs []error
	for _, r := range s.relays {
		if err := r.Deliver(ctx, msg); err != nil {
			s.logger.Error("contact relay failed",
				zap.String("relay", r.Name()),
				zap.String("id", msg.ID),
				zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", r.Name(), err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "relay failed")
		return msg, err
	}

	s.logger.Info("contact message delivered",
		zap.String("id", msg.ID),
		zap.String("subject", sub.Subject))
	return msg, nil
}
