package mailer

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrMissingRecipient = errors.New("email is required")
	ErrInvalidRecipient = errors.New("invalid email format")
	ErrMissingSubject   = errors.New("subject is required")
	ErrMissingBody      = errors.New("message is required")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// SentEmail is the persisted log of one delivered message.
type SentEmail struct {
	ID        uuid.UUID
	To        string
	Subject   string
	Body      string
	CreatedAt time.Time
}

// Archive persists sent-email records.
type Archive interface {
	Save(ctx context.Context, email *SentEmail) error
}

// Deliverer is the raw transport. Nil-able: without a configured API key the
// service runs in log-only mode.
type Deliverer interface {
	Deliver(ctx context.Context, to, subject, body string) error
}

// Service validates, delivers and archives outbound email.
type Service struct {
	deliverer Deliverer
	archive   Archive
	logger    *slog.Logger
}

func NewService(deliverer Deliverer, archive Archive, logger *slog.Logger) *Service {
	return &Service{
		deliverer: deliverer,
		archive:   archive,
		logger:    logger,
	}
}

// Send validates the message, delivers it when a transport is configured and
// records it in the archive. Archiving is best-effort record keeping; a
// failure there is logged but does not fail the send.
func (s *Service) Send(ctx context.Context, to, subject, body string) error {
	if strings.TrimSpace(to) == "" {
		return ErrMissingRecipient
	}
	if !emailPattern.MatchString(to) {
		return ErrInvalidRecipient
	}
	if strings.TrimSpace(subject) == "" {
		return ErrMissingSubject
	}
	if strings.TrimSpace(body) == "" {
		return ErrMissingBody
	}

	if s.deliverer != nil {
		if err := s.deliverer.Deliver(ctx, to, subject, body); err != nil {
			return err
		}
	} else {
		s.logger.InfoContext(ctx, "No mail transport configured, logging only", "to", to, "subject", subject)
	}

	if s.archive != nil {
		record := &SentEmail{
			ID:        uuid.New(),
			To:        to,
			Subject:   subject,
			Body:      body,
			CreatedAt: time.Now(),
		}
		if err := s.archive.Save(ctx, record); err != nil {
			s.logger.ErrorContext(ctx, "Error archiving sent email", "to", to, "error", err)
		}
	}

	return nil
}
