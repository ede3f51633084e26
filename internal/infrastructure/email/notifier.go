// Package email delivers rental lifecycle notifications over SMTP.
package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"rentra/internal/domain/rental"
	"rentra/internal/domain/timesheet"
	"rentra/internal/shared/config"
	"rentra/internal/shared/logger"
)

// Notifier sends rental lifecycle mails to the client's primary active
// contact. When disabled it drops every message silently so the
// lifecycle keeps working without SMTP.
type Notifier struct {
	cfg      *config.EmailConfig
	contacts timesheet.ClientContactRepository
	dialer   *gomail.Dialer
	logger   logger.Interface
}

func NewNotifier(cfg *config.EmailConfig, contacts timesheet.ClientContactRepository, logger logger.Interface) *Notifier {
	return &Notifier{
		cfg:      cfg,
		contacts: contacts,
		dialer:   gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		logger:   logger,
	}
}

func (n *Notifier) RentalApproved(ctx context.Context, r *rental.Rental) error {
	subject := fmt.Sprintf("Rental %s approved", r.RentalNumber())
	body := fmt.Sprintf(
		"Rental %s has been approved.\n\nStart date: %s\nExpected end date: %s\nDaily rate: %s\n",
		r.RentalNumber(),
		r.StartDate().Format("2006-01-02"),
		r.ExpectedEndDate().Format("2006-01-02"),
		r.DailyRate().String(),
	)
	return n.send(ctx, r.ClientID(), subject, body)
}

func (n *Notifier) RentalRejected(ctx context.Context, r *rental.Rental) error {
	subject := fmt.Sprintf("Rental %s rejected", r.RentalNumber())
	reason := ""
	if r.RejectReason() != nil {
		reason = *r.RejectReason()
	}
	body := fmt.Sprintf("Rental %s has been rejected.\n\nReason: %s\n", r.RentalNumber(), reason)
	return n.send(ctx, r.ClientID(), subject, body)
}

func (n *Notifier) RentalReturned(ctx context.Context, r *rental.Rental) error {
	subject := fmt.Sprintf("Rental %s returned", r.RentalNumber())
	body := fmt.Sprintf(
		"Rental %s has been returned and settled.\n\nTotal days: %d\nPenalty: %s\nTotal amount: %s\n",
		r.RentalNumber(),
		*r.TotalDays(),
		r.PenaltyAmount().String(),
		r.TotalAmount().String(),
	)
	return n.send(ctx, r.ClientID(), subject, body)
}

func (n *Notifier) send(ctx context.Context, clientID uint, subject, body string) error {
	if !n.cfg.Enabled {
		return nil
	}

	to, err := n.recipient(ctx, clientID)
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := n.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send notification mail: %w", err)
	}
	n.logger.Debugw("notification mail sent", "to", to, "subject", subject)
	return nil
}

// recipient resolves the client's primary active contact, falling back
// to the configured From address when no contact carries an email.
func (n *Notifier) recipient(ctx context.Context, clientID uint) (string, error) {
	contact, err := n.contacts.GetPrimaryByClientID(ctx, clientID)
	if err != nil {
		return "", fmt.Errorf("failed to resolve notification recipient: %w", err)
	}
	if contact != nil && contact.Email() != "" {
		return contact.Email(), nil
	}
	return n.cfg.From, nil
}
