package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/vgc-platform/admin-api/internal/config"
)

type Service interface {
	SendRefundDecision(ctx context.Context, to string, refundID string, approved bool, points int) error
	SendSubmissionReceived(ctx context.Context, to string, refundID string) error
}

type smtpService struct {
	dialer *gomail.Dialer
	from   string
}

func NewService(cfg config.SMTPConfig) Service {
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *smtpService) SendRefundDecision(ctx context.Context, to string, refundID string, approved bool, points int) error {
	subject := fmt.Sprintf("Your refund request %s was rejected", refundID)
	body := fmt.Sprintf("Refund request %s has been reviewed and rejected.", refundID)
	if approved {
		subject = fmt.Sprintf("Your refund request %s was approved", refundID)
		body = fmt.Sprintf("Refund request %s has been approved. %d points were restored to your account.", refundID, points)
	}
	return s.send(to, subject, body)
}

func (s *smtpService) SendSubmissionReceived(ctx context.Context, to string, refundID string) error {
	subject := fmt.Sprintf("Refund request %s received", refundID)
	body := fmt.Sprintf("We received your refund request %s. You will be notified once it is reviewed.", refundID)
	return s.send(to, subject, body)
}

func (s *smtpService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// NoopService discards all mail; used when SMTP is not configured.
type NoopService struct{}

func (NoopService) SendRefundDecision(context.Context, string, string, bool, int) error { return nil }
func (NoopService) SendSubmissionReceived(context.Context, string, string) error        { return nil }
