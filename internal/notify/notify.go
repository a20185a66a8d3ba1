// Package notify sends assessment and contact emails.
package notify

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/teamhealth/internal/scoring"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Email is one outgoing message
type Email struct {
	From    string
	To      []string
	Subject string
	HTML    string
}

// Sender delivers an email and returns the provider's message id
type Sender interface {
	Send(ctx context.Context, email Email) (string, error)
}

// DeliveryError is returned when an email could not be sent. Callers show a generic retry message.
type DeliveryError struct {
	Recipient string
	Err       error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("failed to send email to %s: %v", e.Recipient, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// Config holds addresses used by the notifier
type Config struct {
	From       string
	AdminEmail string
}

// AssessmentRequest asks for a follow-up on a finished assessment
type AssessmentRequest struct {
	Email             string
	Results           []scoring.CategoryResult
	OverallPercentage int
	AssessmentKind    string
}

// ContactRequest is a coaching inquiry
type ContactRequest struct {
	Name    string
	Email   string
	Message string
}

// Notifier composes and sends the product emails
type Notifier struct {
	sender Sender
	cfg    Config
	logger *zap.Logger
}

// New creates a notifier
func New(sender Sender, cfg Config, logger *zap.Logger) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifier{sender: sender, cfg: cfg, logger: logger}
}

// SendAssessment mails the admin and the customer concurrently. Either failure fails the request.
func (n *Notifier) SendAssessment(ctx context.Context, req AssessmentRequest) error {
	data := struct {
		Email   string
		Kind    string
		Overall int
		Results []scoring.CategoryResult
	}{req.Email, req.AssessmentKind, req.OverallPercentage, req.Results}

	adminHTML, err := render("assessment_admin.html", data)
	if err != nil {
		return err
	}
	customerHTML, err := render("assessment_customer.html", data)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return n.send(gctx, Email{
			From:    n.cfg.From,
			To:      []string{n.cfg.AdminEmail},
			Subject: fmt.Sprintf("New Team Assessment Request from %s", req.Email),
			HTML:    adminHTML,
		})
	})
	g.Go(func() error {
		return n.send(gctx, Email{
			From:    n.cfg.From,
			To:      []string{req.Email},
			Subject: "Your Team Health Assessment Request",
			HTML:    customerHTML,
		})
	})
	return g.Wait()
}

// SendContact forwards a coaching inquiry to the admin
func (n *Notifier) SendContact(ctx context.Context, req ContactRequest) error {
	html, err := render("contact.html", req)
	if err != nil {
		return err
	}
	return n.send(ctx, Email{
		From:    n.cfg.From,
		To:      []string{n.cfg.AdminEmail},
		Subject: fmt.Sprintf("Team Coaching Inquiry from %s", req.Name),
		HTML:    html,
	})
}

func (n *Notifier) send(ctx context.Context, email Email) error {
	id, err := n.sender.Send(ctx, email)
	if err != nil {
		n.logger.Error("email delivery failed",
			zap.Strings("to", email.To),
			zap.String("subject", email.Subject),
			zap.Error(err))
		return &DeliveryError{Recipient: email.To[0], Err: err}
	}
	n.logger.Info("email sent", zap.Strings("to", email.To), zap.String("id", id))
	return nil
}

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.String(), nil
}
