package services

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"denizsel-backend/internal/models"
)

type ContactSettings struct {
	OperatorEmail  string
	EmergencyPhone string
	CompanyName    string
	CompanyAddress string
	Timeout        time.Duration
}

type ContactService struct {
	dialer   MailDialer
	validate *validator.Validate
	settings ContactSettings
}

func NewContactService(dialer MailDialer, settings ContactSettings) *ContactService {
	return &ContactService{
		dialer:   dialer,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		settings: settings,
	}
}

// Submit validates the form, notifies the operator and acknowledges the
// submitter over a single mail session. It returns the localized success text.
//
// The operator notification decides the outcome: if it fails nothing else is
// sent and the call fails; a failed acknowledgment after a delivered
// notification is only logged.
func (s *ContactService) Submit(ctx context.Context, req *models.ContactRequest) (string, error) {
	lang := models.ParseLanguage(req.Language)
	text := TextFor(lang)

	trimContactRequest(req)
	if err := s.validateRequest(req, text); err != nil {
		return "", err
	}

	if s.settings.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.settings.Timeout)
		defer cancel()
	}

	operatorMail, err := renderOperatorMail(s.settings.OperatorEmail, req)
	if err != nil {
		return "", &UpstreamError{Service: "mail relay", Message: text.ContactFailed, Err: err}
	}
	ackMail, err := renderAcknowledgmentMail(req, lang, s.settings.CompanyName, s.settings.EmergencyPhone, s.settings.CompanyAddress)
	if err != nil {
		return "", &UpstreamError{Service: "mail relay", Message: text.ContactFailed, Err: err}
	}

	session, err := s.dialer.Dial(ctx)
	if err != nil {
		return "", &UpstreamError{Service: "mail relay", Message: text.ContactFailed, Err: err}
	}
	defer func() {
		if err := session.Close(); err != nil {
			log.Printf("⚠ Failed to close mail session: %v", err)
		}
	}()

	if err := session.Send(operatorMail); err != nil {
		return "", &UpstreamError{Service: "mail relay", Message: text.ContactFailed, Err: err}
	}

	if err := session.Send(ackMail); err != nil {
		log.Printf("⚠ Contact acknowledgment to %s failed after operator was notified: %v", req.Email, err)
	}

	return text.ContactSent, nil
}

// validateRequest reports every failure with the same form-level text so no
// per-field detail reaches the caller.
func (s *ContactService) validateRequest(req *models.ContactRequest, text LocalizedText) error {
	if err := s.validate.Struct(req); err != nil {
		return &ValidationError{Message: text.ContactInvalid}
	}
	return nil
}

func trimContactRequest(req *models.ContactRequest) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Subject = strings.TrimSpace(req.Subject)
	req.Message = strings.TrimSpace(req.Message)
}
