package services

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"denizsel-backend/internal/models"
)

const (
	operatorSubjectPrefix = "[Web İletişim] "
	phonePlaceholder      = "-"
)

var operatorMailTmpl = template.Must(template.New("operator").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body style="font-family: 'Segoe UI', Arial, sans-serif; margin: 0; padding: 0; background-color: #f4f7fa;">
  <div style="max-width: 600px; margin: 32px auto; background: white; border-radius: 10px; overflow: hidden; box-shadow: 0 4px 20px rgba(0,0,0,0.06);">
    <div style="background: #0b3d6b; padding: 24px 32px;">
      <h1 style="color: white; margin: 0; font-size: 20px;">Yeni İletişim Formu Mesajı</h1>
    </div>
    <div style="padding: 24px 32px;">
      <table style="width: 100%; border-collapse: collapse; font-size: 14px; color: #1e293b;">
        <tr><td style="padding: 8px 0; width: 120px; color: #64748b;"><strong>Ad Soyad</strong></td><td style="padding: 8px 0;">{{.Name}}</td></tr>
        <tr><td style="padding: 8px 0; color: #64748b;"><strong>E-posta</strong></td><td style="padding: 8px 0;"><a href="mailto:{{.Email}}" style="color: #0b6bcb;">{{.Email}}</a></td></tr>
        <tr><td style="padding: 8px 0; color: #64748b;"><strong>Telefon</strong></td><td style="padding: 8px 0;">{{.Phone}}</td></tr>
        <tr><td style="padding: 8px 0; color: #64748b;"><strong>Konu</strong></td><td style="padding: 8px 0;">{{.Subject}}</td></tr>
      </table>
      <h2 style="font-size: 16px; color: #0b3d6b; margin: 24px 0 8px;">Mesaj</h2>
      <p style="font-size: 14px; line-height: 1.6; color: #334155; margin: 0;">{{.Message}}</p>
    </div>
  </div>
</body>
</html>`))

type ackCopy struct {
	Subject  string
	Greeting string
	Received string
	Topic    string
	Urgent   string
	Closing  string
}

var ackCopies = map[models.Language]ackCopy{
	models.LangTR: {
		Subject:  "Talebinizi aldık",
		Greeting: "Merhaba",
		Received: "Mesajınız bize ulaştı. Ekibimiz talebinizi inceleyip en kısa sürede sizinle iletişime geçecek.",
		Topic:    "Konu",
		Urgent:   "Acil durumlar için 7/24 destek hattımızı arayabilirsiniz:",
		Closing:  "Saygılarımızla,",
	},
	models.LangEN: {
		Subject:  "We have received your request",
		Greeting: "Hello",
		Received: "Your message has reached us. Our team will review your request and get back to you shortly.",
		Topic:    "Subject",
		Urgent:   "For emergencies you can call our 24/7 support line:",
		Closing:  "Kind regards,",
	},
}

var ackMailTmpl = template.Must(template.New("ack").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body style="font-family: 'Segoe UI', Arial, sans-serif; margin: 0; padding: 0; background-color: #f4f7fa;">
  <div style="max-width: 600px; margin: 32px auto; background: white; border-radius: 10px; overflow: hidden; box-shadow: 0 4px 20px rgba(0,0,0,0.06);">
    <div style="background: #0b3d6b; padding: 24px 32px; text-align: center;">
      <h1 style="color: white; margin: 0; font-size: 20px;">{{.Company}}</h1>
    </div>
    <div style="padding: 24px 32px; font-size: 14px; line-height: 1.6; color: #334155;">
      <p style="margin: 0 0 16px;">{{.Copy.Greeting}} {{.Name}},</p>
      <p style="margin: 0 0 16px;">{{.Copy.Received}}</p>
      <p style="margin: 0 0 16px;"><strong>{{.Copy.Topic}}:</strong> {{.Subject}}</p>
      <p style="margin: 0 0 16px;">{{.Copy.Urgent}} <a href="tel:{{.PhoneLink}}" style="color: #0b6bcb;">{{.EmergencyPhone}}</a></p>
      <p style="margin: 24px 0 0;">{{.Copy.Closing}}<br>{{.Company}}</p>
    </div>
    <div style="background: #f1f5f9; padding: 16px 32px; font-size: 12px; color: #94a3b8; text-align: center;">
      {{.Company}} · {{.Address}}
    </div>
  </div>
</body>
</html>`))

// renderOperatorMail builds the notification for the company inbox.
func renderOperatorMail(to string, req *models.ContactRequest) (Mail, error) {
	phone := req.Phone
	if phone == "" {
		phone = phonePlaceholder
	}

	var body bytes.Buffer
	err := operatorMailTmpl.Execute(&body, struct {
		Name, Email, Phone, Subject string
		Message                     template.HTML
	}{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   phone,
		Subject: req.Subject,
		Message: textToHTML(req.Message),
	})
	if err != nil {
		return Mail{}, fmt.Errorf("failed to render operator email: %w", err)
	}

	return Mail{
		To:       to,
		Subject:  operatorSubjectPrefix + req.Subject,
		HTMLBody: body.String(),
	}, nil
}

// renderAcknowledgmentMail builds the confirmation sent back to the submitter.
func renderAcknowledgmentMail(req *models.ContactRequest, lang models.Language, company, emergencyPhone, address string) (Mail, error) {
	c, ok := ackCopies[lang]
	if !ok {
		c = ackCopies[models.LangTR]
	}

	var body bytes.Buffer
	err := ackMailTmpl.Execute(&body, struct {
		Copy                                                       ackCopy
		Name, Subject, Company, EmergencyPhone, PhoneLink, Address string
	}{
		Copy:           c,
		Name:           req.Name,
		Subject:        req.Subject,
		Company:        company,
		EmergencyPhone: emergencyPhone,
		PhoneLink:      strings.ReplaceAll(emergencyPhone, " ", ""),
		Address:        address,
	})
	if err != nil {
		return Mail{}, fmt.Errorf("failed to render acknowledgment email: %w", err)
	}

	return Mail{
		To:       req.Email,
		Subject:  fmt.Sprintf("%s - %s", c.Subject, company),
		HTMLBody: body.String(),
	}, nil
}

// textToHTML escapes free text and keeps its line breaks.
func textToHTML(s string) template.HTML {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = template.HTMLEscapeString(line)
	}
	return template.HTML(strings.Join(lines, "<br>"))
}
