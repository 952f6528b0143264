// Package notification delivers the appointment confirmation email. The
// appointment endpoint only depends on the Notifier interface, so delivery
// failures never bubble up into a booking response and tests can swap in a
// recording fake.
package notification

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/healthplus/clinic-api/config"
)

// Confirmation carries the booking fields embedded in the email.
type Confirmation struct {
	PatientName     string
	PatientEmail    string
	PatientNumber   string
	AppointmentTime time.Time
	PreferredMode   string
}

// Notifier dispatches a confirmation for a freshly booked appointment.
type Notifier interface {
	SendAppointmentConfirmation(Confirmation) error
}

var confirmationTemplate = template.Must(template.New("confirmation").Parse(`<!DOCTYPE html>
<html>
<head>
  <style>
    body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
    .container { max-width: 600px; margin: 0 auto; padding: 20px; background-color: #f9f9f9; }
    .header { background-color: #1E8FFD; color: white; padding: 20px; text-align: center; border-radius: 5px 5px 0 0; }
    .content { background-color: white; padding: 30px; border-radius: 0 0 5px 5px; }
    .appointment-details { background-color: #f0f8ff; padding: 20px; border-radius: 5px; margin: 20px 0; }
    .footer { text-align: center; margin-top: 20px; color: #666; font-size: 12px; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>Appointment Confirmed</h1>
    </div>
    <div class="content">
      <p>Dear {{.PatientName}},</p>
      <p>Your appointment has been successfully scheduled.</p>
      <div class="appointment-details">
        <h3>Appointment Details:</h3>
        <p><strong>Date &amp; Time:</strong> {{.FormattedTime}}</p>
        <p><strong>Mode:</strong> {{.PreferredMode}}</p>
        <p><strong>Contact:</strong> {{.PatientNumber}}</p>
      </div>
      <p>If you need to reschedule or cancel, please contact us as soon as possible.</p>
      <p>Thank you for choosing Health Plus!</p>
    </div>
    <div class="footer">
      <p>This is an automated message, please do not reply.</p>
    </div>
  </div>
</body>
</html>
`))

// renderConfirmation produces the HTML body for a confirmation email.
func renderConfirmation(conf Confirmation) (string, error) {
	data := struct {
		Confirmation
		FormattedTime string
	}{
		Confirmation:  conf,
		FormattedTime: conf.AppointmentTime.Format("Monday, January 2, 2006 3:04 PM"),
	}

	var buf bytes.Buffer
	if err := confirmationTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render confirmation email: %w", err)
	}
	return buf.String(), nil
}

// Mailer is the SMTP-backed Notifier used in production.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewMailer builds a Mailer from the mail-relay credentials in cfg.
func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass),
		from:   fmt.Sprintf("\"Health Plus\" <%s>", cfg.MailFrom),
	}
}

// SendAppointmentConfirmation renders and dispatches the confirmation email
// through the configured relay.
func (m *Mailer) SendAppointmentConfirmation(conf Confirmation) error {
	body, err := renderConfirmation(conf)
	if err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", conf.PatientEmail)
	msg.SetHeader("Subject", "Appointment Confirmation - Health Plus")
	msg.SetBody("text/html", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}
	return nil
}
