// Package mail delivers issued certificates to recipients via SMTP.
package mail

import (
	"fmt"

	"github.com/pkg/errors"
	gomail "github.com/wneessen/go-mail"
	"github.com/zachmann/go-utils/fileutils"
)

// Config holds the SMTP transport configuration.
type Config struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

// DeliveryError signals that a mail could not be delivered. Issuance and
// delivery are decoupled: by the time delivery fails, the certificate
// record and artifact already exist and stay valid.
type DeliveryError string

// Error implements the error interface
func (e DeliveryError) Error() string {
	return string(e)
}

// Mailer sends certificate mails through a configured SMTP transport.
type Mailer struct {
	conf Config
}

// NewMailer creates a Mailer for the passed transport configuration.
func NewMailer(conf Config) *Mailer {
	if conf.Port == 0 {
		conf.Port = 587
	}
	return &Mailer{conf: conf}
}

const bodyTemplate = `<div style="font-family: Arial; padding: 20px;">
  <h2>Hello %s,</h2>
  <p>Congratulations!</p>
  <p>Your certificate has been successfully generated and is attached to this message.</p>
  <p>Keep up the amazing work!</p>
</div>`

// SendCertificate mails the rendered certificate document at
// attachmentPath to the recipient.
func (m *Mailer) SendCertificate(to, userName, attachmentPath string) error {
	if !fileutils.FileExists(attachmentPath) {
		return DeliveryError(fmt.Sprintf("certificate file not found: %s", attachmentPath))
	}

	msg := gomail.NewMsg()
	if err := msg.From(fmt.Sprintf("Certificate System <%s>", m.conf.From)); err != nil {
		return errors.Wrap(err, "invalid sender address")
	}
	if err := msg.To(to); err != nil {
		return DeliveryError(fmt.Sprintf("invalid recipient address: %s", to))
	}
	msg.Subject("Your Certificate is Ready")
	msg.SetBodyString(gomail.TypeTextHTML, fmt.Sprintf(bodyTemplate, userName))
	msg.AttachFile(attachmentPath, gomail.WithFileName("certificate.pdf"))

	client, err := gomail.NewClient(
		m.conf.Host,
		gomail.WithPort(m.conf.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(m.conf.User),
		gomail.WithPassword(m.conf.Password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
	)
	if err != nil {
		return errors.Wrap(err, "failed to create smtp client")
	}
	if err = client.DialAndSend(msg); err != nil {
		return DeliveryError(fmt.Sprintf("failed to send certificate mail: %s", err))
	}
	return nil
}
