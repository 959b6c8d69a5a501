package infra

import (
	"fmt"
	"net/smtp"

	"nexopos/internal/config"

	"github.com/jordan-wright/email"
)

// Mailer sends cotización emails through a plain SMTP relay.
type Mailer struct {
	addr string
	auth smtp.Auth
	from string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		addr: fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
		auth: smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPHost),
		from: cfg.SMTPUser,
	}
}

// SendCotizacion mails the rendered PDF to the client. An empty pdfPath
// sends the body alone, which happens when the client asks for a resend
// before the render job finished.
func (m *Mailer) SendCotizacion(to, subject, body, pdfPath string) error {
	e := email.NewEmail()
	e.From = m.from
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	if pdfPath != "" {
		if _, err := e.AttachFile(pdfPath); err != nil {
			return fmt.Errorf("mailer: attach PDF: %w", err)
		}
	}
	return e.Send(m.addr, m.auth)
}
