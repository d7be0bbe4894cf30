// Package mail implementa el colaborador de correo transaccional saliente
// sobre SMTP. Solo envío: la recepción entra por el webhook de ingesta.
package mail

import (
	"context"
	"fmt"

	"github.com/jhoicas/procura-api/internal/application/ports"
	"github.com/jhoicas/procura-api/internal/domain"
	"github.com/jhoicas/procura-api/pkg/config"
	gomail "gopkg.in/gomail.v2"
)

// Verificar en tiempo de compilación que GomailSender implementa MailSender.
var _ ports.MailSender = (*GomailSender)(nil)

// GomailSender despacha lotes de correos por SMTP con gomail.
type GomailSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewGomailSender construye el sender con la configuración SMTP.
func NewGomailSender(cfg config.SMTPConfig) *GomailSender {
	return &GomailSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.FromEmail,
	}
}

// SendBatch envía todos los mensajes en una sola conexión SMTP.
// Un solo intento: si el dial o cualquier envío falla, el error se propaga
// como fallo de colaborador y el caller decide (el envío de RFP no transiciona
// el estado si esto falla).
func (s *GomailSender) SendBatch(_ context.Context, messages []ports.OutboundEmail) error {
	if s.from == "" {
		return fmt.Errorf("%w: FROM_EMAIL no configurado", domain.ErrUpstream)
	}
	if len(messages) == 0 {
		return nil
	}

	msgs := make([]*gomail.Message, 0, len(messages))
	for _, message := range messages {
		m := gomail.NewMessage()
		m.SetHeader("From", s.from)
		m.SetHeader("To", message.To)
		m.SetHeader("Subject", message.Subject)
		if message.ReplyTo != "" {
			m.SetHeader("Reply-To", message.ReplyTo)
		}
		m.SetBody("text/html", message.HTMLBody)
		msgs = append(msgs, m)
	}

	if err := s.dialer.DialAndSend(msgs...); err != nil {
		return fmt.Errorf("%w: envío SMTP: %v", domain.ErrUpstream, err)
	}
	return nil
}
