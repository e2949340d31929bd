package service

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"
	"time"

	"github.com/officeportal/portal/config"
	"github.com/officeportal/portal/util/common"

	mail "github.com/go-mail/mail/v2"
)

// MailChannel sends plain text e-mails over SMTP with mandatory STARTTLS.
type MailChannel struct {
	cfg config.SMTPConfig
}

func NewMailChannel(cfg config.SMTPConfig) *MailChannel {
	return &MailChannel{cfg: cfg}
}

func (m *MailChannel) Name() string { return "email" }

func (m *MailChannel) Enabled() bool { return m.cfg.Configured() }

func (m *MailChannel) Send(ctx context.Context, event Event) error {
	msg := mail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", m.cfg.Recipients...)
	msg.SetHeader("Subject", event.Subject)
	msg.SetBody("text/plain", mailBody(event))

	d := mail.NewDialer(m.cfg.Server, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	d.StartTLSPolicy = mail.MandatoryStartTLS
	d.TLSConfig = &tls.Config{
		ServerName:         m.cfg.Server,
		InsecureSkipVerify: m.cfg.SkipTLSVerify,
	}
	if deadline, ok := ctx.Deadline(); ok {
		d.Timeout = time.Until(deadline)
	}
	return d.DialAndSend(msg)
}

func mailBody(event Event) string {
	var b strings.Builder
	b.WriteString(event.Title)
	b.WriteString("\n\n")
	for _, f := range event.Fields {
		fmt.Fprintf(&b, "%s: %s\n", f.Name, f.Value)
	}
	if event.Body != "" {
		fmt.Fprintf(&b, "\n%s:\n%s\n", event.BodyLabel, common.Truncate(event.Body, externalTextLimit))
	}
	if link := event.Link(); link != "" {
		fmt.Fprintf(&b, "\nДля просмотра: %s\n", link)
	}
	return b.String()
}
