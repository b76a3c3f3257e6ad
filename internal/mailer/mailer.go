// Package mailer sends transactional mail: review moderation notices and
// account mail. SMTP in production, a logging or recording sender elsewhere.
package mailer

import (
	"context"
	"errors"
	"log/slog"
	"strings"
)

type Mailer interface {
	Send(ctx context.Context, e Email) error
}

type Email struct {
	FromName string
	From     string

	To  []string
	Cc  []string
	Bcc []string

	Subject string

	TextBody string
	HTMLBody string

	Headers map[string]string
}

func (e Email) AllRecipients() []string {
	out := make([]string, 0, len(e.To)+len(e.Cc)+len(e.Bcc))
	out = append(out, e.To...)
	out = append(out, e.Cc...)
	out = append(out, e.Bcc...)
	return out
}

func (e Email) Validate() error {
	switch {
	case len(e.To) == 0:
		return errors.New("mailer: at least one recipient required")
	case e.From == "":
		return errors.New("mailer: from address required")
	case e.Subject == "":
		return errors.New("mailer: subject required")
	case e.TextBody == "" && e.HTMLBody == "":
		return errors.New("mailer: text or html body required")
	}
	for _, a := range e.AllRecipients() {
		if strings.ContainsAny(a, "\r\n") {
			return errors.New("mailer: invalid recipient")
		}
	}
	return nil
}

// WithSender fills From/FromName on mail that does not set them.
func WithSender(m Mailer, from, fromName string) Mailer {
	return senderDefaults{next: m, from: from, fromName: fromName}
}

type senderDefaults struct {
	next     Mailer
	from     string
	fromName string
}

func (s senderDefaults) Send(ctx context.Context, e Email) error {
	if e.From == "" {
		e.From = s.from
		if e.FromName == "" {
			e.FromName = s.fromName
		}
	}
	return s.next.Send(ctx, e)
}

// Log writes mail to the logger instead of delivering it. Used when no SMTP
// host is configured.
type Log struct {
	Logger *slog.Logger
}

func (l Log) Send(ctx context.Context, e Email) error {
	if err := e.Validate(); err != nil {
		return err
	}
	l.Logger.LogAttrs(ctx, slog.LevelInfo, "mail_not_sent",
		slog.Any("to", e.To),
		slog.String("subject", e.Subject),
	)
	return nil
}
