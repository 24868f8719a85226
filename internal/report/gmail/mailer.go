// Package gmail delivers report mails through the Gmail API.
package gmail

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"

	gmailapi "google.golang.org/api/gmail/v1"
	goption "google.golang.org/api/option"

	"rendiconto/internal/report"
)

const user = "me"

type Mailer struct {
	svc      *gmailapi.Service
	fromAddr string
}

var _ report.Mailer = (*Mailer)(nil)

// New creates a mailer bound to the authenticated account. The account's
// address is resolved once so the From header can carry the configured
// display name.
func New(ctx context.Context, opts ...goption.ClientOption) (*Mailer, error) {
	svc, err := gmailapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create gmail service: %w", err)
	}
	profile, err := svc.Users.GetProfile(user).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get gmail profile: %w", err)
	}
	return &Mailer{svc: svc, fromAddr: profile.EmailAddress}, nil
}

func (m *Mailer) Send(ctx context.Context, email report.Email) error {
	if email.To == "" {
		return errors.New("missing recipient")
	}
	raw, err := BuildMIME(email, m.fromAddr)
	if err != nil {
		return fmt.Errorf("build MIME message: %w", err)
	}

	msg := &gmailapi.Message{Raw: base64.RawURLEncoding.EncodeToString(raw)}
	sent, err := m.svc.Users.Messages.Send(user, msg).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("send report mail: %w", err)
	}

	slog.InfoContext(ctx, "Report mail sent",
		"id", sent.Id,
		"to", email.To,
		"subject", email.Subject,
		"attachment", email.Attachment.Filename)

	return nil
}
