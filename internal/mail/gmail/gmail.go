// Package gmail implements the mail source on the Gmail API.
package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"
	"time"

	gmailapi "google.golang.org/api/gmail/v1"
	goption "google.golang.org/api/option"

	"rendiconto/internal/core"
	"rendiconto/internal/mail"
)

const user = "me"

type Client struct {
	svc *gmailapi.Service
}

var _ mail.Source = (*Client)(nil)

// New creates a Gmail client from a pre-built option set (OAuth token source
// or service account credentials, see cmd/oauth-init).
func New(ctx context.Context, opts ...goption.ClientOption) (*Client, error) {
	svc, err := gmailapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create gmail service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// Search lists every message matching query within [after, before) and
// fetches its plain-text body. Gmail's after:/before: operators work on
// epoch seconds in the account's view of time, so the caller passes window
// bounds already anchored to the reporting timezone.
func (c *Client) Search(ctx context.Context, query string, after, before time.Time) ([]core.RawMessage, error) {
	q := fmt.Sprintf("%s after:%d before:%d", query, after.Unix(), before.Unix())

	var ids []string
	pageToken := ""
	for {
		call := c.svc.Users.Messages.List(user).Q(q).Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		resp, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("list messages: %w", err)
		}
		for _, m := range resp.Messages {
			ids = append(ids, m.Id)
		}
		if resp.NextPageToken == "" {
			break
		}
		pageToken = resp.NextPageToken
	}

	slog.DebugContext(ctx, "Gmail search complete", "query", q, "matches", len(ids))

	out := make([]core.RawMessage, 0, len(ids))
	for _, id := range ids {
		msg, err := c.svc.Users.Messages.Get(user, id).Format("full").Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("get message %s: %w", id, err)
		}
		body := extractBody(msg.Payload)
		if body == "" {
			slog.WarnContext(ctx, "Message without readable body", "id", id)
			continue
		}
		out = append(out, core.RawMessage{
			Body:       body,
			ReceivedAt: time.UnixMilli(msg.InternalDate),
		})
	}
	return out, nil
}

// extractBody walks the MIME tree preferring the first text/plain part,
// falling back to text/html and finally to the top-level body.
func extractBody(part *gmailapi.MessagePart) string {
	if part == nil {
		return ""
	}
	if body := findPart(part, "text/plain"); body != "" {
		return body
	}
	if body := findPart(part, "text/html"); body != "" {
		return body
	}
	return decodeData(part.Body)
}

func findPart(part *gmailapi.MessagePart, mimeType string) string {
	if strings.HasPrefix(part.MimeType, mimeType) {
		if body := decodeData(part.Body); body != "" {
			return body
		}
	}
	for _, child := range part.Parts {
		if body := findPart(child, mimeType); body != "" {
			return body
		}
	}
	return ""
}

func decodeData(body *gmailapi.MessagePartBody) string {
	if body == nil || body.Data == "" {
		return ""
	}
	// Gmail uses web-safe base64; padding varies between parts.
	data, err := base64.URLEncoding.DecodeString(body.Data)
	if err != nil {
		data, err = base64.RawURLEncoding.DecodeString(body.Data)
		if err != nil {
			return ""
		}
	}
	return string(data)
}
