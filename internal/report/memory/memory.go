// Package memory provides fake renderer and mailer for tests and dry runs.
package memory

import (
	"context"
	"sync"

	"rendiconto/internal/core"
	"rendiconto/internal/report"
)

// Renderer returns a placeholder document without calling any external
// service. Dry runs use it so the pipeline shape stays identical.
type Renderer struct {
	mu      sync.Mutex
	renders int
}

var _ report.Renderer = (*Renderer)(nil)

func NewRenderer() *Renderer { return &Renderer{} }

func (r *Renderer) Render(_ context.Context, snap *core.ReportSnapshot) (report.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renders++
	return report.Document{
		Filename: report.DocumentName(snap.Summary),
		MimeType: "application/pdf",
		Content:  []byte("%PDF-placeholder"),
	}, nil
}

func (r *Renderer) Renders() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.renders
}

// Mailer records sent mails instead of delivering them.
type Mailer struct {
	mu   sync.Mutex
	sent []report.Email
}

var _ report.Mailer = (*Mailer)(nil)

func NewMailer() *Mailer { return &Mailer{} }

func (m *Mailer) Send(_ context.Context, email report.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, email)
	return nil
}

// Sent returns a copy of the delivered mails.
func (m *Mailer) Sent() []report.Email {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]report.Email, len(m.sent))
	copy(out, m.sent)
	return out
}
