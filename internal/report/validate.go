package report

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// ValidatePDF rejects documents that are not a readable PDF with at least
// one page. A truncated Drive export must never reach the mailer.
func ValidatePDF(doc Document) (err error) {
	// The pdf library panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed PDF %s: %v", doc.Filename, r)
		}
	}()

	if len(doc.Content) == 0 {
		return errors.New("empty PDF document")
	}
	r, err := pdf.NewReader(bytes.NewReader(doc.Content), int64(len(doc.Content)))
	if err != nil {
		return fmt.Errorf("read PDF %s: %w", doc.Filename, err)
	}
	if r.NumPage() < 1 {
		return fmt.Errorf("PDF %s has no pages", doc.Filename)
	}
	return nil
}
