package report

import (
	"fmt"
	"strings"
	"testing"
)

// minimalPDF builds the smallest valid single-page PDF, computing the xref
// offsets as the objects are appended.
func minimalPDF() []byte {
	var b strings.Builder
	b.WriteString("%PDF-1.4\n")

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << >> >>",
	}
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xrefStart := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n", len(objects)+1)
	b.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&b, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xrefStart)
	return []byte(b.String())
}

func TestValidatePDF(t *testing.T) {
	doc := Document{Filename: "ok.pdf", MimeType: "application/pdf", Content: minimalPDF()}
	if err := ValidatePDF(doc); err != nil {
		t.Fatalf("valid PDF rejected: %v", err)
	}
}

func TestValidatePDFRejectsEmpty(t *testing.T) {
	if err := ValidatePDF(Document{Filename: "empty.pdf"}); err == nil {
		t.Fatal("expected error for empty document")
	}
}

func TestValidatePDFRejectsGarbage(t *testing.T) {
	doc := Document{Filename: "bad.pdf", Content: []byte("this is not a pdf at all")}
	if err := ValidatePDF(doc); err == nil {
		t.Fatal("expected error for non-PDF content")
	}
}
