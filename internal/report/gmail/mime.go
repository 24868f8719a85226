package gmail

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"mime"
	"mime/multipart"
	"net/textproto"
	"strings"

	"rendiconto/internal/report"
)

// BuildMIME assembles the RFC 2822 message the Gmail API expects in the Raw
// field: plain-text body plus the PDF attachment in a multipart/mixed
// envelope.
func BuildMIME(email report.Email, fromAddr string) ([]byte, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	from := fromAddr
	if email.FromName != "" {
		from = fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("UTF-8", email.FromName), fromAddr)
	}

	var head bytes.Buffer
	fmt.Fprintf(&head, "From: %s\r\n", from)
	fmt.Fprintf(&head, "To: %s\r\n", email.To)
	if len(email.CC) > 0 {
		fmt.Fprintf(&head, "Cc: %s\r\n", strings.Join(email.CC, ", "))
	}
	fmt.Fprintf(&head, "Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", email.Subject))
	head.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&head, "Content-Type: multipart/mixed; boundary=%q\r\n", mw.Boundary())
	head.WriteString("\r\n")

	textHeader := textproto.MIMEHeader{}
	textHeader.Set("Content-Type", "text/plain; charset=UTF-8")
	textPart, err := mw.CreatePart(textHeader)
	if err != nil {
		return nil, fmt.Errorf("create text part: %w", err)
	}
	if _, err := textPart.Write([]byte(email.Body)); err != nil {
		return nil, fmt.Errorf("write text part: %w", err)
	}

	att := email.Attachment
	if len(att.Content) > 0 {
		attHeader := textproto.MIMEHeader{}
		attHeader.Set("Content-Type", fmt.Sprintf("%s; name=%q", att.MimeType, att.Filename))
		attHeader.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", att.Filename))
		attHeader.Set("Content-Transfer-Encoding", "base64")
		attPart, err := mw.CreatePart(attHeader)
		if err != nil {
			return nil, fmt.Errorf("create attachment part: %w", err)
		}
		if _, err := attPart.Write(wrapBase64(att.Content)); err != nil {
			return nil, fmt.Errorf("write attachment: %w", err)
		}
	}

	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	return append(head.Bytes(), buf.Bytes()...), nil
}

// wrapBase64 encodes content and folds it into 76-character lines as RFC
// 2045 requires for base64 transfer encoding.
func wrapBase64(content []byte) []byte {
	encoded := base64.StdEncoding.EncodeToString(content)
	var out bytes.Buffer
	for len(encoded) > 76 {
		out.WriteString(encoded[:76])
		out.WriteString("\r\n")
		encoded = encoded[76:]
	}
	out.WriteString(encoded)
	return out.Bytes()
}
