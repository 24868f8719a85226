package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	driveapi "google.golang.org/api/drive/v3"
	gmailapi "google.golang.org/api/gmail/v1"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// scopes covers everything the pipeline touches: inbox search, report
// mail, sheet overwrite and the PDF export.
var scopes = []string{
	gmailapi.GmailReadonlyScope,
	gmailapi.GmailSendScope,
	gsheet.SpreadsheetsScope,
	driveapi.DriveReadonlyScope,
}

// googleOptions builds client options from the OAuth client and token
// produced by cmd/oauth-init. Both accept inline JSON or a file path.
func googleOptions(ctx context.Context) ([]goption.ClientOption, error) {
	clientJSON, err := readEnvJSON("GOOGLE_OAUTH_CLIENT_JSON", "GOOGLE_OAUTH_CLIENT_FILE")
	if err != nil {
		return nil, err
	}
	tokenJSON, err := readEnvJSON("GOOGLE_OAUTH_TOKEN_JSON", "GOOGLE_OAUTH_TOKEN_FILE")
	if err != nil {
		return nil, err
	}

	cfg, err := google.ConfigFromJSON(clientJSON, scopes...)
	if err != nil {
		return nil, fmt.Errorf("parse OAuth client: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(tokenJSON, &token); err != nil {
		return nil, fmt.Errorf("parse OAuth token: %w", err)
	}

	return []goption.ClientOption{
		goption.WithTokenSource(cfg.TokenSource(ctx, &token)),
	}, nil
}

func readEnvJSON(inlineKey, fileKey string) ([]byte, error) {
	if inline := strings.TrimSpace(os.Getenv(inlineKey)); inline != "" {
		return []byte(inline), nil
	}
	if file := strings.TrimSpace(os.Getenv(fileKey)); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", file, err)
		}
		return data, nil
	}
	return nil, errors.New("set " + inlineKey + " or " + fileKey)
}
