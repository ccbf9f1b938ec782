package store

import (
	"context"
	"fmt"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/sheets/v4"
)

// Scopes the service account credentials are requested with.
var Scopes = []string{
	sheets.SpreadsheetsScope,
	drive.DriveFileScope,
	drive.DriveScope,
}

// NewHTTPClient returns a client authorized with the service account
// credentials JSON, with every request traced.
func NewHTTPClient(ctx context.Context, credentialsJSON []byte) (*http.Client, error) {
	baseClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, baseClient)

	creds, err := google.CredentialsFromJSON(ctx, credentialsJSON, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("parse service account credentials: %w", err)
	}

	return oauth2.NewClient(ctx, creds.TokenSource), nil
}
