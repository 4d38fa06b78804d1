// Package cred turns a service-account key file into an HTTP client
// that injects bearer tokens for the Chronicle API.
package cred

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// HTTPClient builds an authenticated *http.Client from a
// service-account key file and OAuth scope. The tool is a single-shot
// process, so one token source per invocation is enough; there is no
// in-process refresh loop beyond what oauth2 does transparently.
func HTTPClient(ctx context.Context, keyFile, scope string, timeout time.Duration) (*http.Client, error) {
	data, err := os.ReadFile(keyFile)
	if err != nil {
		return nil, fmt.Errorf("cred: read service account key: %w", err)
	}

	creds, err := google.CredentialsFromJSON(ctx, data, scope)
	if err != nil {
		return nil, fmt.Errorf("cred: parse service account key: %w", err)
	}

	client := oauth2.NewClient(ctx, creds.TokenSource)
	client.Timeout = timeout
	return client, nil
}
