// Package notify delivers push notifications after a write has committed: Firebase
// Cloud Messaging for devices and an optional Telegram chat for operators.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"logistics/internal/core/ports"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const fcmScope = "https://www.googleapis.com/auth/firebase.messaging"

type FCMConfig struct {
	ProjectID       string
	CredentialsFile string
	// BaseURL prefixes the relative links of notifications.
	BaseURL string
	IconURL string
}

// FCMNotifier sends one HTTP v1 message per device token.
type FCMNotifier struct {
	client   *http.Client
	endpoint string
	baseURL  string
	iconURL  string
	logger   *slog.Logger
}

// NewFCMNotifier authenticates with the service account in cfg.CredentialsFile.
func NewFCMNotifier(ctx context.Context, cfg FCMConfig, logger *slog.Logger) (*FCMNotifier, error) {
	raw, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read fcm credentials: %w", err)
	}
	creds, err := google.CredentialsFromJSON(ctx, raw, fcmScope)
	if err != nil {
		return nil, fmt.Errorf("parse fcm credentials: %w", err)
	}

	client := oauth2.NewClient(ctx, creds.TokenSource)
	client.Timeout = 10 * time.Second

	endpoint := fmt.Sprintf("https://fcm.googleapis.com/v1/projects/%s/messages:send", cfg.ProjectID)
	return NewFCMNotifierWithClient(client, endpoint, cfg.BaseURL, cfg.IconURL, logger), nil
}

// NewFCMNotifierWithClient uses client as is; it must add the bearer token itself.
func NewFCMNotifierWithClient(client *http.Client, endpoint, baseURL, iconURL string, logger *slog.Logger) *FCMNotifier {
	return &FCMNotifier{
		client:   client,
		endpoint: endpoint,
		baseURL:  strings.TrimRight(baseURL, "/"),
		iconURL:  iconURL,
		logger:   logger.With("component", "fcm"),
	}
}

type fcmRequest struct {
	Message fcmMessage `json:"message"`
}

type fcmMessage struct {
	Token        string          `json:"token"`
	Notification fcmNotification `json:"notification"`
	Webpush      *fcmWebpush     `json:"webpush,omitempty"`
}

type fcmNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Image string `json:"image,omitempty"`
}

type fcmWebpush struct {
	FCMOptions fcmOptions `json:"fcm_options"`
}

type fcmOptions struct {
	Link string `json:"link"`
}

// Send posts n to every token. A failed recipient is logged and does not stop the
// others; only a canceled context is returned.
func (f *FCMNotifier) Send(ctx context.Context, n ports.Notification, tokens []string) error {
	for _, token := range tokens {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := f.sendOne(ctx, n, token); err != nil {
			f.logger.ErrorContext(ctx, "fcm notification failed", "token", token, "error", err)
		}
	}
	return nil
}

func (f *FCMNotifier) sendOne(ctx context.Context, n ports.Notification, token string) error {
	msg := fcmMessage{
		Token:        token,
		Notification: fcmNotification{Title: n.Title, Body: n.Body, Image: f.iconURL},
	}
	if n.Link != "" {
		msg.Webpush = &fcmWebpush{FCMOptions: fcmOptions{Link: f.baseURL + n.Link}}
	}

	body, err := json.Marshal(fcmRequest{Message: msg})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("fcm responded %d: %s", resp.StatusCode, bytes.TrimSpace(detail))
	}
	return nil
}
