package store

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	log "github.com/sirupsen/logrus"
)

// EmailStats is the upstream email reporting payload, normalized so every
// field is present even when the upstream omits it.
type EmailStats struct {
	PeriodDays  int                        `json:"period_days"`
	GeneratedAt string                     `json:"generated_at"`
	ByEmailType map[string]json.RawMessage `json:"by_email_type"`
	Totals      EmailTotals                `json:"totals"`
	LastUpdated string                     `json:"lastUpdated"`
	Note        string                     `json:"note,omitempty"`
}

type EmailTotals struct {
	Sent                  int     `json:"sent"`
	Converted             int     `json:"converted"`
	OverallConversionRate float64 `json:"overallConversionRate"`
}

// EmailStatsClient proxies the external email stats service. Failures
// degrade to a zero-valued payload with a note, so the dashboard renders
// zeros instead of erroring.
type EmailStatsClient struct {
	BaseURL   string
	AuthToken string
	Client    *http.Client
}

// NewEmailStatsClient builds a client from EMAIL_STATS_URL and
// EMAIL_STATS_TOKEN. A missing token is an error; a missing URL is not,
// since deployments without the email service simply see zeros.
func NewEmailStatsClient() (*EmailStatsClient, error) {
	token := os.Getenv("EMAIL_STATS_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("EMAIL_STATS_TOKEN environment variable is not set")
	}
	return &EmailStatsClient{
		BaseURL:   os.Getenv("EMAIL_STATS_URL"),
		AuthToken: token,
		Client:    &http.Client{Timeout: 25 * time.Second},
	}, nil
}

// FetchStats returns the email stats for the last N days. It never returns
// an error for upstream failures, only a degraded payload.
func (c *EmailStatsClient) FetchStats(ctx context.Context, days string) EmailStats {
	if _, err := strconv.Atoi(days); err != nil {
		days = "30"
	}

	stats, err := c.fetch(ctx, days)
	if err != nil {
		log.WithError(err).Error("Failed to fetch email stats")
		periodDays, _ := strconv.Atoi(days)
		now := time.Now().UTC().Format(time.RFC3339)
		return EmailStats{
			PeriodDays:  periodDays,
			GeneratedAt: now,
			ByEmailType: map[string]json.RawMessage{},
			LastUpdated: now,
			Note:        fmt.Sprintf("Data unavailable - %v", err),
		}
	}
	return stats
}

func (c *EmailStatsClient) fetch(ctx context.Context, days string) (EmailStats, error) {
	url := fmt.Sprintf("%s/webhooks/revenuecat/email-stats?days=%s", c.BaseURL, days)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return EmailStats{}, fmt.Errorf("failed to build email stats request: %w", err)
	}
	req.Header.Set("Authorization", c.AuthToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return EmailStats{}, fmt.Errorf("email stats request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return EmailStats{}, fmt.Errorf("email stats service returned %d: %s", resp.StatusCode, body)
	}

	var stats EmailStats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		return EmailStats{}, fmt.Errorf("failed to decode email stats: %w", err)
	}

	if stats.ByEmailType == nil {
		stats.ByEmailType = map[string]json.RawMessage{}
	}
	if stats.PeriodDays == 0 {
		stats.PeriodDays = 30
	}
	now := time.Now().UTC().Format(time.RFC3339)
	if stats.GeneratedAt == "" {
		stats.GeneratedAt = now
	}
	stats.LastUpdated = now
	return stats, nil
}
