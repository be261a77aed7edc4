package store

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/goccy/go-json"
	log "github.com/sirupsen/logrus"

	"chunkmetrics/api/models"
)

const defaultExportURL = "https://data.mixpanel.com/api/2.0/export"

// ExportClient pulls raw events from a Mixpanel-style export API. The
// response is newline-delimited JSON, one event per line; malformed lines
// are logged and skipped rather than failing the whole fetch.
type ExportClient struct {
	BaseURL   string
	APISecret string
	Client    *http.Client
}

// NewExportClient builds a client from MIXPANEL_API_SECRET and the optional
// MIXPANEL_EXPORT_URL override.
func NewExportClient() (*ExportClient, error) {
	secret := os.Getenv("MIXPANEL_API_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("MIXPANEL_API_SECRET environment variable is not set")
	}
	baseURL := os.Getenv("MIXPANEL_EXPORT_URL")
	if baseURL == "" {
		baseURL = defaultExportURL
	}
	return &ExportClient{
		BaseURL:   baseURL,
		APISecret: secret,
		Client:    &http.Client{Timeout: 60 * time.Second},
	}, nil
}

func (c *ExportClient) FetchEvents(ctx context.Context, from, to string) ([]models.Event, error) {
	query := url.Values{}
	query.Set("from_date", from)
	query.Set("to_date", to)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build export request: %w", err)
	}
	// The export API authenticates with the API secret as basic auth user.
	req.SetBasicAuth(c.APISecret, "")
	req.Header.Set("Accept", "text/plain")

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("export request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("export API returned status %d", resp.StatusCode)
	}

	var events []models.Event
	scanner := bufio.NewScanner(resp.Body)
	// Lines carry full property bags and can run long.
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	skipped := 0
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var e models.Event
		if err := json.Unmarshal(line, &e); err != nil {
			skipped++
			continue
		}
		events = append(events, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed reading export stream: %w", err)
	}
	if skipped > 0 {
		log.WithFields(log.Fields{"skipped": skipped, "from": from, "to": to}).Warn("Skipped malformed export lines")
	}

	return events, nil
}
