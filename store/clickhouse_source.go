package store

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	log "github.com/sirupsen/logrus"

	"chunkmetrics/api/database"
	"chunkmetrics/api/models"
)

// ClickHouseSource reads raw events from a ClickHouse table that mirrors the
// export feed: one row per event with the full property bag as a JSON
// column. It serves deployments that replicate their analytics stream into
// ClickHouse instead of hitting the export API on every dashboard load.
type ClickHouseSource struct {
	DB *database.ClickHouseClient
}

func NewClickHouseSource(chClient *database.ClickHouseClient) *ClickHouseSource {
	return &ClickHouseSource{DB: chClient}
}

func (s *ClickHouseSource) FetchEvents(ctx context.Context, from, to string) ([]models.Event, error) {
	start, err := time.Parse("2006-01-02", from)
	if err != nil {
		return nil, fmt.Errorf("invalid from date %q: %w", from, err)
	}
	endDay, err := time.Parse("2006-01-02", to)
	if err != nil {
		return nil, fmt.Errorf("invalid to date %q: %w", to, err)
	}
	// The range is inclusive of the whole final day.
	end := endDay.Add(24 * time.Hour)

	query := `
		SELECT event, properties
		FROM raw_events
		WHERE timestamp >= ? AND timestamp < ?
		ORDER BY timestamp ASC
	`
	rows, err := s.DB.Conn.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query raw events: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	skipped := 0
	for rows.Next() {
		var name, propsJSON string
		if err := rows.Scan(&name, &propsJSON); err != nil {
			log.WithError(err).Warn("Error scanning raw event row")
			continue
		}
		props := make(models.Properties)
		if err := json.Unmarshal([]byte(propsJSON), &props); err != nil {
			skipped++
			continue
		}
		events = append(events, models.Event{Name: name, Properties: props})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error during raw events query: %w", err)
	}
	if skipped > 0 {
		log.WithFields(log.Fields{"skipped": skipped, "from": from, "to": to}).Warn("Skipped rows with malformed property JSON")
	}

	return events, nil
}
