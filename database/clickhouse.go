// Package database manages the optional ClickHouse backend used when
// EVENT_SOURCE=clickhouse. The export-API path never touches it.
package database

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	log "github.com/sirupsen/logrus"
)

type ClickHouseClient struct {
	Conn clickhouse.Conn
}

type clickhouseConfig struct {
	host     string
	port     int
	database string
	username string
	password string
}

func configFromEnv() (clickhouseConfig, error) {
	cfg := clickhouseConfig{
		host:     os.Getenv("CLICKHOUSE_HOST"),
		database: os.Getenv("CLICKHOUSE_DB_NAME"),
		username: os.Getenv("CLICKHOUSE_USERNAME"),
		password: os.Getenv("CLICKHOUSE_PASSWORD"),
	}
	portStr := os.Getenv("CLICKHOUSE_NATIVE_PORT")
	if cfg.host == "" || portStr == "" || cfg.database == "" {
		return cfg, fmt.Errorf("CLICKHOUSE_HOST, CLICKHOUSE_NATIVE_PORT and CLICKHOUSE_DB_NAME must be set when EVENT_SOURCE=clickhouse")
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return cfg, fmt.Errorf("invalid CLICKHOUSE_NATIVE_PORT: %w", err)
	}
	cfg.port = port
	return cfg, nil
}

// NewClickHouseDB opens a native TCP connection from the CLICKHOUSE_* env
// variables and pings it before returning.
func NewClickHouseDB() (*ClickHouseClient, error) {
	cfg, err := configFromEnv()
	if err != nil {
		return nil, err
	}

	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{fmt.Sprintf("%s:%d", cfg.host, cfg.port)},
		Auth: clickhouse.Auth{
			Database: cfg.database,
			Username: cfg.username,
			Password: cfg.password,
		},
		ClientInfo: clickhouse.ClientInfo{
			Products: []struct {
				Name    string
				Version string
			}{{Name: "chunkmetrics-api", Version: "1.0.0"}},
		},
		Compression: &clickhouse.Compression{
			Method: clickhouse.CompressionLZ4,
		},
		DialTimeout: 5 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ClickHouse: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := conn.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping ClickHouse: %w", err)
	}

	log.WithFields(log.Fields{"host": cfg.host, "database": cfg.database}).Info("Connected to ClickHouse")
	return &ClickHouseClient{Conn: conn}, nil
}

func (c *ClickHouseClient) Close() {
	if c.Conn != nil {
		c.Conn.Close()
		log.Info("ClickHouse connection closed")
	}
}
