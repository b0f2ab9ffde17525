// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ATPsolar

package store

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/atpsolar/credential-service/internal/config"
	"github.com/atpsolar/credential-service/internal/logger"
	"github.com/go-resty/resty/v2"
)

// influxClient is a minimal InfluxDB v2 HTTP API client covering the three
// calls the user record store needs: line-protocol writes, Flux queries, and
// predicate deletes.
//
// Transient failures are retried by the underlying resty client: network
// errors and 429/5xx responses are attempted again up to the configured
// retry budget.
type influxClient struct {
	client *resty.Client
	org    string
	bucket string
	logger *logger.Logger
}

func newInfluxClient(cfg config.Storage, log *logger.Logger) *influxClient {
	retries := cfg.RetryAttempts - 1
	if retries < 0 {
		retries = 0
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.Influx.URL, "/")).
		SetTimeout(cfg.QueryTimeout).
		SetRetryCount(retries).
		SetHeader("Authorization", "Token "+cfg.Influx.Token).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return r.StatusCode() == http.StatusTooManyRequests || r.StatusCode() >= http.StatusInternalServerError
		})

	return &influxClient{
		client: cli,
		org:    cfg.Influx.Org,
		bucket: cfg.Influx.Bucket,
		logger: log,
	}
}

// writeLineProtocol appends one or more line-protocol points
// ("measurement,tag=value field=\"v\" timestamp_ns") to the bucket.
func (c *influxClient) writeLineProtocol(ctx context.Context, lines string) error {
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"org":       c.org,
			"bucket":    c.bucket,
			"precision": "ns",
		}).
		SetHeader("Content-Type", "text/plain; charset=utf-8").
		SetBody(lines).
		Post("/api/v2/write")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWritingRecord, err)
	}
	if resp.IsError() {
		return fmt.Errorf("%w: status %d: %s", ErrWritingRecord, resp.StatusCode(), strings.TrimSpace(resp.String()))
	}

	return nil
}

// queryFlux runs a Flux query and returns the result rows as maps keyed by
// the CSV header columns. Influx answers with delimited text; column
// positions are not guaranteed, so callers must map by header name.
func (c *influxClient) queryFlux(ctx context.Context, flux string) ([]map[string]string, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("org", c.org).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/csv").
		SetBody(map[string]any{
			"query": flux,
			"type":  "flux",
		}).
		Post("/api/v2/query")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: status %d: %s", ErrExecutingQuery, resp.StatusCode(), strings.TrimSpace(resp.String()))
	}

	return parseFluxCSV(resp.String())
}

// deletePredicate removes all points in [start, stop) matching the given
// delete predicate (e.g. `_measurement="users" AND email="a@x.com"`).
func (c *influxClient) deletePredicate(ctx context.Context, predicate string, start, stop time.Time) error {
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"org":    c.org,
			"bucket": c.bucket,
		}).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{
			"start":     start.UTC().Format(time.RFC3339),
			"stop":      stop.UTC().Format(time.RFC3339),
			"predicate": predicate,
		}).
		Post("/api/v2/delete")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDeleteFailed, err)
	}
	if resp.IsError() {
		return fmt.Errorf("%w: status %d: %s", ErrDeleteFailed, resp.StatusCode(), strings.TrimSpace(resp.String()))
	}

	return nil
}

// parseFluxCSV converts a Flux CSV response into header-keyed rows.
//
// A response may contain several result tables, each introduced by its own
// header row and separated from the previous table by a blank line. Pivoted
// queries whose group key includes a tag (such as email) emit one table per
// tag value, so multi-table bodies are the norm, not the exception.
//
// encoding/csv silently skips blank lines, which would merge consecutive
// tables and turn the second table's header into a data row. The body is
// therefore split on blank lines first and each table is parsed on its own,
// with annotation rows (leading '#') skipped and the first remaining row
// taken as that table's header.
func parseFluxCSV(body string) ([]map[string]string, error) {
	normalized := strings.ReplaceAll(body, "\r\n", "\n")

	rows := make([]map[string]string, 0, 8)
	for _, table := range strings.Split(normalized, "\n\n") {
		if strings.TrimSpace(table) == "" {
			continue
		}

		reader := csv.NewReader(strings.NewReader(table))
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil {
			return nil, fmt.Errorf("%w: parsing csv response: %w", ErrScanningRows, err)
		}

		var header []string
		for _, record := range records {
			if len(record) == 0 {
				continue
			}
			if strings.HasPrefix(record[0], "#") {
				continue
			}
			if header == nil {
				header = record
				continue
			}

			row := make(map[string]string, len(header))
			for i, name := range header {
				if i < len(record) {
					row[name] = record[i]
				}
			}
			rows = append(rows, row)
		}
	}

	return rows, nil
}

// escapeLineProtocolTag escapes a tag value for the line-protocol format:
// commas, equals signs and spaces must be backslash-escaped.
func escapeLineProtocolTag(v string) string {
	r := strings.NewReplacer(`,`, `\,`, `=`, `\=`, ` `, `\ `)
	return r.Replace(v)
}

// escapeLineProtocolField escapes a string field value: backslashes and
// double quotes must be backslash-escaped inside the quoted value.
func escapeLineProtocolField(v string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return r.Replace(v)
}

// escapeFluxString escapes a value for inclusion in a double-quoted Flux
// string literal. Queries never embed raw user input.
func escapeFluxString(v string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return r.Replace(v)
}
