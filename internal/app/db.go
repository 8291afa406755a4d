package app

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/hoops-sync/internal/config"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"
)

const (
	defaultDBName        = "hoops"
	maxTracedQueryLength = 512
	preparedBinaryParam  = "disable_prepared_binary_result"
)

var (
	queryWhitespaceRegex = regexp.MustCompile(`\s+`)
	// Matches two or more placeholder tuples, as produced by bulk upserts.
	valueTuplesRegex = regexp.MustCompile(`\(\$\d+(?:, ?\$\d+)*\)(?:, ?\(\$\d+(?:, ?\$\d+)*\))+`)
	valueTupleRegex  = regexp.MustCompile(`\(\$\d+(?:, ?\$\d+)*\)`)
)

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDSN(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbNameFromDSN(dsn)),
		otelsql.WithQueryFormatter(formatQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}

// normalizeDSN turns off binary results for prepared statements unless the
// DSN already says otherwise. Both URL and key=value forms are accepted.
func normalizeDSN(raw string, disablePreparedBinary bool) string {
	raw = strings.TrimSpace(raw)
	if !disablePreparedBinary || raw == "" {
		return raw
	}

	parsed, err := url.Parse(raw)
	if err == nil && parsed.Scheme != "" {
		query := parsed.Query()
		if query.Get(preparedBinaryParam) == "" {
			query.Set(preparedBinaryParam, "yes")
			parsed.RawQuery = query.Encode()
		}
		return parsed.String()
	}

	for _, token := range strings.Fields(raw) {
		if strings.HasPrefix(token, preparedBinaryParam+"=") {
			return raw
		}
	}
	return raw + " " + preparedBinaryParam + "=yes"
}

func dbNameFromDSN(raw string) string {
	trimmed := strings.TrimSpace(raw)
	parsed, err := url.Parse(trimmed)
	if err == nil && parsed.Scheme != "" {
		if name := strings.Trim(parsed.Path, "/ "); name != "" {
			return name
		}
		return defaultDBName
	}

	for _, token := range strings.Fields(trimmed) {
		name, ok := strings.CutPrefix(token, "dbname=")
		if !ok {
			continue
		}
		if name = strings.Trim(name, `"'`); name != "" {
			return name
		}
	}

	return defaultDBName
}

// formatQueryForTrace flattens whitespace and folds bulk VALUES lists into
// their first tuple plus a row count, so span names stay readable.
func formatQueryForTrace(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	normalized := queryWhitespaceRegex.ReplaceAllString(query, " ")
	normalized = valueTuplesRegex.ReplaceAllStringFunc(normalized, func(tuples string) string {
		first := valueTupleRegex.FindString(tuples)
		rows := len(valueTupleRegex.FindAllString(tuples, -1))
		return first + " /* " + strconv.Itoa(rows) + " rows */"
	})
	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}

	return normalized[:maxTracedQueryLength] + "..."
}
