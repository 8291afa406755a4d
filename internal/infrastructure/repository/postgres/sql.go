package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
	qb "github.com/riskibarqy/hoops-sync/internal/platform/querybuilder"
)

const insertedFlag = "(xmax = 0) AS inserted"

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// buildUpsert renders up with a RETURNING clause that tells inserts apart
// from conflict updates.
func buildUpsert(up qb.Upsert) (string, []any, error) {
	up.Returning = insertedFlag
	return up.ToSQL()
}

func execUpsert(ctx context.Context, q sqlx.QueryerContext, up qb.Upsert) (bool, error) {
	query, args, err := buildUpsert(up)
	if err != nil {
		return false, fmt.Errorf("build upsert %s query: %w", up.Table, err)
	}

	var inserted bool
	if err := sqlx.GetContext(ctx, q, &inserted, query, args...); err != nil {
		return false, fmt.Errorf("upsert %s: %w", up.Table, err)
	}
	return inserted, nil
}

// uniqueKeys trims, drops blanks and deduplicates keys, sorted for stable
// query text.
func uniqueKeys(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

func nullableString(value string) sql.NullString {
	value = strings.TrimSpace(value)
	return sql.NullString{String: value, Valid: value != ""}
}
