package source

import (
	"context"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/vk/pivotaxis/internal/axis"
)

const closeTimeout = 5 * time.Second

// Postgres streams the result of one query. The query must order its rows by
// the report's group fields.
type Postgres struct {
	conn   *pgx.Conn
	rows   pgx.Rows
	fields []string
}

// OpenPostgres connects to dsn and runs query.
func OpenPostgres(ctx context.Context, dsn, query string) (*Postgres, error) {
	if query == "" {
		return nil, fmt.Errorf("postgres source needs a query")
	}
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	rows, err := conn.Query(ctx, query)
	if err != nil {
		_ = conn.Close(ctx)
		return nil, fmt.Errorf("failed to run source query: %w", err)
	}
	descs := rows.FieldDescriptions()
	fields := make([]string, len(descs))
	for i, d := range descs {
		fields[i] = d.Name
	}
	return &Postgres{conn: conn, rows: rows, fields: fields}, nil
}

func (s *Postgres) Next(ctx context.Context) (axis.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !s.rows.Next() {
		if err := s.rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to read source query rows: %w", err)
		}
		return nil, io.EOF
	}
	values, err := s.rows.Values()
	if err != nil {
		return nil, fmt.Errorf("failed to decode source query row: %w", err)
	}
	return rowFromValues(s.fields, values), nil
}

func (s *Postgres) Close() error {
	s.rows.Close()
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	return s.conn.Close(ctx)
}

func rowFromValues(fields []string, values []any) axis.Row {
	row := make(axis.Row, len(fields))
	for i, name := range fields {
		if i < len(values) {
			row[name] = convertValue(values[i])
		} else {
			row[name] = nil
		}
	}
	return row
}

// convertValue maps driver values onto axis values: numerics become exact
// decimals and UUIDs their canonical string.
func convertValue(v any) any {
	switch x := v.(type) {
	case pgtype.Numeric:
		switch {
		case !x.Valid:
			return nil
		case x.NaN:
			return math.NaN()
		case x.InfinityModifier == pgtype.Infinity:
			return math.Inf(1)
		case x.InfinityModifier == pgtype.NegativeInfinity:
			return math.Inf(-1)
		}
		return decimal.NewFromBigInt(x.Int, x.Exp)
	case [16]byte:
		return uuid.UUID(x).String()
	case int32:
		return int64(x)
	case int16:
		return int64(x)
	case float32:
		return float64(x)
	}
	return v
}
