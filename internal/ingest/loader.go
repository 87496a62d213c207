package ingest

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS sales_fact (
	txn_date     date NOT NULL,
	basket_id    bigint NOT NULL,
	household_id bigint NOT NULL,
	sales_value  double precision NOT NULL,
	commodity    text NOT NULL,
	department   text NOT NULL
);
CREATE INDEX IF NOT EXISTS sales_fact_txn_date_idx ON sales_fact (txn_date);

CREATE TABLE IF NOT EXISTS household_demographics (
	household_id   bigint PRIMARY KEY,
	age_bracket    text NOT NULL,
	income_bracket text NOT NULL
);
`

// Loader writes parsed CSV data into the warehouse, replacing any
// previous contents the way the original overwrite loads did.
type Loader struct {
	pool *pgxpool.Pool
}

func NewLoader(pool *pgxpool.Pool) *Loader {
	return &Loader{pool: pool}
}

func (l *Loader) CreateSchema(ctx context.Context) error {
	if _, err := l.pool.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("creating warehouse schema: %w", err)
	}
	return nil
}

func (l *Loader) LoadFacts(ctx context.Context, rows []FactRow) (int64, error) {
	if _, err := l.pool.Exec(ctx, `TRUNCATE sales_fact`); err != nil {
		return 0, fmt.Errorf("truncating sales_fact: %w", err)
	}
	copied, err := l.pool.CopyFrom(ctx,
		pgx.Identifier{"sales_fact"},
		[]string{"txn_date", "basket_id", "household_id", "sales_value", "commodity", "department"},
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			r := rows[i]
			return []any{r.TxnDate, r.BasketID, r.HouseholdID, r.SalesValue, r.Commodity, r.Department}, nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("copying sales_fact rows: %w", err)
	}
	return copied, nil
}

func (l *Loader) LoadDemographics(ctx context.Context, rows []DemographicRow) (int64, error) {
	if _, err := l.pool.Exec(ctx, `TRUNCATE household_demographics`); err != nil {
		return 0, fmt.Errorf("truncating household_demographics: %w", err)
	}
	copied, err := l.pool.CopyFrom(ctx,
		pgx.Identifier{"household_demographics"},
		[]string{"household_id", "age_bracket", "income_bracket"},
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			r := rows[i]
			return []any{r.HouseholdID, r.AgeBracket, r.IncomeBracket}, nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("copying household_demographics rows: %w", err)
	}
	return copied, nil
}
