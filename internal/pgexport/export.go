// Package pgexport writes a loaded model into PostgreSQL tables.
package pgexport

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/jacoelho/langtable/internal/model"
)

//go:embed schema.sql
var schemaSQL string

// DefaultBatchSize is the number of rows sent per INSERT statement.
const DefaultBatchSize = 500

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Beginner starts transactions. *pgxpool.Pool and *pgx.Conn implement it.
type Beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Exporter replaces the relational copy of a model in one transaction.
type Exporter struct {
	db        Beginner
	logger    *slog.Logger
	batchSize int
}

// New creates an exporter. A nil logger discards output.
func New(db Beginner, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Exporter{db: db, logger: logger, batchSize: DefaultBatchSize}
}

// WithBatchSize returns a copy of e that sends at most n rows per INSERT.
func (e *Exporter) WithBatchSize(n int) *Exporter {
	c := *e
	if n > 0 {
		c.batchSize = n
	}
	return &c
}

// Result counts the rows written per relational table.
type Result struct {
	Rows    map[string]int
	Skipped []model.Document
}

// Export creates the schema if needed and replaces the rows of every table
// backed by a completely loaded document. Tables of incomplete or absent
// documents keep their previous contents and are reported as skipped.
func (e *Exporter) Export(ctx context.Context, tables model.Tables) (res Result, err error) {
	if e == nil || e.db == nil {
		return Result{}, errors.New("export: no database configured")
	}
	res.Rows = make(map[string]int)

	var sets []*rowSet
	for _, doc := range model.Documents {
		switch doc {
		case model.DocumentKeyboards:
			if tables.Keyboards.Authoritative() {
				sets = append(sets, keyboardRows(tables.Keyboards)...)
				continue
			}
		case model.DocumentTerritories:
			if tables.Territories.Authoritative() {
				sets = append(sets, territoryRows(tables.Territories)...)
				continue
			}
		case model.DocumentLanguages:
			if tables.Languages.Authoritative() {
				sets = append(sets, languageRows(tables.Languages)...)
				continue
			}
		}
		e.logger.Warn("skipping export of incomplete document", "document", doc.String())
		res.Skipped = append(res.Skipped, doc)
	}

	tx, err := e.db.Begin(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				err = errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
			}
		}
	}()

	if _, err = tx.Exec(ctx, schemaSQL); err != nil {
		return Result{}, fmt.Errorf("create schema: %w", err)
	}
	for _, set := range sets {
		if err = e.replace(ctx, tx, set); err != nil {
			return Result{}, err
		}
		res.Rows[set.table] = len(set.rows)
	}
	if err = tx.Commit(ctx); err != nil {
		return Result{}, fmt.Errorf("commit transaction: %w", err)
	}

	e.logger.Info("export finished", "tables", len(sets), "skipped", len(res.Skipped))
	return res, nil
}

func (e *Exporter) replace(ctx context.Context, tx pgx.Tx, set *rowSet) error {
	query, args, err := psql.Delete(set.table).ToSql()
	if err != nil {
		return fmt.Errorf("build delete %s: %w", set.table, err)
	}
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("clear %s: %w", set.table, err)
	}

	for start := 0; start < len(set.rows); start += e.batchSize {
		end := min(start+e.batchSize, len(set.rows))
		insert := psql.Insert(set.table).Columns(set.columns...)
		for _, row := range set.rows[start:end] {
			insert = insert.Values(row...)
		}
		query, args, err := insert.ToSql()
		if err != nil {
			return fmt.Errorf("build insert %s: %w", set.table, err)
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("insert %s: %w", set.table, err)
		}
	}
	e.logger.Debug("table exported", "table", set.table, "rows", len(set.rows))
	return nil
}
