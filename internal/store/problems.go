package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/mathgen/internal/problemgen"
	"github.com/abhisek/mathgen/internal/schema"
)

const (
	problemsTable = "problems"

	colSeq         = "seq"
	colID          = "id"
	colWorksheetID = "worksheet_id"
	colGeneratorID = "generator_id"
	colSeed        = "seed"
	colIndex       = "item_index"
	colParams      = "params"
	colProblem     = "problem"
	colCreatedAt   = "created_at"
)

var problemColumns = []string{colSeq, colID, colWorksheetID, colGeneratorID, colSeed, colIndex, colParams, colProblem, colCreatedAt}

// ProblemRecord is one generated problem as saved in history.
type ProblemRecord struct {
	Seq         int64
	ID          string
	WorksheetID string
	GeneratorID string
	Seed        uint64
	Index       int
	Params      schema.Values
	Problem     problemgen.Problem
	CreatedAt   time.Time
}

// ProblemRepo stores and queries generated problems.
type ProblemRepo interface {
	// Save stores records in one transaction.
	Save(ctx context.Context, recs ...ProblemRecord) error

	// Recent returns the newest records first. limit 0 means no limit.
	Recent(ctx context.Context, limit int) ([]ProblemRecord, error)

	// ByGenerator returns the newest records of one generator first.
	ByGenerator(ctx context.Context, generatorID string, limit int) ([]ProblemRecord, error)

	// ByWorksheet returns the records of one worksheet in item order.
	ByWorksheet(ctx context.Context, worksheetID string) ([]ProblemRecord, error)

	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)
}

type problemRepo struct {
	db *sql.DB
}

func (r *problemRepo) Save(ctx context.Context, recs ...ProblemRecord) error {
	if len(recs) == 0 {
		return nil
	}

	insert := builder().Insert(problemsTable).
		Columns(colID, colWorksheetID, colGeneratorID, colSeed, colIndex, colParams, colProblem, colCreatedAt)
	for _, rec := range recs {
		params, err := json.Marshal(rec.Params)
		if err != nil {
			return fmt.Errorf("marshal params: %w", err)
		}
		problem, err := json.Marshal(rec.Problem)
		if err != nil {
			return fmt.Errorf("marshal problem: %w", err)
		}
		createdAt := rec.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now()
		}
		insert.Values(rec.ID, rec.WorksheetID, rec.GeneratorID, int64(rec.Seed), rec.Index,
			string(params), string(problem), createdAt.UnixNano())
	}
	query, args := insert.Query()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		tx.Rollback()
		return fmt.Errorf("insert problems: %w", err)
	}
	return tx.Commit()
}

func (r *problemRepo) Recent(ctx context.Context, limit int) ([]ProblemRecord, error) {
	return r.query(ctx, r.selectProblems().OrderBy(entsql.Desc(colSeq)), limit)
}

func (r *problemRepo) ByGenerator(ctx context.Context, generatorID string, limit int) ([]ProblemRecord, error) {
	sel := r.selectProblems().
		Where(entsql.EQ(colGeneratorID, generatorID)).
		OrderBy(entsql.Desc(colSeq))
	return r.query(ctx, sel, limit)
}

func (r *problemRepo) ByWorksheet(ctx context.Context, worksheetID string) ([]ProblemRecord, error) {
	sel := r.selectProblems().
		Where(entsql.EQ(colWorksheetID, worksheetID)).
		OrderBy(entsql.Asc(colIndex))
	return r.query(ctx, sel, 0)
}

func (r *problemRepo) Count(ctx context.Context) (int, error) {
	query, args := builder().Select(entsql.Count("*")).From(entsql.Table(problemsTable)).Query()
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count problems: %w", err)
	}
	return n, nil
}

func (r *problemRepo) selectProblems() *entsql.Selector {
	return builder().Select(problemColumns...).From(entsql.Table(problemsTable))
}

func (r *problemRepo) query(ctx context.Context, sel *entsql.Selector, limit int) ([]ProblemRecord, error) {
	if limit > 0 {
		sel.Limit(limit)
	}
	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query problems: %w", err)
	}
	defer rows.Close()

	var out []ProblemRecord
	for rows.Next() {
		var (
			rec       ProblemRecord
			seed      int64
			params    string
			problem   string
			createdAt int64
		)
		if err := rows.Scan(&rec.Seq, &rec.ID, &rec.WorksheetID, &rec.GeneratorID, &seed, &rec.Index,
			&params, &problem, &createdAt); err != nil {
			return nil, fmt.Errorf("scan problem: %w", err)
		}
		if err := json.Unmarshal([]byte(params), &rec.Params); err != nil {
			return nil, fmt.Errorf("unmarshal params of %s: %w", rec.ID, err)
		}
		if err := json.Unmarshal([]byte(problem), &rec.Problem); err != nil {
			return nil, fmt.Errorf("unmarshal problem of %s: %w", rec.ID, err)
		}
		rec.Seed = uint64(seed)
		rec.CreatedAt = time.Unix(0, createdAt)
		out = append(out, rec)
	}
	return out, rows.Err()
}
