package data

import (
	"context"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/ipo_radar/app/sentiment/internal/biz"
	"github.com/iWorld-y/ipo_radar/app/sentiment/pkg/model"
)

type historyRepo struct {
	data *Data
	log  *log.Helper
}

// NewHistoryRepo creates the analysis history repo. Without a database it
// stores nothing and lists nothing.
func NewHistoryRepo(data *Data, logger log.Logger) biz.HistoryRepo {
	return &historyRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func (r *historyRepo) Save(ctx context.Context, e *model.HistoryEntry) error {
	if r.data.db == nil {
		return nil
	}
	q := `
		INSERT INTO analysis_runs (run_id, company_name, verdict, score, article_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	return r.data.db.QueryRowContext(ctx, q,
		e.RunID, e.CompanyName, e.Verdict, e.MarketSentimentScore, e.SourceArticleCount, e.CreatedAt.Unix(),
	).Scan(&e.ID)
}

func (r *historyRepo) List(ctx context.Context, companyName string, limit int) ([]*model.HistoryEntry, error) {
	if r.data.db == nil {
		return []*model.HistoryEntry{}, nil
	}

	// Placeholders are numbered in order of appearance, which sqlite binds
	// positionally as postgres does.
	q := `SELECT id, run_id, company_name, verdict, score, article_count, created_at FROM analysis_runs`
	args := []interface{}{}
	if companyName != "" {
		q += ` WHERE lower(company_name) = lower($1) ORDER BY created_at DESC, id DESC LIMIT $2`
		args = append(args, companyName, limit)
	} else {
		q += ` ORDER BY created_at DESC, id DESC LIMIT $1`
		args = append(args, limit)
	}

	rows, err := r.data.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []*model.HistoryEntry{}
	for rows.Next() {
		var (
			e       model.HistoryEntry
			created int64
		)
		if err := rows.Scan(&e.ID, &e.RunID, &e.CompanyName, &e.Verdict, &e.MarketSentimentScore, &e.SourceArticleCount, &created); err != nil {
			return nil, err
		}
		e.CreatedAt = time.Unix(created, 0).UTC()
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
