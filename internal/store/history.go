package store

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"github.com/pricofy/property-translator/internal/domain"
)

// SaveHistory appends a translation result to the history table.
func (s *Store) SaveHistory(ctx context.Context, res *domain.Result) error {
	var searchJSON string
	if len(res.SearchAnalysis) > 0 {
		b, err := json.Marshal(res.SearchAnalysis)
		if err != nil {
			return err
		}
		searchJSON = string(b)
	}
	q := s.sq.Insert("translation_history").
		Columns("chinese_name", "english_name", "method", "layer", "confidence", "search_results", "timestamp").
		Values(res.ChineseName, res.EnglishName, res.Method, res.Layer, res.Confidence, searchJSON,
			time.Now().UTC().Format(time.RFC3339))
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, sqlStr, args...)
	return err
}

// Stats aggregates the translation history by layer and method.
func (s *Store) Stats(ctx context.Context) (*domain.Stats, error) {
	stats := &domain.Stats{
		LayerDistribution:  make(map[int]int),
		MethodDistribution: make(map[string]int),
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT layer, COUNT(*) FROM translation_history GROUP BY layer`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var layer, count int
		if err := rows.Scan(&layer, &count); err != nil {
			rows.Close()
			return nil, err
		}
		stats.LayerDistribution[layer] = count
		stats.TotalTranslations += count
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	rows, err = s.db.QueryContext(ctx,
		`SELECT method, COUNT(*) FROM translation_history GROUP BY method`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var method string
		var count int
		if err := rows.Scan(&method, &count); err != nil {
			rows.Close()
			return nil, err
		}
		stats.MethodDistribution[method] = count
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	var avg *float64
	if err := s.db.QueryRowContext(ctx,
		`SELECT AVG(confidence) FROM translation_history`).Scan(&avg); err != nil {
		return nil, err
	}
	if avg != nil {
		// Reported to 3 decimal places.
		stats.AverageConfidence = math.Round(*avg*1000) / 1000
	}
	return stats, nil
}
