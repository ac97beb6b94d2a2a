package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
)

// Official is a curated translation with a named source.
type Official struct {
	EnglishName string
	Source      string
	Confidence  float64
}

// Verified is a learned translation with a usage counter.
type Verified struct {
	EnglishName string
	Confidence  float64
	UsageCount  int
}

// GetOfficial looks up a curated translation by exact Chinese name.
func (s *Store) GetOfficial(ctx context.Context, chineseName string) (*Official, error) {
	q := s.sq.Select("english_name", "source", "confidence").
		From("official_translations").
		Where(sq.Eq{"chinese_name": chineseName}).
		Limit(1)
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	var o Official
	var source sql.NullString
	err = s.db.QueryRowContext(ctx, sqlStr, args...).Scan(&o.EnglishName, &source, &o.Confidence)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	o.Source = source.String
	return &o, nil
}

// GetVerified looks up a learned translation by exact Chinese name.
func (s *Store) GetVerified(ctx context.Context, chineseName string) (*Verified, error) {
	q := s.sq.Select("english_name", "confidence", "usage_count").
		From("verified_translations").
		Where(sq.Eq{"chinese_name": chineseName}).
		Limit(1)
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	var v Verified
	err = s.db.QueryRowContext(ctx, sqlStr, args...).Scan(&v.EnglishName, &v.Confidence, &v.UsageCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// GetVerifiedMin looks up a learned translation whose confidence is at
// least minConfidence.
func (s *Store) GetVerifiedMin(ctx context.Context, chineseName string, minConfidence float64) (string, error) {
	q := s.sq.Select("english_name").
		From("verified_translations").
		Where(sq.Eq{"chinese_name": chineseName}).
		Where(sq.GtOrEq{"confidence": minConfidence}).
		Limit(1)
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return "", err
	}
	var name string
	err = s.db.QueryRowContext(ctx, sqlStr, args...).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return name, nil
}

// PutVerified inserts or updates a learned translation.
func (s *Store) PutVerified(ctx context.Context, chineseName, englishName string, confidence float64) error {
	now := time.Now().UTC().Format(time.RFC3339)
	q := s.sq.Insert("verified_translations").
		Columns("chinese_name", "english_name", "confidence", "usage_count", "created_at").
		Values(chineseName, englishName, confidence, 0, now).
		Suffix("ON CONFLICT(chinese_name) DO UPDATE SET english_name=excluded.english_name, confidence=excluded.confidence")
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, sqlStr, args...)
	return err
}

// PutOfficial inserts or updates a curated translation.
func (s *Store) PutOfficial(ctx context.Context, chineseName, englishName, source string, confidence float64) error {
	now := time.Now().UTC().Format(time.RFC3339)
	q := s.sq.Insert("official_translations").
		Columns("chinese_name", "english_name", "source", "confidence", "created_at").
		Values(chineseName, englishName, source, confidence, now).
		Suffix("ON CONFLICT(chinese_name) DO UPDATE SET english_name=excluded.english_name, source=excluded.source, confidence=excluded.confidence")
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, sqlStr, args...)
	return err
}

// AllTranslations returns every known Chinese→English pair, official and
// verified combined. Verified entries win on collision.
func (s *Store) AllTranslations(ctx context.Context) (map[string]string, error) {
	all := make(map[string]string)
	for _, table := range []string{"official_translations", "verified_translations"} {
		q := s.sq.Select("chinese_name", "english_name").From(table)
		sqlStr, args, err := q.ToSql()
		if err != nil {
			return nil, err
		}
		rows, err := s.db.QueryContext(ctx, sqlStr, args...)
		if err != nil {
			return nil, err
		}
		for rows.Next() {
			var zh, en string
			if err := rows.Scan(&zh, &en); err != nil {
				rows.Close()
				return nil, err
			}
			all[zh] = en
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, err
		}
		rows.Close()
	}
	return all, nil
}

// BumpUsage increments the usage counter for a verified translation.
func (s *Store) BumpUsage(ctx context.Context, chineseName string) error {
	q := s.sq.Update("verified_translations").
		Set("usage_count", sq.Expr("usage_count + 1")).
		Set("last_used", time.Now().UTC().Format(time.RFC3339)).
		Where(sq.Eq{"chinese_name": chineseName})
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, sqlStr, args...)
	return err
}
