package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// GetGeo resolves a fixed geography name. A trailing 站 (station) is also
// matched against the bare area name, with " Station" appended.
func (s *Store) GetGeo(ctx context.Context, chineseName string) (string, error) {
	en, err := s.geoExact(ctx, chineseName)
	if err == nil {
		return en, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return "", err
	}

	if base, ok := strings.CutSuffix(chineseName, "站"); ok {
		en, err := s.geoExact(ctx, base)
		if err == nil {
			return en + " Station", nil
		}
		if !errors.Is(err, ErrNotFound) {
			return "", err
		}
	}
	return "", ErrNotFound
}

func (s *Store) geoExact(ctx context.Context, chineseName string) (string, error) {
	q := s.sq.Select("english_name").
		From("geo_locations").
		Where(sq.Eq{"chinese_name": chineseName}).
		Limit(1)
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return "", err
	}
	var en string
	err = s.db.QueryRowContext(ctx, sqlStr, args...).Scan(&en)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return en, nil
}
