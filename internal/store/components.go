package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// ComponentRules returns the per-word translation options, keyed by the
// Chinese component.
func (s *Store) ComponentRules(ctx context.Context) (map[string][]string, error) {
	q := s.sq.Select("chinese_component", "english_options").From("component_rules")
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rules := make(map[string][]string)
	for rows.Next() {
		var component, optionsJSON string
		if err := rows.Scan(&component, &optionsJSON); err != nil {
			return nil, err
		}
		var options []string
		if err := json.Unmarshal([]byte(optionsJSON), &options); err != nil {
			return nil, fmt.Errorf("component %q options: %w", component, err)
		}
		rules[component] = options
	}
	return rules, rows.Err()
}
