package source

import (
	"database/sql"
	"fmt"
	"regexp"

	"github.com/nshankar/auweather/internal/dataset"
	"github.com/nshankar/auweather/internal/metrics"
)

// DB reads the raw dataset out of a relational table. The pipeline only
// wants an in-memory table with named columns, so this stays a plain
// SELECT; filtering happens in the predicate layer, never by interpolating
// user input into query text.
type DB struct {
	db *sql.DB
}

func NewDB(db *sql.DB) *DB {
	return &DB{db: db}
}

// identPattern is what we accept as a table name. Identifiers cannot be
// bound as query parameters, so they are validated instead.
var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func (s *DB) LoadTable(table string) (*dataset.Table, error) {
	if !identPattern.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}

	rows, err := s.db.Query(fmt.Sprintf(`SELECT * FROM %q`, table))
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}

	t := &dataset.Table{Columns: cols}
	for rows.Next() {
		vals := make([]sql.NullString, len(cols))
		dest := make([]any, len(cols))
		for i := range vals {
			dest[i] = &vals[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			if v.Valid {
				row[i] = v.String
			}
		}
		t.Rows = append(t.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", table, err)
	}

	metrics.DatasetLoadsTotal.WithLabelValues("sqlite").Inc()
	return t, nil
}
