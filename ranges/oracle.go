package ranges

import (
	"context"
	"database/sql"
	"fmt"

	//Driver for Oracle database
	_ "github.com/godror/godror"
	"go.uber.org/zap"
)

// DefaultQuery selects one boundary per row, rows of the same property form its ranges
const DefaultQuery = `
SELECT pr.PROPERTY_NAME,
       pr.BOUNDARY
FROM SIRMS_PROPERTY_RANGE pr
ORDER BY pr.PROPERTY_NAME, pr.BOUNDARY`

//LoadOracle builds a range table from an Oracle table
func LoadOracle(ctx context.Context, l *zap.SugaredLogger, conn, query string) (*Table, error) {
	db, err := sql.Open("godror", conn)
	if err != nil {
		l.Error("Go oracle open ERROR ", err)
		return nil, err
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			l.Error("Go oracle Closing DB ", err)
		}
	}(db)
	l.Info("Success connecting to Oracle DB")

	return LoadRows(ctx, l, db, query)
}

//LoadRows reads (name, boundary) rows with the given query
func LoadRows(ctx context.Context, l *zap.SugaredLogger, db *sql.DB, query string) (*Table, error) {
	if len(query) == 0 {
		query = DefaultQuery
	}
	l.Debug("Ranges query: ", query)

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		l.Error("Failed to perform ranges query ", err)
		return nil, err
	}
	defer rows.Close()

	var (
		name     string
		boundary float64
	)
	bounds := make(map[string][]float64)
	for rows.Next() {
		if err := rows.Scan(&name, &boundary); err != nil {
			l.Error("Error reading ranges row")
			return nil, err
		}
		bounds[name] = append(bounds[name], boundary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading ranges rows: %w", err)
	}
	l.Infof("Loaded ranges for %d properties", len(bounds))

	return NewTable(bounds, defaultPrecision), nil
}
