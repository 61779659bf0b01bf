package datasource

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/rxtech-lab/argo-alpha/internal/types"
	"github.com/rxtech-lab/argo-alpha/pkg/errors"
)

// BarWriter persists bars to a file that a DataSource can read back.
type BarWriter interface {
	// Initialize prepares the writer. It must be called before Write.
	Initialize() error
	// Write buffers a single bar.
	Write(bar types.PricePoint) error
	// Finalize flushes all buffered bars to the output file and returns its path.
	Finalize() (string, error)
	// Close releases the writer's resources.
	Close() error
}

// DuckDBWriter buffers bars in an in-memory DuckDB table and exports them
// with COPY. The output format follows the file extension.
type DuckDBWriter struct {
	db         *sql.DB
	tx         *sql.Tx
	stmt       *sql.Stmt
	outputPath string
}

// NewBarWriter creates a writer for outputPath, which must end in .csv or .parquet.
func NewBarWriter(outputPath string) (BarWriter, error) {
	if _, err := copyFormatFor(outputPath); err != nil {
		return nil, err
	}

	return &DuckDBWriter{outputPath: outputPath}, nil
}

// Initialize implements BarWriter.
func (w *DuckDBWriter) Initialize() (err error) {
	w.db, err = sql.Open("duckdb", ":memory:")
	if err != nil {
		return errors.Wrap(errors.ErrCodeDataSourceUnavailable, "failed to open duckdb", err)
	}

	_, err = w.db.Exec(`
		CREATE TABLE market_data (
			time TIMESTAMP,
			open DOUBLE,
			high DOUBLE,
			low DOUBLE,
			close DOUBLE,
			volume DOUBLE
		)
	`)
	if err != nil {
		w.db.Close()

		return errors.Wrap(errors.ErrCodeQueryFailed, "failed to create table", err)
	}

	w.tx, err = w.db.Begin()
	if err != nil {
		w.db.Close()

		return errors.Wrap(errors.ErrCodeQueryFailed, "failed to begin transaction", err)
	}

	query, _, err := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Insert("market_data").
		Columns(barColumns...).
		Values(make([]any, len(barColumns))...).
		ToSql()
	if err != nil {
		w.tx.Rollback()
		w.db.Close()

		return errors.Wrap(errors.ErrCodeQueryFailed, "failed to build insert", err)
	}

	w.stmt, err = w.tx.Prepare(query)
	if err != nil {
		w.tx.Rollback()
		w.db.Close()

		return errors.Wrap(errors.ErrCodeQueryFailed, "failed to prepare insert", err)
	}

	return nil
}

// Write implements BarWriter.
func (w *DuckDBWriter) Write(bar types.PricePoint) error {
	if w.stmt == nil {
		return errors.New(errors.ErrCodeDataSourceUnavailable, "writer not initialized")
	}

	_, err := w.stmt.Exec(
		time.UnixMilli(bar.Timestamp).UTC(),
		bar.Open,
		bar.High,
		bar.Low,
		bar.Close,
		bar.Volume,
	)
	if err != nil {
		return errors.Wrap(errors.ErrCodeQueryFailed, "failed to insert bar", err)
	}

	return nil
}

// Finalize implements BarWriter.
func (w *DuckDBWriter) Finalize() (string, error) {
	if w.tx == nil {
		return "", errors.New(errors.ErrCodeDataSourceUnavailable, "writer not initialized")
	}

	if err := w.tx.Commit(); err != nil {
		w.tx.Rollback()

		return "", errors.Wrap(errors.ErrCodeQueryFailed, "failed to commit bars", err)
	}

	w.tx = nil

	format, err := copyFormatFor(w.outputPath)
	if err != nil {
		return "", err
	}

	_, err = w.db.Exec(fmt.Sprintf(`COPY (SELECT * FROM market_data ORDER BY time) TO %s (%s)`,
		quoteLiteral(w.outputPath), format))
	if err != nil {
		return "", errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to export %s", w.outputPath)
	}

	return w.outputPath, nil
}

// Close implements BarWriter.
func (w *DuckDBWriter) Close() error {
	var closeErrors []string

	if w.stmt != nil {
		if err := w.stmt.Close(); err != nil {
			closeErrors = append(closeErrors, err.Error())
		}

		w.stmt = nil
	}

	if w.tx != nil {
		if err := w.tx.Rollback(); err != nil {
			closeErrors = append(closeErrors, err.Error())
		}

		w.tx = nil
	}

	if w.db != nil {
		if err := w.db.Close(); err != nil {
			closeErrors = append(closeErrors, err.Error())
		}

		w.db = nil
	}

	if len(closeErrors) > 0 {
		return errors.New(errors.ErrCodeDataSourceUnavailable, "errors occurred during close: "+strings.Join(closeErrors, "; "))
	}

	return nil
}

// WriteSeries writes series to outputPath in one go.
func WriteSeries(outputPath string, series types.PriceSeries) (string, error) {
	writer, err := NewBarWriter(outputPath)
	if err != nil {
		return "", err
	}
	defer writer.Close()

	if err := writer.Initialize(); err != nil {
		return "", err
	}

	for _, bar := range series {
		if err := writer.Write(bar); err != nil {
			return "", err
		}
	}

	return writer.Finalize()
}

func copyFormatFor(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return "HEADER, DELIMITER ','", nil
	case ".parquet":
		return "FORMAT PARQUET", nil
	default:
		return "", errors.Newf(errors.ErrCodeUnsupportedFormat, "unsupported output file %q: expected .csv or .parquet", path)
	}
}
