package clickzetta

import (
	"encoding/csv"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/leapstack-labs/clickzetta/pkg/session"
)

// rowCountColumns are checked in order; the first one present wins.
var rowCountColumns = []string{"rows", "row_count", "rows_affected"}

// ExtractRowCount summarizes a result as a row count.
//
// If the result has a rows, row_count or rows_affected column (checked in
// that order) the value in its first row is returned. Otherwise the number
// of rows is returned. A nil or malformed result yields 0.
func ExtractRowCount(t *session.Table) int64 {
	if t == nil {
		return 0
	}
	for _, col := range rowCountColumns {
		if !t.HasColumn(col) {
			continue
		}
		v, ok := t.Value(0, col)
		if !ok {
			return 0
		}
		n, ok := toInt64(v)
		if !ok {
			return 0
		}
		return n
	}
	return int64(t.Len())
}

// toInt64 converts common driver scalar types to int64.
func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), true //nolint:gosec // counts fit in int64
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case float32:
		return floatToInt64(float64(n))
	case float64:
		return floatToInt64(n)
	case []byte:
		return parseInt64(string(n))
	case string:
		return parseInt64(n)
	default:
		return 0, false
	}
}

func floatToInt64(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f > math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

func parseInt64(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return floatToInt64(f)
	}
	return 0, false
}

// toBool interprets catalog flag values.
func toBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		return err == nil && parsed
	default:
		n, ok := toInt64(v)
		return ok && n != 0
	}
}

// serializeCSV renders t as CSV with a header row.
func serializeCSV(t *session.Table) (string, error) {
	if t == nil || len(t.Columns) == 0 {
		return "", nil
	}

	var b strings.Builder
	w := csv.NewWriter(&b)
	if err := w.Write(t.Columns); err != nil {
		return "", fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range t.Rows {
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = formatValue(v)
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush CSV: %w", err)
	}
	return b.String(), nil
}

// formatValue converts a cell to its CSV text.
func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format(time.RFC3339Nano)
	default:
		return fmt.Sprintf("%v", x)
	}
}

// cellString renders a cell as plain text for names and tags.
func cellString(v any) string {
	if v == nil {
		return ""
	}
	return formatValue(v)
}
