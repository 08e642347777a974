package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/leapstack-labs/clickzetta/pkg/core"
)

// ParseCSVResult splits a CSV-serialized result into header and rows.
// An empty payload has no columns.
func ParseCSVResult(payload string) ([]string, [][]string, error) {
	if payload == "" {
		return nil, nil, nil
	}
	records, err := csv.NewReader(strings.NewReader(payload)).ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV result: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, nil
	}
	return records[0], records[1:], nil
}

// Result renders an execution result.
//
// JSON mode prints the whole result record. Other modes render the rows,
// or a one-line summary for statements that return no columns. A failed
// result is reported on the error stream and returned as an error.
func (r *Renderer) Result(res core.ExecuteResult) error {
	if r.EffectiveMode() == ModeJSON {
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return err
		}
		if !res.Success {
			return fmt.Errorf("query failed: %s", res.Error)
		}
		return nil
	}

	if !res.Success {
		return fmt.Errorf("query failed: %s", res.Error)
	}

	if res.ResultFormat != "" && res.ResultFormat != core.FormatCSV {
		r.Println(res.SQLReturn)
		return nil
	}
	cols, rows, err := ParseCSVResult(res.SQLReturn)
	if err != nil {
		return err
	}
	if len(cols) == 0 {
		r.Success(fmt.Sprintf("OK (%d rows)", res.RowCount))
		return nil
	}
	return r.Table(cols, rows)
}
