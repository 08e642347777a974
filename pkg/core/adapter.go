package core

// Result format tags carried on ExecuteResult.ResultFormat.
const (
	FormatCSV = "csv"
)

// AdapterConfig is the generic configuration record a host passes to an
// adapter factory. Params is decoded by the concrete adapter.
type AdapterConfig struct {
	Type   string
	Params map[string]any
}

// ExecuteResult is the outcome of a single executed statement.
// Failures are reported through Success and Error rather than returned errors.
type ExecuteResult struct {
	Success      bool   `json:"success"`
	Error        string `json:"error,omitempty"`
	SQLQuery     string `json:"sql_query"`
	SQLReturn    string `json:"sql_return"`
	RowCount     int64  `json:"row_count"`
	ResultFormat string `json:"result_format"`
}

// ColumnSpec describes one column of a table or view definition.
type ColumnSpec struct {
	Name     string `yaml:"column_name" json:"column_name"`
	DataType string `yaml:"data_type" json:"data_type"`
	Comment  string `yaml:"comment,omitempty" json:"comment,omitempty"`
}

// VolumeEntry is one file reported by a volume or stage listing.
type VolumeEntry struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}
