// Package core defines the shared language of the connector.
//
// This package contains:
//   - Result types returned to the host framework (ExecuteResult, VolumeEntry)
//   - Input types for SQL synthesis (ColumnSpec)
//   - Catalog classification (TableKind)
//   - The generic configuration record handed to adapter factories (AdapterConfig)
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
