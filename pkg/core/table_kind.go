package core

import "strings"

// TableKind classifies a catalog entry.
type TableKind int

const (
	// TableKindUnknown marks a catalog tag that is not in the known vocabulary.
	// Such entries are excluded from both table and view listings.
	TableKindUnknown TableKind = iota
	TableKindTable
	TableKindView
)

// Object types accepted when building a definition.
const (
	ObjectTable = "table"
	ObjectView  = "view"
)

// knownTags maps upper-cased warehouse catalog tags to their classification.
// New vendor tags must be added here explicitly.
var knownTags = map[string]TableKind{
	"MANAGED_TABLE":     TableKindTable,
	"BASE TABLE":        TableKindTable,
	"TABLE":             TableKindTable,
	"EXTERNAL_TABLE":    TableKindTable,
	"VIEW":              TableKindView,
	"DYNAMIC_TABLE":     TableKindView,
	"MATERIALIZED_VIEW": TableKindView,
}

// ClassifyTag maps a raw catalog type tag to a TableKind.
// Matching is case-insensitive and ignores surrounding whitespace.
func ClassifyTag(tag string) TableKind {
	if kind, ok := knownTags[strings.ToUpper(strings.TrimSpace(tag))]; ok {
		return kind
	}
	return TableKindUnknown
}

// String returns the framework name for the kind.
func (k TableKind) String() string {
	switch k {
	case TableKindTable:
		return ObjectTable
	case TableKindView:
		return ObjectView
	default:
		return "unknown"
	}
}
