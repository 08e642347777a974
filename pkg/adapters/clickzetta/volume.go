package clickzetta

import (
	"context"

	"github.com/leapstack-labs/clickzetta/pkg/core"
	"github.com/leapstack-labs/clickzetta/pkg/session"
)

// Volume listing columns, in order of preference.
var (
	volumeNameColumns = []string{"name", "relative_path", "path"}
	volumeSizeColumns = []string{"size", "size_bytes", "bytes"}
)

// ListVolumeFiles lists the files under directory of a volume or stage.
//
// volumeURI is volume:<scope>://<name> or @<stage>; directory is relative
// to it and may be empty.
func (c *Connector) ListVolumeFiles(ctx context.Context, volumeURI, directory string) ([]core.VolumeEntry, error) {
	uri, err := NormalizeVolumeURI(volumeURI, directory)
	if err != nil {
		return nil, err
	}
	loc, err := parseVolumeLocation(uri)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	table, err := c.runLocked(ctx, loc.listStatement())
	if err != nil {
		return nil, err
	}

	nameCol := firstColumn(table, volumeNameColumns)
	sizeCol := firstColumn(table, volumeSizeColumns)

	entries := make([]core.VolumeEntry, 0, table.Len())
	for i := range table.Len() {
		var entry core.VolumeEntry
		if v, ok := table.Value(i, nameCol); ok {
			entry.Name = cellString(v)
		}
		if v, ok := table.Value(i, sizeCol); ok {
			entry.Size, _ = toInt64(v)
		}
		if entry.Name == "" {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func firstColumn(t *session.Table, candidates []string) string {
	for _, col := range candidates {
		if t.HasColumn(col) {
			return col
		}
	}
	return ""
}
