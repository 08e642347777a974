package clickzetta

import (
	"context"
	"testing"

	"github.com/leapstack-labs/clickzetta/pkg/adapter"
	"github.com/leapstack-labs/clickzetta/pkg/core"
	"github.com/leapstack-labs/clickzetta/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnector_ListVolumeFiles(t *testing.T) {
	tests := []struct {
		name  string
		uri   string
		dir   string
		stmt  string
		table *session.Table
		want  []core.VolumeEntry
	}{
		{
			name: "user volume",
			uri:  "volume:user://~/",
			dir:  "",
			stmt: "LIST USER VOLUME",
			table: tableOf([]string{"name", "size"},
				[]any{"file1.txt", int64(100)},
				[]any{"file2.csv", int64(200)},
			),
			want: []core.VolumeEntry{
				{Name: "file1.txt", Size: 100},
				{Name: "file2.csv", Size: 200},
			},
		},
		{
			name:  "user volume subdirectory",
			uri:   "volume:user://~",
			dir:   "/data/",
			stmt:  "LIST USER VOLUME SUBDIRECTORY 'data/'",
			table: tableOf([]string{"relative_path", "size_bytes"}, []any{"data/a.json", "42"}),
			want:  []core.VolumeEntry{{Name: "data/a.json", Size: 42}},
		},
		{
			name:  "stage",
			uri:   "@stage/",
			dir:   "file.txt",
			stmt:  "LIST '@stage/file.txt'",
			table: tableOf([]string{"name", "size"}, []any{"file.txt", int64(7)}),
			want:  []core.VolumeEntry{{Name: "file.txt", Size: 7}},
		},
		{
			name:  "empty listing",
			uri:   "volume:named://raw",
			stmt:  "LIST VOLUME `raw`",
			table: tableOf([]string{"name", "size"}),
			want:  []core.VolumeEntry{},
		},
		{
			name:  "missing size",
			uri:   "volume:table://orders",
			stmt:  "LIST TABLE VOLUME `orders`",
			table: tableOf([]string{"path"}, []any{"part-0"}, []any{nil}),
			want:  []core.VolumeEntry{{Name: "part-0"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opener := &fakeOpener{newSession: catalogSession(tt.stmt, tt.table)}
			c := newTestConnector(t, opener)

			got, err := c.ListVolumeFiles(context.Background(), tt.uri, tt.dir)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, []string{tt.stmt}, opener.last().Statements())
		})
	}
}

func TestConnector_ListVolumeFilesInvalidURI(t *testing.T) {
	opener := &fakeOpener{}
	c := newTestConnector(t, opener)

	_, err := c.ListVolumeFiles(context.Background(), "invalid_format", "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, adapter.ErrValidation)
	assert.Empty(t, opener.last().Statements())
}
