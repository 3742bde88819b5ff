package roster

import (
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		url        string
		wantName   string
		wantCached bool
	}{
		{
			name:     "builtin field",
			wantName: "builtin:2024",
		},
		{
			name:       "file",
			path:       "field.json",
			wantName:   "field.json",
			wantCached: true,
		},
		{
			name:       "url wins over path",
			path:       "field.json",
			url:        "http://example.com/field.json",
			wantName:   "http://example.com/field.json",
			wantCached: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := test.NewNullLogger()
			source, err := Open(tt.path, tt.url, logger)
			require.NoError(t, err)

			_, cached := source.(*CachedSource)
			assert.Equal(t, tt.wantCached, cached)
			assert.Equal(t, tt.wantName, source.Name())
		})
	}
}
