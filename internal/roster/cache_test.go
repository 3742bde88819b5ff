package roster

import (
	"context"
	"errors"
	"testing"

	"github.com/sam-maryland/madness-mcp-server/internal/sim"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingSource records how often it is asked for entrants
type countingSource struct {
	calls    int
	entrants []sim.Entrant
	err      error
}

func (c *countingSource) Name() string { return "counting" }

func (c *countingSource) Entrants(ctx context.Context) ([]sim.Entrant, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return c.entrants, nil
}

func TestCachedSource_HitsAfterFirstLoad(t *testing.T) {
	logger, _ := test.NewNullLogger()
	next := &countingSource{entrants: Field2024()}
	cached, err := NewCachedSource(RosterCacheSize, next, logger)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		entrants, err := cached.Entrants(context.Background())
		require.NoError(t, err)
		assert.Len(t, entrants, 64)
	}

	assert.Equal(t, 1, next.calls)
	hits, misses := cached.Stats()
	assert.Equal(t, int64(2), hits)
	assert.Equal(t, int64(1), misses)
	assert.Equal(t, "counting", cached.Name())
}

func TestCachedSource_ReturnsCopies(t *testing.T) {
	logger, _ := test.NewNullLogger()
	cached, err := NewCachedSource(RosterCacheSize, &countingSource{entrants: Field2024()}, logger)
	require.NoError(t, err)

	first, err := cached.Entrants(context.Background())
	require.NoError(t, err)
	first[0].Name = "Mutated"

	second, err := cached.Entrants(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "UConn", second[0].Name)
}

func TestCachedSource_ErrorsAreNotCached(t *testing.T) {
	logger, _ := test.NewNullLogger()
	next := &countingSource{err: errors.New("boom")}
	cached, err := NewCachedSource(RosterCacheSize, next, logger)
	require.NoError(t, err)

	_, err = cached.Entrants(context.Background())
	assert.Error(t, err)

	next.err = nil
	next.entrants = Field2024()
	entrants, err := cached.Entrants(context.Background())
	require.NoError(t, err)
	assert.Len(t, entrants, 64)
	assert.Equal(t, 2, next.calls)
}

func TestCachedSource_Invalidate(t *testing.T) {
	logger, _ := test.NewNullLogger()
	next := &countingSource{entrants: Field2024()}
	cached, err := NewCachedSource(RosterCacheSize, next, logger)
	require.NoError(t, err)

	_, _ = cached.Entrants(context.Background())
	cached.Invalidate()
	_, _ = cached.Entrants(context.Background())

	assert.Equal(t, 2, next.calls)
}

func TestNewCachedSource_InvalidSize(t *testing.T) {
	logger, _ := test.NewNullLogger()
	_, err := NewCachedSource(0, &countingSource{}, logger)
	assert.Error(t, err)
}
