package match

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scoredItem struct {
	Name  string
	Value int
}

func byValue(_ context.Context, item scoredItem) (Score, error) {
	return Score{Overall: item.Value}, nil
}

func TestRank_SortsDescendingAndFilters(t *testing.T) {
	items := []scoredItem{
		{"low", 10},
		{"high", 90},
		{"mid", 55},
		{"cutoff", 30},
	}

	ranked, err := Rank(context.Background(), items, byValue, 30, 10)
	require.NoError(t, err)

	require.Len(t, ranked, 3)
	assert.Equal(t, "high", ranked[0].Item.Name)
	assert.Equal(t, "mid", ranked[1].Item.Name)
	assert.Equal(t, "cutoff", ranked[2].Item.Name)
}

func TestRank_StableOnTies(t *testing.T) {
	items := []scoredItem{
		{"first", 50},
		{"second", 50},
		{"third", 50},
	}

	ranked, err := Rank(context.Background(), items, byValue, 30, 10)
	require.NoError(t, err)

	require.Len(t, ranked, 3)
	assert.Equal(t, "first", ranked[0].Item.Name)
	assert.Equal(t, "second", ranked[1].Item.Name)
	assert.Equal(t, "third", ranked[2].Item.Name)
}

func TestRank_Truncates(t *testing.T) {
	var items []scoredItem
	for i := 0; i < 25; i++ {
		items = append(items, scoredItem{Value: 40 + i})
	}

	ranked, err := Rank(context.Background(), items, byValue, 30, 5)
	require.NoError(t, err)

	require.Len(t, ranked, 5)
	assert.Equal(t, 64, ranked[0].Score.Overall)
	assert.Equal(t, 60, ranked[4].Score.Overall)
}

func TestRank_DefaultsOnNonPositiveParams(t *testing.T) {
	var items []scoredItem
	for i := 0; i < 30; i++ {
		items = append(items, scoredItem{Value: 100})
	}

	ranked, err := Rank(context.Background(), items, byValue, 0, 0)
	require.NoError(t, err)
	assert.Len(t, ranked, DefaultLimit)

	ranked, err = Rank(context.Background(), []scoredItem{{Value: DefaultMinScore - 1}}, byValue, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, ranked)
}

func TestRank_EmptyInput(t *testing.T) {
	ranked, err := Rank(context.Background(), nil, byValue, 30, 10)
	require.NoError(t, err)
	assert.Empty(t, ranked)
}

func TestRank_PropagatesScoringError(t *testing.T) {
	wantErr := errors.New("scoring failed")
	_, err := Rank(context.Background(), []scoredItem{{Value: 1}}, func(context.Context, scoredItem) (Score, error) {
		return Score{}, wantErr
	}, 30, 10)
	assert.ErrorIs(t, err, wantErr)
}
