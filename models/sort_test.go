package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSortOrder(t *testing.T) {
	assert.Equal(t, SortMostPopular, ParseSortOrder("most_popular"))
	assert.Equal(t, SortTopRated, ParseSortOrder("top_rated"))

	// Unset or unrecognized values default to most popular.
	assert.Equal(t, SortMostPopular, ParseSortOrder(""))
	assert.Equal(t, SortMostPopular, ParseSortOrder("by_vibes"))
	assert.Equal(t, SortMostPopular, ParseSortOrder("TOP_RATED"))
}

func TestSortOrder_QueryValue(t *testing.T) {
	assert.Equal(t, "popular", SortMostPopular.QueryValue())
	assert.Equal(t, "top_rated", SortTopRated.QueryValue())
}

func TestErrorTaxonomy(t *testing.T) {
	netErr := &NetworkError{Op: "fetch movies", Cause: assertErr("timeout")}
	assert.True(t, IsNetworkError(netErr))
	assert.False(t, IsStoreError(netErr))
	assert.Contains(t, netErr.Error(), "fetch movies")
	assert.Contains(t, netErr.Error(), "timeout")

	storeErr := &StoreError{Op: "commit upsert", Cause: assertErr("disk full")}
	assert.True(t, IsStoreError(storeErr))
	assert.False(t, IsNetworkError(storeErr))
}

type assertErr string

func (e assertErr) Error() string { return string(e) }
