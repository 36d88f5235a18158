package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginatorWindow(t *testing.T) {
	p, err := NewPaginator(testKey, Options{DefaultSize: 2, MaxSize: 3})
	require.NoError(t, err)

	w, err := p.Window(Request{})
	require.NoError(t, err)
	assert.Equal(t, Window{Offset: 0, Limit: 2}, w)

	w, err = p.Window(Request{Size: 50})
	require.NoError(t, err)
	assert.Equal(t, 3, w.Limit)

	_, err = p.Window(Request{Token: "garbage"})
	require.Error(t, err)
}

func TestBuildWalksAllPages(t *testing.T) {
	p, err := NewPaginator(testKey, Options{DefaultSize: 2})
	require.NoError(t, err)

	all := []int{1, 2, 3, 4, 5}
	var seen []int
	req := Request{}

	for i := 0; i < 10; i++ {
		w, err := p.Window(req)
		require.NoError(t, err)

		end := w.Offset + w.Limit + 1
		if end > len(all) {
			end = len(all)
		}
		page, err := Build(p, w, all[w.Offset:end])
		require.NoError(t, err)

		seen = append(seen, page.Items...)
		if !page.HasMore() {
			break
		}
		req = Request{Token: page.NextPageToken}
	}

	assert.Equal(t, all, seen)
}

func TestBuildLastPageHasNoToken(t *testing.T) {
	p, err := NewPaginator(testKey, Options{})
	require.NoError(t, err)

	page, err := Build(p, Window{Offset: 0, Limit: 20}, []string{"a"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, page.Items)
	assert.False(t, page.HasMore())
}
