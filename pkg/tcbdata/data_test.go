package tcbdata

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildParse(t *testing.T) {
	data := Build(TypePage, "cs3v8ab1ub0k1o1hvdpg", 2)
	assert.Equal(t, "page cs3v8ab1ub0k1o1hvdpg 2", string(data))

	typ, args, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, TypePage, typ)
	assert.Equal(t, []string{"cs3v8ab1ub0k1o1hvdpg", "2"}, args)

	typ, args, err = Parse(Build(TypeJoined))
	require.NoError(t, err)
	assert.Equal(t, TypeJoined, typ)
	assert.Empty(t, args)
}

func TestParse_Malformed(t *testing.T) {
	for _, data := range [][]byte{nil, []byte("   "), []byte(strings.Repeat("x", MaxLen+1))} {
		_, _, err := Parse(data)
		assert.ErrorIs(t, err, ErrMalformed)
	}
}

func ids(items []PageItem) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.MessageID
	}
	return out
}

func TestSearchPage(t *testing.T) {
	p := SearchPage{Title: "q"}
	for id := 1; id <= 7; id++ {
		p.Items = append(p.Items, PageItem{MessageID: id})
	}
	assert.Equal(t, 3, p.Pages(3))

	items, page := p.Page(0, 3)
	assert.Equal(t, []int{1, 2, 3}, ids(items))
	assert.Equal(t, 0, page)

	items, page = p.Page(2, 3)
	assert.Equal(t, []int{7}, ids(items))
	assert.Equal(t, 2, page)

	items, page = p.Page(9, 3)
	assert.Equal(t, []int{7}, ids(items))
	assert.Equal(t, 2, page)

	items, _ = SearchPage{}.Page(0, 3)
	assert.Empty(t, items)
}
