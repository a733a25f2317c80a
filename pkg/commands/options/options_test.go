package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/todo/pkg/view"
)

func TestParseIDs(t *testing.T) {
	o := &IDOptions{}
	require.NoError(t, o.ParseIDs([]string{"3", " 1 ", "3"}))
	assert.Equal(t, []int64{3, 1}, o.IDs)

	assert.Error(t, o.ParseIDs([]string{"abc"}), "non-numeric id")
	assert.Error(t, o.ParseIDs(nil), "no ids")
}

func TestQueryOptions(t *testing.T) {
	o := &QueryOptions{Search: "milk", Sort: "Title", Desc: true}
	q, err := o.Query()
	require.NoError(t, err)
	assert.Equal(t, view.Query{Keyword: "milk", Field: view.SortTitle, Ascending: false}, q)

	o = &QueryOptions{Sort: "priority"}
	_, err = o.Query()
	assert.Error(t, err, "unknown sort field")
}

func TestLogOptionsResolve(t *testing.T) {
	o := &LogOptions{Level: "debug"}
	level, format := o.Resolve("warn", "json")
	assert.Equal(t, "debug", level)
	assert.Equal(t, "json", format)
}

func TestParseBool(t *testing.T) {
	for _, s := range []string{"y", "Yes", "true", "1"} {
		v, err := ParseBool(s)
		require.NoError(t, err, s)
		assert.True(t, v, s)
	}
	for _, s := range []string{"n", "No", "false", "0"} {
		v, err := ParseBool(s)
		require.NoError(t, err, s)
		assert.False(t, v, s)
	}
	_, err := ParseBool("maybe")
	assert.Error(t, err)
}

func TestHandleErrorPassesThrough(t *testing.T) {
	boom := errors.New("boom")
	o := &OutputOptions{}
	assert.ErrorIs(t, o.HandleError(boom), boom)
	assert.NoError(t, o.HandleError(nil))
}
