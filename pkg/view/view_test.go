package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"tableflip.dev/todo/pkg/task"
)

func sample() []task.Task {
	return []task.Task{
		{ID: 1, Title: "Buy milk", Description: "2% please", CreatedAt: 30},
		{ID: 2, Title: "call Bob", CreatedAt: 10, Important: true},
		{ID: 3, Title: "Answer email", Description: "MILK supplier", CreatedAt: 20},
		{ID: 4, Title: "water plants", CreatedAt: 40, Important: true},
	}
}

func TestFilterCaseInsensitiveSubstring(t *testing.T) {
	got := Project(sample(), Query{Keyword: "MiLk", Field: SortCreatedAt, Ascending: true})
	assert.Equal(t, []int64{3, 1}, task.IDs(got))

	got = Project(sample(), Query{Keyword: "ob", Field: SortCreatedAt, Ascending: true})
	assert.Equal(t, []int64{2}, task.IDs(got))
}

func TestBlankKeywordKeepsEverything(t *testing.T) {
	for _, kw := range []string{"", "   ", "\t"} {
		got := Project(sample(), Query{Keyword: kw, Field: SortCreatedAt, Ascending: true})
		assert.Equal(t, []int64{2, 3, 1, 4}, task.IDs(got), "keyword %q", kw)
	}
}

func TestSortCreatedAt(t *testing.T) {
	asc := Project(sample(), Query{Field: SortCreatedAt, Ascending: true})
	assert.Equal(t, []int64{2, 3, 1, 4}, task.IDs(asc))

	desc := Project(sample(), Query{Field: SortCreatedAt})
	assert.Equal(t, []int64{4, 1, 3, 2}, task.IDs(desc))
}

func TestSortImportantIsStable(t *testing.T) {
	asc := Project(sample(), Query{Field: SortImportant, Ascending: true})
	assert.Equal(t, []int64{1, 3, 2, 4}, task.IDs(asc))

	// Ties keep input order in both directions.
	desc := Project(sample(), Query{Field: SortImportant})
	assert.Equal(t, []int64{2, 4, 1, 3}, task.IDs(desc))
}

func TestSortTitleUsesCollation(t *testing.T) {
	got := Project(sample(), Query{Field: SortTitle, Ascending: true})
	assert.Equal(t, []string{"Answer email", "Buy milk", "call Bob", "water plants"}, titles(got))

	accents := []task.Task{
		{ID: 1, Title: "fig"},
		{ID: 2, Title: "éclair"},
		{ID: 3, Title: "date"},
	}
	got = Project(accents, Query{Field: SortTitle, Ascending: true})
	assert.Equal(t, []string{"date", "éclair", "fig"}, titles(got))
}

func TestSortTitleRespectsLocale(t *testing.T) {
	tasks := []task.Task{{ID: 1, Title: "öl"}, {ID: 2, Title: "zebra"}}

	und := Projector{Locale: language.Und}.Project(tasks, Query{Field: SortTitle, Ascending: true})
	assert.Equal(t, []string{"öl", "zebra"}, titles(und))

	sv := Projector{Locale: language.Swedish}.Project(tasks, Query{Field: SortTitle, Ascending: true})
	assert.Equal(t, []string{"zebra", "öl"}, titles(sv))
}

func TestProjectIsPure(t *testing.T) {
	in := sample()
	in[0].Steps = []task.Step{{ID: 1, Title: "step"}}
	before := task.CloneAll(in)
	q := Query{Keyword: "l", Field: SortTitle}

	first := Project(in, q)
	second := Project(in, q)
	assert.Equal(t, first, second)
	assert.Equal(t, before, in)

	for i := range first {
		if first[i].ID == 1 {
			first[i].Steps[0].Title = "mutated"
		}
	}
	assert.Equal(t, "step", in[0].Steps[0].Title)
}

func TestProjectEmpty(t *testing.T) {
	assert.Empty(t, Project(nil, DefaultQuery()))
	assert.Equal(t, EmptyNoTasks, Empty(nil, nil))

	none := Project(sample(), Query{Keyword: "zzz"})
	assert.Equal(t, EmptyNoMatches, Empty(sample(), none))
	assert.Equal(t, EmptyNone, Empty(sample(), sample()))
	assert.Equal(t, "No tasks match your search.", EmptyNoMatches.Message())
}

func TestParseSortField(t *testing.T) {
	tests := map[string]SortField{
		"":           SortCreatedAt,
		"createdAt":  SortCreatedAt,
		"CREATED":    SortCreatedAt,
		"important":  SortImportant,
		"Importance": SortImportant,
		" title ":    SortTitle,
	}
	for in, want := range tests {
		got, err := ParseSortField(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseSortField("priority")
	assert.Error(t, err)
}

func TestNextAndLabel(t *testing.T) {
	assert.Equal(t, SortImportant, SortCreatedAt.Next())
	assert.Equal(t, SortTitle, SortImportant.Next())
	assert.Equal(t, SortCreatedAt, SortTitle.Next())

	assert.Equal(t, "created, ascending", Label(DefaultQuery()))
	assert.Equal(t, "importance, descending", Label(Query{Field: SortImportant}))
	assert.Equal(t, "title, ascending", Label(Query{Field: SortTitle, Ascending: true}))
}

func titles(tasks []task.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Title)
	}
	return out
}
