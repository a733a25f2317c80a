package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/todo/pkg/view"
)

// QueryOptions select and order the listed tasks.
type QueryOptions struct {
	Search string
	Sort   string
	Desc   bool
}

func AddQueryArgs(cmd *cobra.Command, o *QueryOptions) {
	cmd.Flags().StringVarP(&o.Search, "search", "s", "",
		"Only show tasks whose title or description contains this text.")
	cmd.Flags().StringVar(&o.Sort, "sort", string(view.SortCreatedAt),
		"Sort by createdAt, important or title.")
	cmd.Flags().BoolVar(&o.Desc, "desc", false,
		"Sort in descending order.")
}

// Query converts the flags into a view.Query.
func (o *QueryOptions) Query() (view.Query, error) {
	field, err := view.ParseSortField(o.Sort)
	if err != nil {
		return view.Query{}, err
	}
	return view.Query{Keyword: o.Search, Field: field, Ascending: !o.Desc}, nil
}
