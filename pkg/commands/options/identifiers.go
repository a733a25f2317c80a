package options

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// IDOptions
type IDOptions struct {
	ShowID bool
	IDs    []int64
}

func AddShowIDArgs(cmd *cobra.Command, o *IDOptions) {
	cmd.Flags().BoolVarP(&o.ShowID, "show-id", "k", false,
		"Show the ID of each task.")
}

// ParseIDs reads task ids from args. Duplicates are dropped.
func (o *IDOptions) ParseIDs(args []string) error {
	o.IDs = o.IDs[:0]
	seen := make(map[int64]struct{}, len(args))
	for _, a := range args {
		id, err := ParseID(a)
		if err != nil {
			return err
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		o.IDs = append(o.IDs, id)
	}
	if len(o.IDs) == 0 {
		return errors.New("requires a task id")
	}
	return nil
}

// ParseID parses one task id.
func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q", s)
	}
	return id, nil
}
