package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/bisscrape"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := bisscrape.SnapshotFilter{Limit: c.Limit}
	if c.Name != "" {
		filter.Name = &c.Name
	}
	if c.Run != "" {
		filter.RunID = &c.Run
	}

	snapshots, err := deps.Snapshots.FindSnapshots(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bisscrape.ErrorMessage(err))
		return err
	}

	if len(snapshots) == 0 {
		fmt.Fprintln(deps.Stdout, "No snapshots found. Use 'bisscrape full --db <path>' to store some.")
		return nil
	}

	for _, s := range snapshots {
		fmt.Fprintf(deps.Stdout, "%s  %s  %-16s %3d items  %s\n",
			s.StoredAt.Format(time.DateTime), s.RunID, s.Character.Name, s.Character.ItemCount(), s.ContentHash)
	}

	return nil
}
