package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/comicalcache/msgfs"
)

func init() {
	rootCmd.AddCommand(lsCmd)
}

var lsCmd = &cobra.Command{
	Use:   "ls [path]",
	Short: "list a directory's contents, recursively",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "/"
		if len(args) == 1 {
			path = args[0]
		}

		fsys, err := openFS(cmd.Context())
		if err != nil {
			return err
		}

		entries, err := fsys.List(cmd.Context(), path)
		if err != nil {
			return err
		}

		for _, e := range entries {
			unit := "bytes"
			if e.Kind == msgfs.Directory {
				unit = "entries"
			}
			fmt.Printf("%s\t%d %s\n", e.Path, e.Size, unit)
		}
		return nil
	},
}
