package main

import "github.com/spf13/cobra"

func init() {
	rootCmd.AddCommand(mkdirCmd)
}

var mkdirCmd = &cobra.Command{
	Use:   "mkdir <path>",
	Short: "create a new, empty directory (path must end in '/')",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fsys, err := openFS(cmd.Context())
		if err != nil {
			return err
		}
		return fsys.Mkdir(cmd.Context(), args[0])
	},
}
