package main

import "github.com/spf13/cobra"

func init() {
	rootCmd.AddCommand(mvCmd)
}

var mvCmd = &cobra.Command{
	Use:   "mv <src> <dest-dir>",
	Short: "move a file or directory into dest-dir, keeping its current name",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		fsys, err := openFS(cmd.Context())
		if err != nil {
			return err
		}
		return fsys.Mv(cmd.Context(), args[0], args[1])
	},
}
