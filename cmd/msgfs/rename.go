package main

import "github.com/spf13/cobra"

func init() {
	rootCmd.AddCommand(renameCmd)
}

var renameCmd = &cobra.Command{
	Use:   "rename <path> <new-name>",
	Short: "rename an entry in place, without changing its parent directory",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		fsys, err := openFS(cmd.Context())
		if err != nil {
			return err
		}
		return fsys.Rename(cmd.Context(), args[0], args[1])
	},
}
