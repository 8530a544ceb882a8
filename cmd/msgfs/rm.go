package main

import "github.com/spf13/cobra"

var (
	rmQuick     bool
	rmRecursive bool
)

func init() {
	rmCmd.Flags().BoolVar(&rmQuick, "quick", false, "drop the directory entry without deleting the underlying blocks")
	rmCmd.Flags().BoolVarP(&rmRecursive, "recursive", "r", false, "required to remove a directory")
	rootCmd.AddCommand(rmCmd)
}

var rmCmd = &cobra.Command{
	Use:   "rm <path>",
	Short: "remove a file or, with --recursive, a directory tree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fsys, err := openFS(cmd.Context())
		if err != nil {
			return err
		}
		return fsys.Rm(cmd.Context(), args[0], rmQuick, rmRecursive)
	},
}
