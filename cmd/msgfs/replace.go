package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/comicalcache/msgfs"
)

var (
	replaceCompress string
	replaceQuick    bool
	replaceKey      string
)

func init() {
	replaceCmd.Flags().StringVar(&replaceCompress, "compress", "", "compression codec to apply before encryption (none, zstd, xz)")
	replaceCmd.Flags().BoolVar(&replaceQuick, "quick", false, "drop the old file's directory entry without deleting its underlying blocks")
	replaceCmd.Flags().StringVar(&replaceKey, "key", "", "encryption key (overrides MSGFS_KEY)")
	rootCmd.AddCommand(replaceCmd)
}

var replaceCmd = &cobra.Command{
	Use:   "replace <local-file> <remote-path>",
	Short: "overwrite an existing remote file with new contents (not atomic: see docs)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		localPath, remotePath := args[0], args[1]

		f, err := os.Open(localPath)
		if err != nil {
			return err
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil {
			return err
		}

		key, err := encryptionKey(replaceKey)
		if err != nil {
			return err
		}

		comp, err := msgfs.CompressorByName(replaceCompress)
		if err != nil {
			return err
		}

		fsys, err := openFS(cmd.Context())
		if err != nil {
			return err
		}

		var opts []msgfs.UploadOption
		if comp != nil {
			opts = append(opts, msgfs.WithCompressor(comp))
		}

		return fsys.Replace(cmd.Context(), f, info.Size(), remotePath, key, replaceQuick, opts...)
	},
}
