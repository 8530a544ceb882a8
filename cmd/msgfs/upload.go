package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/comicalcache/msgfs"
)

var (
	uploadCompress string
	uploadKey      string
)

func init() {
	uploadCmd.Flags().StringVar(&uploadCompress, "compress", "", "compression codec to apply before encryption (none, zstd, xz)")
	uploadCmd.Flags().StringVar(&uploadKey, "key", "", "encryption key (overrides MSGFS_KEY)")
	rootCmd.AddCommand(uploadCmd)
}

var uploadCmd = &cobra.Command{
	Use:   "upload <local-file> <remote-path>",
	Short: "upload a local file to a path in the channel's filesystem",
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

		key, err := encryptionKey(uploadKey)
		if err != nil {
			return err
		}

		comp, err := msgfs.CompressorByName(uploadCompress)
		if err != nil {
			return err
		}

		fsys, err := openFS(cmd.Context())
		if err != nil {
			return err
		}

		bar := log.NewTransfer(fmt.Sprintf("upload %s", remotePath))
		bar.SetTotal(info.Size())
		defer func() { bar.Finish(err == nil) }()

		opts := []msgfs.UploadOption{msgfs.WithUploadProgress(bar.Set)}
		if comp != nil {
			opts = append(opts, msgfs.WithCompressor(comp))
		}

		err = fsys.Upload(cmd.Context(), f, info.Size(), remotePath, key, opts...)
		return err
	},
}
