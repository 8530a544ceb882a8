package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/comicalcache/msgfs"
)

var (
	downloadCompress string
	downloadKey      string
)

func init() {
	downloadCmd.Flags().StringVar(&downloadCompress, "compress", "", "compression codec the file was uploaded with (none, zstd, xz)")
	downloadCmd.Flags().StringVar(&downloadKey, "key", "", "encryption key (overrides MSGFS_KEY)")
	rootCmd.AddCommand(downloadCmd)
}

var downloadCmd = &cobra.Command{
	Use:   "download <remote-path> <local-file>",
	Short: "download a file from the channel's filesystem to a local path",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		remotePath, localPath := args[0], args[1]

		key, err := encryptionKey(downloadKey)
		if err != nil {
			return err
		}

		comp, err := msgfs.CompressorByName(downloadCompress)
		if err != nil {
			return err
		}

		fsys, err := openFS(cmd.Context())
		if err != nil {
			return err
		}

		f, err := os.Create(localPath)
		if err != nil {
			return err
		}
		defer f.Close()

		bar := log.NewTransfer(fmt.Sprintf("download %s", remotePath))
		defer func() { bar.Finish(err == nil) }()

		opts := []msgfs.DownloadOption{msgfs.WithDownloadProgress(bar.Set)}
		if comp != nil {
			opts = append(opts, msgfs.WithDownloadCompressor(comp))
		}

		err = fsys.Download(cmd.Context(), remotePath, f, key, opts...)
		return err
	},
}
