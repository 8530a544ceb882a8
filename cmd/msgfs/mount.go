//go:build mount

package main

import (
	"github.com/hanwen/go-fuse/v2/fs"
	"github.com/spf13/cobra"

	"github.com/comicalcache/msgfs"
	fusebind "github.com/comicalcache/msgfs/fuse"
)

var (
	mountCompress string
	mountKey      string
)

func init() {
	mountCmd.Flags().StringVar(&mountCompress, "compress", "", "compression codec files were uploaded with (none, zstd, xz)")
	mountCmd.Flags().StringVar(&mountKey, "key", "", "encryption key (overrides MSGFS_KEY)")
	rootCmd.AddCommand(mountCmd)
}

var mountCmd = &cobra.Command{
	Use:   "mount <mountpoint> [path]",
	Short: "mount the channel's filesystem (or a subtree of it) read-only over FUSE",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := encryptionKey(mountKey)
		if err != nil {
			return err
		}
		comp, err := msgfs.CompressorByName(mountCompress)
		if err != nil {
			return err
		}

		var path string
		if len(args) == 2 {
			path = args[1]
		}

		fsys, err := openFS(cmd.Context())
		if err != nil {
			return err
		}

		root, err := fusebind.Root(fsys, path, fusebind.Options{Key: key, Compressor: comp})
		if err != nil {
			return err
		}

		server, err := fs.Mount(args[0], root, &fs.Options{})
		if err != nil {
			return err
		}
		server.Wait()
		return nil
	},
}
