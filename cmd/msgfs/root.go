package main

import (
	"context"
	"fmt"
	"os"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/comicalcache/msgfs"
	"github.com/comicalcache/msgfs/discordblob"
	"github.com/comicalcache/msgfs/progress"
)

var (
	flagVerbose bool
	flagJSON    bool
	flagQuiet   bool
)

var log *progress.CLI

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&flagJSON, "json", "j", false, "log in JSON instead of human-readable text")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "disable progress bars")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cli := &progress.CLI{Verbose: flagVerbose, DisableTTY: flagQuiet}
		if flagJSON {
			cli.DisableTTY = true
			logrus.SetFormatter(&logrus.JSONFormatter{})
		} else {
			logrus.SetFormatter(cli)
		}
		logrus.SetLevel(logrus.TraceLevel)
		log = cli
		return nil
	}
}

var rootCmd = &cobra.Command{
	Use:   "msgfs",
	Short: "msgfs treats a Discord text channel as an encrypted, append-only filesystem",
}

// requiredEnv reads a required environment variable, erroring with the
// variable's name if it isn't set.
func requiredEnv(name string) (string, error) {
	v := os.Getenv(name)
	if v == "" {
		return "", fmt.Errorf("%s must be set", name)
	}
	return v, nil
}

// openFS authenticates against Discord, opens the data channel given by
// DATA_CHANNEL_ID, and bootstraps (or resumes) the msgfs tree stored there.
func openFS(ctx context.Context) (*msgfs.FS, error) {
	token, err := requiredEnv("BOT_TOKEN")
	if err != nil {
		return nil, err
	}
	channelID, err := requiredEnv("DATA_CHANNEL_ID")
	if err != nil {
		return nil, err
	}

	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("creating discord session: %w", err)
	}
	if err := session.Open(); err != nil {
		return nil, fmt.Errorf("connecting to discord: %w", err)
	}

	adapter := discordblob.New(session, channelID)
	return msgfs.Open(ctx, adapter)
}

// encryptionKey resolves the shared secret used to derive the AEAD key
// for upload/download/replace: an explicit --key flag value takes
// precedence over the MSGFS_KEY environment variable (SPEC_FULL.md §6:
// "flag overrides env").
func encryptionKey(flagValue string) ([]byte, error) {
	if flagValue != "" {
		return []byte(flagValue), nil
	}
	key, err := requiredEnv("MSGFS_KEY")
	if err != nil {
		return nil, err
	}
	return []byte(key), nil
}
