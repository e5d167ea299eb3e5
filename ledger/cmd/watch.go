package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	ledger "github.com/mdhowey/ledgerbin"
	"github.com/mdhowey/ledgerbin/ledger/binary"
	"github.com/mdhowey/ledgerbin/ledger/text"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

var watchInterval time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch <ledger-file> <cache-file>",
	Args:  cobra.ExactArgs(2),
	Short: "Watch a ledger file and keep its binary cache up to date",
	RunE: func(cmd *cobra.Command, args []string) error {
		return watchAndRebuild(cmd.Context(), args[0], args[1], watchInterval)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().DurationVar(&watchInterval, "interval", time.Second, "Poll interval for source modification checks.")
}

// watchAndRebuild polls path's modification time every interval and
// rewrites the cache whenever it changes. limiter caps rebuild
// frequency independently of the poll interval, so a burst of saves
// from an editor (write, write again on format-on-save, write a third
// time on a linter fixup) collapses into a single rebuild rather than
// three.
func watchAndRebuild(ctx context.Context, path, cachePath string, interval time.Duration) error {
	limiter := rate.NewLimiter(rate.Every(2*time.Second), 1)

	var lastMod time.Time
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	rebuild := func() error {
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		if !info.ModTime().After(lastMod) {
			return nil
		}
		if !limiter.Allow() {
			return nil
		}
		lastMod = info.ModTime()

		j := ledger.NewJournal()
		if err := text.ParseFile(path, j); err != nil {
			fmt.Fprintf(os.Stderr, "watch: %s: %v\n", path, err)
			return nil
		}

		f, err := os.Create(cachePath)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := binary.WriteJournal(f, j, binary.Options{}); err != nil {
			return err
		}

		fmt.Printf("rebuilt %s: %d entries\n", cachePath, len(j.Entries))
		return nil
	}

	if err := rebuild(); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := rebuild(); err != nil {
				return err
			}
		}
	}
}
