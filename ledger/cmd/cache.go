package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/hako/durafmt"
	ledger "github.com/mdhowey/ledgerbin"
	"github.com/mdhowey/ledgerbin/ledger/binary"
	"github.com/mdhowey/ledgerbin/ledger/text"
	"github.com/spf13/cobra"
)

var (
	cacheDebugGuards bool
	cacheCompress    bool
	cacheDir         string
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Build, read, or inspect a binary journal cache",
}

var cacheBuildCmd = &cobra.Command{
	Use:   "build <ledger-file> [cache-file]",
	Args:  cobra.RangeArgs(1, 2),
	Short: "Parse a textual ledger and write its binary cache",
	Long: `Parse a textual ledger and write its binary cache. If
cache-file is omitted, it defaults to <ledger-file>.cache inside the
rc file's cache_dir (or $LEDGER_CONFIG's), which must be set in that
case.`,
	RunE: func(_ *cobra.Command, args []string) error {
		cfg, err := loadRCConfig()
		if err != nil {
			return err
		}
		applyRCDefaults(cfg)

		cacheFile := ""
		if len(args) == 2 {
			cacheFile = args[1]
		} else {
			if cacheDir == "" {
				return fmt.Errorf("cache-file omitted and no cache_dir set in the rc file")
			}
			cacheFile = filepath.Join(cacheDir, filepath.Base(args[0])+".cache")
		}

		start := time.Now()

		j := ledger.NewJournal()
		if err := text.ParseFile(args[0], j); err != nil {
			return err
		}

		f, err := os.Create(cacheFile)
		if err != nil {
			return err
		}
		defer f.Close()

		var w io.Writer = f
		var closeCompressed func() error
		if cacheCompress {
			bw := brotli.NewWriter(f)
			w = bw
			closeCompressed = bw.Close
		}

		// Brotli output isn't seekable, so WriteJournal's back-patching
		// sink falls back to buffering the whole stream in memory; that
		// only matters for very large journals.
		if err := binary.WriteJournal(w, j, binary.Options{DebugGuards: cacheDebugGuards}); err != nil {
			return err
		}
		if closeCompressed != nil {
			if err := closeCompressed(); err != nil {
				return err
			}
		}

		fmt.Printf("wrote %d entries to %s in %s\n", len(j.Entries), cacheFile, durafmt.Parse(time.Since(start)).LimitFirstN(2))
		return nil
	},
}

var cacheInfoCmd = &cobra.Command{
	Use:   "info <cache-file>",
	Args:  cobra.ExactArgs(1),
	Short: "Print summary information about a binary journal cache",
	RunE: func(_ *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		ok, err := binary.Test(f)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%s is not a recognized journal cache", args[0])
		}

		j, _, err := binary.ReadJournal(f, "", nil, binary.Options{DebugGuards: cacheDebugGuards})
		if err != nil {
			return err
		}
		if j == nil {
			fmt.Println("cache is stale relative to its source files")
			return nil
		}

		fmt.Printf("entries: %d\n", len(j.Entries))
		fmt.Printf("accounts: %d\n", j.Master.Count())
		fmt.Printf("commodities: %d\n", len(j.Commodities))
		for _, sf := range j.Sources {
			age := durafmt.Parse(time.Since(sf.ModTime)).LimitFirstN(1)
			fmt.Printf("source: %s (modified %s ago)\n", sf.Path, age)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheBuildCmd)
	cacheCmd.AddCommand(cacheInfoCmd)

	cacheCmd.PersistentFlags().BoolVar(&cacheDebugGuards, "debug-guards", false, "Bracket every string with guard constants for corruption debugging.")
	cacheCmd.PersistentFlags().StringVar(&cacheDir, "cache-dir", "", "Base directory for a bare `cache build` invocation's target file.")
	cacheBuildCmd.Flags().BoolVar(&cacheCompress, "compress", false, "Wrap the cache in brotli compression.")
}
