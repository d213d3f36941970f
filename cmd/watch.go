package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/bep/debounce"
	"github.com/jsphweid/dosrevive/file"
	"github.com/jsphweid/dosrevive/summary"
	"github.com/spf13/cobra"
)

var watchInterval time.Duration
var watchSettle time.Duration

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 250*time.Millisecond, "how often the file is checked")
	watchCmd.Flags().DurationVar(&watchSettle, "settle", 500*time.Millisecond, "quiet time after the last change before decoding")
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Re-decodes a chart file whenever it changes",
	Long:  `Re-decodes a chart file whenever it changes and prints its summary, so broken saves show up immediately.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return watch(ctx, args[0])
	},
}

func watch(ctx context.Context, path string) error {
	decoder, err := newDecoder()
	if err != nil {
		return err
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	lastMod := info.ModTime()

	reload := func() {
		chart, err := file.ReadChartFile(decoder, path)
		if err != nil {
			fmt.Printf("%v\n", err)
			return
		}
		s := summary.Create("", chart)
		s.Path = path
		printSummary(s)
	}
	reload()

	debounced := debounce.New(watchSettle)
	ticker := time.NewTicker(watchInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			info, err := os.Stat(path)
			if err != nil {
				fmt.Printf("Could not stat %v: %v\n", path, err)
				continue
			}
			if info.ModTime().After(lastMod) {
				lastMod = info.ModTime()
				debounced(reload)
			}
		}
	}
}
