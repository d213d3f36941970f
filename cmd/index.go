package cmd

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"github.com/jsphweid/dosrevive/db"
	"github.com/jsphweid/dosrevive/dos"
	"github.com/jsphweid/dosrevive/file"
	"github.com/jsphweid/dosrevive/model"
	"github.com/jsphweid/dosrevive/summary"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(indexCmd)
}

var indexCmd = &cobra.Command{
	Use:   "index <dir> [maxNum]",
	Short: "Adds chart summaries to the library",
	Long:  `Decodes every chart file under dir and stores its summary in the DynamoDB chart library.`,
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var maxNum int
		if len(args) == 2 {
			arg1, err := strconv.Atoi(args[1])
			if err != nil {
				return err
			}
			maxNum = arg1
		}
		return run(args[0], maxNum)
	},
}

// chartId is stable for a path so re-indexing overwrites earlier records.
func chartId(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+abs)).String()
}

func summarizeAll(decoder *dos.Decoder, paths []string) ([]model.ChartSummary, []error) {
	var summaries []model.ChartSummary
	var failures []error
	for i, path := range paths {
		fmt.Printf("Processing %v of %v chart files\n", i+1, len(paths))
		chart, err := file.ReadChartFile(decoder, path)
		if err != nil {
			fmt.Printf("Skipping %v because: %v\n", path, err)
			failures = append(failures, err)
			continue
		}
		s := summary.Create(chartId(path), chart)
		s.Path = path
		summaries = append(summaries, s)
	}
	return summaries, failures
}

func run(dir string, maxNum int) error {
	decoder, err := newDecoder()
	if err != nil {
		return err
	}
	paths, err := file.GatherChartPaths(dir, maxNum)
	if err != nil {
		return err
	}
	summaries, _ := summarizeAll(decoder, paths)

	library, err := db.NewLibrary()
	if err != nil {
		return err
	}
	if err := library.PutChartSummaries(summaries); err != nil {
		return err
	}
	fmt.Printf("Indexed %v of %v chart files\n", len(summaries), len(paths))
	return nil
}
