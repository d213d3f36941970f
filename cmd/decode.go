package cmd

import (
	"github.com/jsphweid/dosrevive/file"
	"github.com/jsphweid/dosrevive/summary"
	"github.com/spf13/cobra"
)

var decodeSummaryOnly bool

func init() {
	decodeCmd.Flags().BoolVar(&decodeSummaryOnly, "summary", false, "print a one-line summary instead of the chart")
	rootCmd.AddCommand(decodeCmd)
}

var decodeCmd = &cobra.Command{
	Use:   "decode <file>",
	Short: "Decodes a chart file",
	Long:  `Decodes a chart file and prints the chart as JSON.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return decode(args[0])
	},
}

func decode(path string) error {
	decoder, err := newDecoder()
	if err != nil {
		return err
	}
	chart, err := file.ReadChartFile(decoder, path)
	if err != nil {
		return err
	}
	if decodeSummaryOnly {
		s := summary.Create("", chart)
		s.Path = path
		printSummary(s)
		return nil
	}
	return printJSON(chart)
}
