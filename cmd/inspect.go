package cmd

import (
	"fmt"
	"os"

	"github.com/jsphweid/dosrevive/dos"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Shows which notation a chart file uses",
	Long:  `Shows the prefix, version and labels of a chart file without building the chart.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return inspect(args[0])
	},
}

func inspect(path string) error {
	dat, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	doc, err := dos.Parse(string(dat))
	if err != nil {
		return err
	}

	n := doc.Notation
	fmt.Printf("prefix: %q\n", n.Prefix)
	fmt.Printf("version: %q\n", n.Version)
	fmt.Printf("abbreviated labels: %v\n", n.Legacy)
	fmt.Printf("labels: %v\n", n.Labels)
	if len(n.Unknown) > 0 {
		fmt.Printf("skipped: %v\n", n.Unknown)
	}
	return nil
}
