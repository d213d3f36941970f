package cmd

import (
	"fmt"
	"math"
	"strconv"

	"github.com/jsphweid/dosrevive/file"
	"github.com/jsphweid/dosrevive/timing"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(positionCmd)
}

var positionCmd = &cobra.Command{
	Use:   "position <file> <page> <position>",
	Short: "Converts a chart position to frames and time",
	Long: `Converts a position to the frame and time it is reached at.
Pages are counted from 0, positions are units within the page (384 per page).`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		page, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("page must be an integer: %w", err)
		}
		position, err := parsePosition(args[2])
		if err != nil {
			return err
		}
		return printPosition(args[0], page, position)
	},
}

// parsePosition accepts finite numbers only.
func parsePosition(s string) (float64, error) {
	position, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(position) || math.IsInf(position, 0) {
		return 0, fmt.Errorf("position must be a finite number, got %q", s)
	}
	return position, nil
}

func printPosition(path string, page int, position float64) error {
	decoder, err := newDecoder()
	if err != nil {
		return err
	}
	chart, err := file.ReadChartFile(decoder, path)
	if err != nil {
		return err
	}

	p := timing.Describe(chart.Timings, page, position, chart.BlankFrame)
	fmt.Printf("frame: %v\n", p.Frame)
	fmt.Printf("seconds: %v\n", p.Seconds)
	fmt.Printf("time: %v\n", p.Time)
	return nil
}
