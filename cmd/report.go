package cmd

import (
	"fmt"

	"github.com/jsphweid/dosrevive/file"
	"github.com/jsphweid/dosrevive/model"
	"github.com/jsphweid/dosrevive/timing"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report <dir>",
	Short: "Reports on a directory of charts",
	Long:  `Decodes every chart file under dir and prints totals without touching the library.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return report(args[0])
	},
}

type chartsReport struct {
	numFiles    int
	numFailed   int
	numPages    int
	numNotes    int
	numFreezes  int
	numChords   int
	totalSecs   float64
	longest     model.ChartSummary
	scoreCounts map[int]int
	chordCounts map[string]int
}

func analyzeCharts(summaries []model.ChartSummary, failed int) chartsReport {
	report := chartsReport{
		numFiles:    len(summaries) + failed,
		numFailed:   failed,
		scoreCounts: make(map[int]int),
		chordCounts: make(map[string]int),
	}
	for _, s := range summaries {
		report.numPages += s.NumPages
		report.numNotes += s.NumNotes
		report.numFreezes += s.NumFreezes
		report.numChords += s.NumChords
		report.totalSecs += s.Seconds
		report.scoreCounts[s.ScoreNumber] += 1
		for key, n := range s.ChordCounts {
			report.chordCounts[key] += n
		}
		if s.Seconds > report.longest.Seconds {
			report.longest = s
		}
	}
	return report
}

func report(dir string) error {
	decoder, err := newDecoder()
	if err != nil {
		return err
	}
	paths, err := file.GatherChartPaths(dir, 0)
	if err != nil {
		return err
	}
	summaries, failures := summarizeAll(decoder, paths)
	r := analyzeCharts(summaries, len(failures))

	fmt.Printf("report.numFiles: %v\n", r.numFiles)
	fmt.Printf("report.numFailed: %v\n", r.numFailed)
	fmt.Printf("report.numPages: %v\n", r.numPages)
	fmt.Printf("report.numNotes: %v\n", r.numNotes)
	fmt.Printf("report.numFreezes: %v\n", r.numFreezes)
	fmt.Printf("report.numChords: %v\n", r.numChords)
	fmt.Printf("report.totalTime: %v\n", timing.SecondsToTimeStr(r.totalSecs))
	fmt.Printf("report.scoreCounts: %v\n", r.scoreCounts)
	fmt.Printf("report.chordCounts: %v\n", r.chordCounts)
	if r.longest.Path != "" {
		fmt.Printf("report.longest: %v (%v)\n", r.longest.Path, r.longest.Length)
	}
	return nil
}
