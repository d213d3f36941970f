package cmd

import (
	"fmt"

	"github.com/jsphweid/dosrevive/file"
	"github.com/jsphweid/dosrevive/midi"
	"github.com/jsphweid/dosrevive/sample"
	"github.com/spf13/cobra"
)

var exportPage int

func init() {
	exportCmd.Flags().IntVar(&exportPage, "page", -1, "only export this page (from 0) with its two-beat count-in")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export <file> <out.mid>",
	Short: "Exports a chart as a MIDI file",
	Long:  `Exports a chart as a Standard MIDI File, one key per lane, for auditioning.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return export(args[0], args[1])
	},
}

func export(path string, out string) error {
	decoder, err := newDecoder()
	if err != nil {
		return err
	}
	chart, err := file.ReadChartFile(decoder, path)
	if err != nil {
		return err
	}

	mf, err := midi.Export(chart)
	if err != nil {
		return err
	}
	if exportPage >= 0 {
		if exportPage >= len(chart.Pages) {
			return fmt.Errorf("chart has %v pages", len(chart.Pages))
		}
		from, to := sample.PageWindow(exportPage)
		mf = sample.Create(mf, from, to)
	}

	if err := mf.WriteFile(out); err != nil {
		return fmt.Errorf("Write failed for midi file: %w", err)
	}
	fmt.Printf("Wrote %v\n", out)
	return nil
}
