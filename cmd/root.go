package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jsphweid/dosrevive/constants"
	"github.com/jsphweid/dosrevive/dos"
	"github.com/jsphweid/dosrevive/keyconfig"
	"github.com/jsphweid/dosrevive/model"
	"github.com/spf13/cobra"
)

var keyConfigPath string
var keyKind string

var rootCmd = &cobra.Command{
	Use:   "dosrevive",
	Short: "Revives legacy DOS chart files",
	Long: `Decodes charts saved in the legacy pipe-delimited DOS notation, including
the abbreviated pre-3.3.0 labels, and converts chart positions to frames and times.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&keyConfigPath, "key-config", constants.GetKeyConfigPath(), "YAML file with key layouts (built-in layouts when empty)")
	rootCmd.PersistentFlags().StringVar(&keyKind, "key-kind", "", "key kind for charts that do not declare one")
}

func newDecoder() (*dos.Decoder, error) {
	keys, err := keyconfig.Load(keyConfigPath)
	if err != nil {
		return nil, err
	}
	d := dos.NewDecoder(keys)
	d.KeyKind = keyKind
	return d, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printSummary(s model.ChartSummary) {
	fmt.Printf("%v: score %v, %v pages, %v notes, %v freezes, %v chords, bpm %v, length %v\n",
		s.Path, s.ScoreNumber, s.NumPages, s.NumNotes, s.NumFreezes, s.NumChords, s.Bpms, s.Length)
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
