package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goseps/seps"
)

var tonesCmd = &cobra.Command{
	Use:   "tones",
	Short: "Extract a tone palette from artwork",
	Long: `Tones clusters the colors of an image into a palette suited for a
spot or simulated-process tone map, ordered dominant-first.`,
	RunE: runTones,
}

var tonesOpts struct {
	input string
	count int
	json  bool
}

func init() {
	f := tonesCmd.Flags()
	f.StringVarP(&tonesOpts.input, "input", "i", "", "source image (required)")
	f.IntVarP(&tonesOpts.count, "count", "n", 4, "number of tones")
	f.BoolVar(&tonesOpts.json, "json", false, "machine-readable output")
	_ = tonesCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(tonesCmd)
}

func runTones(cmd *cobra.Command, args []string) error {
	img, err := decodeImage(tonesOpts.input)
	if err != nil {
		return err
	}

	tones, err := seps.ExtractTones(img, tonesOpts.count)
	if err != nil {
		return fmt.Errorf("extracting tones: %w", err)
	}

	if tonesOpts.json {
		type toneJSON struct {
			Name string `json:"name"`
			Hex  string `json:"hex"`
		}
		out := make([]toneJSON, len(tones))
		for i, t := range tones {
			out[i] = toneJSON{Name: fmt.Sprintf("S%d", i+1), Hex: t.Hex()}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	for i, t := range tones {
		fmt.Printf("S%d: %s\n", i+1, t.Hex())
	}
	return nil
}
