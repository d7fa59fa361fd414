package main

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"os"

	"github.com/spf13/cobra"
)

var identifyCmd = &cobra.Command{
	Use:   "identify",
	Short: "Inspect image format, size and color model",
	RunE:  runIdentify,
}

var identifyOpts struct {
	input string
	json  bool
}

func init() {
	f := identifyCmd.Flags()
	f.StringVarP(&identifyOpts.input, "input", "i", "", "source image (required)")
	f.BoolVar(&identifyOpts.json, "json", false, "machine-readable output")
	_ = identifyCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(identifyCmd)
}

func runIdentify(cmd *cobra.Command, args []string) error {
	f, err := os.Open(identifyOpts.input)
	if err != nil {
		return fmt.Errorf("opening %s: %w", identifyOpts.input, err)
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", identifyOpts.input, err)
	}

	model := colorModelName(cfg.ColorModel)

	if identifyOpts.json {
		out := struct {
			File   string `json:"file"`
			Format string `json:"format"`
			Width  int    `json:"width"`
			Height int    `json:"height"`
			Model  string `json:"colorModel"`
		}{identifyOpts.input, format, cfg.Width, cfg.Height, model}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Printf("File:        %s\n", identifyOpts.input)
	fmt.Printf("Format:      %s\n", format)
	fmt.Printf("Dimensions:  %d x %d\n", cfg.Width, cfg.Height)
	fmt.Printf("Color model: %s\n", model)
	return nil
}

func colorModelName(m color.Model) string {
	switch m {
	case color.RGBAModel, color.RGBA64Model:
		return "RGBA"
	case color.NRGBAModel, color.NRGBA64Model:
		return "NRGBA"
	case color.GrayModel, color.Gray16Model:
		return "grayscale"
	case color.CMYKModel:
		return "CMYK"
	case color.YCbCrModel:
		return "YCbCr"
	}
	if _, ok := m.(color.Palette); ok {
		return "paletted"
	}
	return "unknown"
}
