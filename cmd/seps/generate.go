package main

import (
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/jpeg"

	"github.com/spf13/cobra"
	"golang.org/x/image/tiff"

	"github.com/goseps/seps"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate separations from an image",
	Long: `Generate decodes an image, runs the separation pipeline under the
given template (or the default process/AM recipe), and writes one
halftone bitmap per ink channel into the output directory, plus the
colorized preview when enabled.`,
	RunE: runGenerate,
}

var generateOpts struct {
	input     string
	template  string
	output    string
	format    string
	splits    bool
	preview   bool
	autoTones int
	workers   int
	verbose   bool
}

func init() {
	f := generateCmd.Flags()
	f.StringVarP(&generateOpts.input, "input", "i", "", "source image (required)")
	f.StringVarP(&generateOpts.template, "template", "t", "", "separation template YAML")
	f.StringVarP(&generateOpts.output, "output", "o", "seps", "output directory")
	f.StringVar(&generateOpts.format, "format", "tiff", "output format (tiff or png)")
	f.BoolVar(&generateOpts.splits, "splits", false, "also write the raw split planes")
	f.BoolVar(&generateOpts.preview, "preview", false, "also write the colorized preview")
	f.IntVar(&generateOpts.autoTones, "auto-tones", 0,
		"replace the tone map with n extracted tones (spot and simulated process only)")
	f.IntVar(&generateOpts.workers, "workers", 0, "worker count (0 = all CPUs)")
	f.BoolVarP(&generateOpts.verbose, "verbose", "v", false, "log pipeline stages to stderr")
	_ = generateCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if generateOpts.format != "tiff" && generateOpts.format != "png" {
		return fmt.Errorf("unknown format %q (want tiff or png)", generateOpts.format)
	}

	cfg := seps.DefaultConfig()
	if generateOpts.template != "" {
		var err error
		cfg, err = loadTemplate(generateOpts.template)
		if err != nil {
			return err
		}
	}
	cfg.Preview = cfg.Preview || generateOpts.preview

	img, err := decodeImage(generateOpts.input)
	if err != nil {
		return err
	}

	if generateOpts.autoTones > 0 {
		if cfg.Split.Mode != seps.SplitSpot && cfg.Split.Mode != seps.SplitSimProcess {
			return fmt.Errorf("--auto-tones only applies to spot and simulated process splits")
		}
		tones, err := seps.ExtractTones(img, generateOpts.autoTones)
		if err != nil {
			return fmt.Errorf("extracting tones: %w", err)
		}
		cfg.Split.Tones = cfg.Split.Tones[:0]
		for i, t := range tones {
			cfg.Split.Tones = append(cfg.Split.Tones,
				seps.ToneEntry{Name: fmt.Sprintf("S%d", i+1), Tone: t})
		}
	}

	opts := []seps.Option{seps.WithWorkers(generateOpts.workers)}
	if generateOpts.verbose {
		opts = append(opts, seps.WithLogger(slog.New(slog.NewTextHandler(os.Stderr,
			&slog.HandlerOptions{Level: slog.LevelDebug}))))
	}

	res, err := seps.Generate(img, cfg, opts...)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	if err := os.MkdirAll(generateOpts.output, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	stem := strings.TrimSuffix(filepath.Base(generateOpts.input),
		filepath.Ext(generateOpts.input))

	for _, sep := range res.Separations {
		name := filepath.Join(generateOpts.output,
			fmt.Sprintf("%s_%s.%s", stem, sep.Name, generateOpts.format))
		if err := writeImage(name, sep.Halftone); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", name)

		if generateOpts.splits {
			name := filepath.Join(generateOpts.output,
				fmt.Sprintf("%s_%s_split.%s", stem, sep.Name, generateOpts.format))
			if err := writeImage(name, sep.Split); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", name)
		}
	}

	if res.Preview != nil && (generateOpts.preview || cfg.Preview) {
		name := filepath.Join(generateOpts.output, "preview."+generateOpts.format)
		if err := writeImage(name, res.Preview); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", name)
	}

	return nil
}

// decodeImage loads any registered raster format.
func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

// writeImage encodes img by the configured output format. Halftones
// are mostly flat white, so deflate compresses them well.
func writeImage(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	switch generateOpts.format {
	case "png":
		err = png.Encode(f, img)
	default:
		err = tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate})
	}
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return nil
}
