package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goseps/seps"
)

// defaultTemplate mirrors seps.DefaultConfig in template form.
const defaultTemplate = `split:
    mode: process
    tones:
        C: "#00ffff"
        M: "#ff00ff"
        Y: "#ffff00"
        K: "#000000"
    threshold: 30
    substrate: "#ffffff"
    angles: [15, 75, 0, 45]
    metric: rgb
screen:
    mode: am
    lpi: 55
    dpi: 1200
    ppi: 300
    hardmix: false
dot:
    shape: round
    modulate: true
    gradient: false
    gain: 0.0
pre:
    grayscale: false
    width: 0
    height: 0
blend: overprint
preview: true
`

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Work with separation template files",
}

var templateInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default template",
	RunE:  runTemplateInit,
}

var templateInitOutput string

func init() {
	templateInitCmd.Flags().StringVarP(&templateInitOutput, "output", "o", "",
		"file to write (default stdout)")
	templateCmd.AddCommand(templateInitCmd)
	rootCmd.AddCommand(templateCmd)
}

func runTemplateInit(cmd *cobra.Command, args []string) error {
	if templateInitOutput == "" {
		fmt.Print(defaultTemplate)
		return nil
	}
	if err := os.WriteFile(templateInitOutput, []byte(defaultTemplate), 0o644); err != nil {
		return fmt.Errorf("writing template: %w", err)
	}
	return nil
}

// templateFile is the YAML schema of a separation template. Every
// section is optional; absent fields keep their defaults. Variant
// names are aliases resolved through the engine registry.
type templateFile struct {
	Split   *templateSplit  `yaml:"split"`
	Screen  *templateScreen `yaml:"screen"`
	Dot     *templateDot    `yaml:"dot"`
	Pre     *templatePre    `yaml:"pre"`
	Blend   string          `yaml:"blend"`
	Preview *bool           `yaml:"preview"`
}

type templateSplit struct {
	Mode      string    `yaml:"mode"`
	Tones     yaml.Node `yaml:"tones"`
	Threshold *float64  `yaml:"threshold"`
	Substrate string    `yaml:"substrate"`
	Angles    []float64 `yaml:"angles"`
	Metric    string    `yaml:"metric"`
}

type templateScreen struct {
	Mode    string   `yaml:"mode"`
	LPI     *float64 `yaml:"lpi"`
	DPI     *float64 `yaml:"dpi"`
	PPI     *float64 `yaml:"ppi"`
	Hardmix *bool    `yaml:"hardmix"`
}

type templateDot struct {
	Shape    string   `yaml:"shape"`
	Modulate *bool    `yaml:"modulate"`
	Gradient *bool    `yaml:"gradient"`
	Gain     *float64 `yaml:"gain"`
}

type templatePre struct {
	Grayscale *bool `yaml:"grayscale"`
	Width     *int  `yaml:"width"`
	Height    *int  `yaml:"height"`
}

// loadTemplate reads a YAML template and resolves it onto the default
// config.
func loadTemplate(path string) (seps.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return seps.Config{}, fmt.Errorf("reading template: %w", err)
	}
	return parseTemplate(data)
}

// parseTemplate resolves template YAML into an engine config: aliases
// through the registry, hex strings into tones, absent fields left at
// their defaults.
func parseTemplate(data []byte) (seps.Config, error) {
	var tf templateFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return seps.Config{}, fmt.Errorf("parsing template: %w", err)
	}

	cfg := seps.DefaultConfig()

	if tf.Split != nil {
		if err := applySplit(&cfg, tf.Split); err != nil {
			return seps.Config{}, err
		}
	}
	if tf.Screen != nil {
		if err := applyScreen(&cfg, tf.Screen); err != nil {
			return seps.Config{}, err
		}
	}
	if tf.Dot != nil {
		if err := applyDot(&cfg, tf.Dot); err != nil {
			return seps.Config{}, err
		}
	}
	if tf.Pre != nil {
		applyPre(&cfg, tf.Pre)
	}

	if tf.Blend != "" {
		blend, err := parseBlend(tf.Blend)
		if err != nil {
			return seps.Config{}, err
		}
		cfg.Blend = blend
	}
	if tf.Preview != nil {
		cfg.Preview = *tf.Preview
	}

	return cfg, nil
}

func applySplit(cfg *seps.Config, t *templateSplit) error {
	if t.Mode != "" {
		mode, err := seps.ResolveSplit(t.Mode)
		if err != nil {
			return err
		}
		cfg.Split.Mode = mode
	}

	tones, err := parseTones(t.Tones)
	if err != nil {
		return err
	}
	if tones != nil {
		cfg.Split.Tones = tones
	}

	if t.Threshold != nil {
		cfg.Split.Threshold = *t.Threshold
	}
	switch t.Substrate {
	case "":
		// keep default
	case "none":
		cfg.Split.Substrate = nil
	default:
		sub, err := seps.ParseTone(t.Substrate)
		if err != nil {
			return err
		}
		cfg.Split.Substrate = &sub
	}
	if len(t.Angles) > 0 {
		cfg.Split.Angles = t.Angles
	}

	switch t.Metric {
	case "", "rgb":
		cfg.Split.Metric = seps.MetricRGB
	case "lab":
		cfg.Split.Metric = seps.MetricLab
	default:
		return fmt.Errorf("unknown metric %q (want rgb or lab)", t.Metric)
	}
	return nil
}

// parseTones decodes an ordered name-to-hex mapping. yaml.Node keeps
// the document order a plain map would lose; channel order is the
// tone order.
func parseTones(node yaml.Node) ([]seps.ToneEntry, error) {
	if node.Kind == 0 {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parsing template: tones must be a mapping")
	}

	tones := make([]seps.ToneEntry, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		tone, err := seps.ParseTone(node.Content[i+1].Value)
		if err != nil {
			return nil, fmt.Errorf("tone %q: %w", name, err)
		}
		tones = append(tones, seps.ToneEntry{Name: name, Tone: tone})
	}
	return tones, nil
}

func applyScreen(cfg *seps.Config, t *templateScreen) error {
	if t.Mode != "" {
		mode, err := seps.ResolveScreen(t.Mode)
		if err != nil {
			return err
		}
		cfg.Screen.Mode = mode
	}
	if t.LPI != nil {
		cfg.Screen.LPI = *t.LPI
	}
	if t.DPI != nil {
		cfg.Screen.DPI = *t.DPI
	}
	if t.PPI != nil {
		cfg.Screen.PPI = *t.PPI
	}
	if t.Hardmix != nil {
		cfg.Screen.Hardmix = *t.Hardmix
	}
	return nil
}

func applyDot(cfg *seps.Config, t *templateDot) error {
	if t.Shape != "" {
		shape, err := seps.ResolveDot(t.Shape)
		if err != nil {
			return err
		}
		cfg.Dot.Shape = shape
	}
	if t.Modulate != nil {
		cfg.Dot.Modulate = *t.Modulate
	}
	if t.Gradient != nil {
		cfg.Dot.Gradient = *t.Gradient
	}
	if t.Gain != nil {
		cfg.Dot.Gain = *t.Gain
	}
	return nil
}

func applyPre(cfg *seps.Config, t *templatePre) {
	if t.Grayscale != nil {
		cfg.Pre.Grayscale = *t.Grayscale
	}
	if t.Width != nil {
		cfg.Pre.Width = *t.Width
	}
	if t.Height != nil {
		cfg.Pre.Height = *t.Height
	}
}

func parseBlend(s string) (seps.BlendMode, error) {
	switch s {
	case "overprint":
		return seps.BlendOverprint, nil
	case "overwrite":
		return seps.BlendOverwrite, nil
	}
	return 0, fmt.Errorf("unknown blend %q (want overprint or overwrite)", s)
}
