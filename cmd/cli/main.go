package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"ocr-translate/clipboard"
	"ocr-translate/config"
	"ocr-translate/langs"
	"ocr-translate/runtimeinit"
)

const version = "0.1.0"

type cliOptions struct {
	filePath   string
	targetLang string
	outPath    string
	format     string
	copyResult bool
	verbose    bool
	secretPath string
}

func main() {
	opts := &cliOptions{}
	if err := fang.Execute(context.Background(), newRootCmd(opts), fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}

func runWithArgs(args []string, stdout, stderr io.Writer, opts *cliOptions) error {
	cmd := newRootCmd(opts)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.Execute()
}

func newRootCmd(opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ocr-translate",
		Short: "Recognize text in an image and optionally translate it",
		Long: `ocr-translate sends a PNG or JPG image (up to 2 MB) to the Youdao OCR API,
prints the recognized text and, with --to, translates it with the Youdao translation API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithOptions(cmd, *opts)
		},
	}

	cmd.Flags().StringVar(&opts.filePath, "file", "", "Path to a PNG or JPG image")
	cmd.Flags().StringVar(&opts.targetLang, "to", "", "Translate the text into this language (code or name, see 'languages')")
	cmd.Flags().StringVarP(&opts.outPath, "out", "o", "", "Save the final text to this file or directory")
	cmd.Flags().StringVar(&opts.format, "format", "text", "Output format: text, json or yaml")
	cmd.Flags().BoolVar(&opts.copyResult, "copy", false, "Copy the final text to the clipboard")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose output to stderr")
	cmd.Flags().StringVar(&opts.secretPath, "secret-path", "", "Path to the app secret file (highest precedence)")
	_ = cmd.MarkFlagRequired("file")

	cmd.AddCommand(newLanguagesCmd())
	return cmd
}

func newLanguagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List the supported translation target languages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, l := range langs.All() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-8s %s\n", l.Code, l.Name)
			}
			return nil
		},
	}
}

// stderrNotifier prints warnings always and info only in verbose mode.
type stderrNotifier struct {
	w       io.Writer
	verbose bool
}

func (n stderrNotifier) Info(msg string) {
	if n.verbose {
		fmt.Fprintf(n.w, "[verbose] %s\n", msg)
	}
}

func (n stderrNotifier) Warn(msg string) {
	fmt.Fprintf(n.w, "Warning: %s\n", msg)
}

// Result is the structured output of --format json|yaml.
type Result struct {
	Source         string  `json:"source" yaml:"source"`
	ExtractedText  string  `json:"extracted_text" yaml:"extracted_text"`
	TranslatedText string  `json:"translated_text,omitempty" yaml:"translated_text,omitempty"`
	TargetLanguage string  `json:"target_language,omitempty" yaml:"target_language,omitempty"`
	SavedTo        string  `json:"saved_to,omitempty" yaml:"saved_to,omitempty"`
	Timestamp      string  `json:"timestamp" yaml:"timestamp"`
	Duration       float64 `json:"duration_seconds" yaml:"duration_seconds"`
	CharCount      int     `json:"character_count" yaml:"character_count"`
}

func runWithOptions(cmd *cobra.Command, opts cliOptions) error {
	stderr := cmd.ErrOrStderr()

	// Configure logging BEFORE any other operations.
	if opts.verbose {
		log.SetOutput(stderr)
		fmt.Fprintf(stderr, "[verbose] Starting ocr-translate\n")
	} else {
		log.SetOutput(io.Discard)
	}

	format := strings.ToLower(opts.format)
	switch format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("unknown format %q (want text, json or yaml)", opts.format)
	}

	target := ""
	if opts.targetLang != "" {
		code, ok := langs.Resolve(opts.targetLang)
		if !ok {
			return fmt.Errorf("unsupported target language %q, run 'ocr-translate languages' for the list", opts.targetLang)
		}
		target = code
	}

	rt, err := runtimeinit.Bootstrap(runtimeinit.Options{
		LoadOptions: config.LoadOptions{SecretPathOverride: opts.secretPath},
		Notifier:    stderrNotifier{w: stderr, verbose: opts.verbose},
	})
	if err != nil {
		return err
	}
	c := rt.Controller

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	start := time.Now()

	if err := c.SelectImage(opts.filePath); err != nil {
		return err
	}
	extracted, err := c.Recognize(ctx)
	if err != nil {
		return fmt.Errorf("OCR failed: %w", err)
	}
	if opts.verbose {
		fmt.Fprintf(stderr, "[verbose] OCR extracted %d characters\n", len([]rune(extracted)))
	}

	if target != "" {
		if _, err := c.Translate(ctx, target); err != nil {
			return fmt.Errorf("translation failed: %w", err)
		}
	}

	final, _ := c.CurrentText()
	result := Result{
		Source:         opts.filePath,
		ExtractedText:  extracted,
		TranslatedText: c.Session().TranslatedText,
		TargetLanguage: target,
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
		Duration:       time.Since(start).Seconds(),
		CharCount:      len([]rune(final)),
	}

	if opts.outPath != "" {
		written, err := c.Save(opts.outPath)
		if err != nil {
			return err
		}
		result.SavedTo = written
	}

	if opts.copyResult {
		if err := clipboard.Write(final); err != nil {
			fmt.Fprintf(stderr, "Warning: %v\n", err)
		}
	}

	return outputResult(cmd.OutOrStdout(), result, final, format)
}

func outputResult(w io.Writer, result Result, text, format string) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(result); err != nil {
			return fmt.Errorf("failed to encode JSON output: %w", err)
		}
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(result); err != nil {
			return fmt.Errorf("failed to encode YAML output: %w", err)
		}
		return encoder.Close()
	default:
		fmt.Fprint(w, text)
		if text != "" && !strings.HasSuffix(text, "\n") {
			fmt.Fprintln(w)
		}
	}
	return nil
}
