// Command summarize prints an extractive summary of a web page or a local
// text file.
//
//	summarize [--sentences N] [--json] URL
//	summarize [--sentences N] [--json] --file article.txt
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	flag "github.com/spf13/pflag"

	"web-summarizer/internal/config"
	"web-summarizer/internal/domain/entity"
	"web-summarizer/internal/infra/fetcher"
	"web-summarizer/internal/infra/nlp"
	"web-summarizer/internal/observability/logging"
	"web-summarizer/internal/usecase/summarize"
)

type options struct {
	sentences  int
	file       string
	jsonOutput bool
	configPath string
	url        string
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		color.Red("%v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts, os.Stdout); err != nil {
		color.Red("Error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("summarize", flag.ContinueOnError)
	fs.IntVarP(&opts.sentences, "sentences", "n", config.DefaultSentenceCount, "number of sentences in the summary")
	fs.StringVarP(&opts.file, "file", "f", "", "summarize a local text file instead of a URL")
	fs.BoolVar(&opts.jsonOutput, "json", false, `print {"summary": ...} instead of plain text`)
	fs.StringVar(&opts.configPath, "config", os.Getenv("CONFIG_FILE"), "path to an optional YAML config file")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: summarize [flags] URL\n       summarize [flags] --file PATH\n\nFlags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	switch {
	case opts.file != "" && fs.NArg() > 0:
		return opts, errors.New("pass either a URL or --file, not both")
	case opts.file == "" && fs.NArg() != 1:
		fs.Usage()
		return opts, errors.New("exactly one URL is required")
	case opts.file == "":
		opts.url = fs.Arg(0)
		if err := entity.ValidateURL(opts.url); err != nil {
			return opts, err
		}
	}

	if opts.sentences < 1 || opts.sentences > config.MaxSentenceCountCap {
		return opts, fmt.Errorf("--sentences must be between 1 and %d, got %d", config.MaxSentenceCountCap, opts.sentences)
	}
	return opts, nil
}

func run(ctx context.Context, opts options, out io.Writer) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	// Diagnostics go to stderr so stdout stays the summary alone.
	logger := logging.NewTextLogger()
	slog.SetDefault(logger)
	ctx = logging.WithLogger(ctx, logger)

	res, err := nlp.Init(cfg.NLP)
	if err != nil {
		return err
	}
	f, err := fetcher.New(cfg.Fetcher)
	if err != nil {
		return err
	}
	svc := summarize.NewService(f, summarize.NewSummarizer(res), summarize.NoopMetrics{})

	var summary entity.Summary
	if opts.file != "" {
		data, err := os.ReadFile(opts.file) // #nosec G304 -- user-supplied input file
		if err != nil {
			return err
		}
		summary, err = svc.SummarizeText(ctx, string(data), opts.sentences)
		if err != nil {
			return err
		}
	} else {
		// The spinner shares the terminal with colored output only.
		err = withSpinner("Summarizing "+opts.url, !opts.jsonOutput && !color.NoColor, func() error {
			var err error
			summary, err = svc.SummarizeURL(ctx, opts.url, opts.sentences)
			return err
		})
		if err != nil {
			return err
		}
	}

	return printSummary(out, summary, opts.jsonOutput)
}

// withSpinner runs fn while an indeterminate spinner turns on stderr.
func withSpinner(description string, enabled bool, fn func() error) error {
	if !enabled {
		return fn()
	}

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(color.CyanString(description)),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetWidth(20),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetRenderBlankState(true),
	)

	done := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				_ = bar.Add(1)
			}
		}
	}()

	err := fn()
	close(done)
	<-stopped
	_ = bar.Clear()
	return err
}

func printSummary(out io.Writer, summary entity.Summary, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetEscapeHTML(false)
		return enc.Encode(map[string]string{"summary": summary.Text()})
	}

	heading := color.New(color.FgCyan, color.Bold)
	if _, err := heading.Fprintf(out, "Summary (%d of %d sentences)\n", len(summary.Sentences), summary.Stats.Sentences); err != nil {
		return err
	}
	for i, s := range summary.Sentences {
		if _, err := fmt.Fprintf(out, "%s %s\n", color.GreenString("%d.", i+1), s); err != nil {
			return err
		}
	}
	return nil
}
