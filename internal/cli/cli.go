package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"gettext-extractor/internal/catalog"
	"gettext-extractor/internal/config"
	"gettext-extractor/internal/extract"
	"gettext-extractor/internal/filewalker"
	"gettext-extractor/internal/gettext"
	"gettext-extractor/internal/parser"
	"gettext-extractor/internal/store"
	"gettext-extractor/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Execute runs the CLI application.
func Execute() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "gettext-extractor",
		Short: "Extract translatable strings from JavaScript sources",
		Long: `Finds calls to a gettext-style keyword in JavaScript and TypeScript files,
evaluates each call against stand-in translation functions and writes the
resulting messages as a POT template, JSON records or TSV.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := zerolog.InfoLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			zerolog.SetGlobalLevel(level)
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(extractCmd())
	return rootCmd
}

// extractOptions are the resolved settings of one extract run.
type extractOptions struct {
	Paths       []string
	Keyword     string
	Domain      string
	Format      catalog.Format
	Output      string
	Project     string
	Workers     int
	MaxFileSize int
	KeepGoing   bool
	Store       bool
	DatabaseURL string
}

func extractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <path>...",
		Short: "Extract messages from source files and directories",
		Long: fmt.Sprintf(`Walks the given files and directories, extracts every call to the keyword
and writes the merged catalog. Each file either yields all of its messages or
fails as a whole; by default the first failing file stops the run.

Handled extensions: %s
Keyword methods: %s`,
			strings.Join(parser.Extensions(), " "),
			strings.Join(gettext.Names(), ", ")),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := resolveOptions(cmd, args, config.Load())
			if err != nil {
				return err
			}

			ctx, cancel := setupContext()
			defer cancel()

			return runExtract(ctx, opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringP("keyword", "k", "", "Translation function name (default $GETTEXT_KEYWORD or gettext)")
	cmd.Flags().StringP("output", "o", "-", "Output file, - for stdout")
	cmd.Flags().StringP("format", "f", "", "Output format: pot, json or tsv (default $OUTPUT_FORMAT or pot)")
	cmd.Flags().String("domain", "", "Catalog domain (default $GETTEXT_DOMAIN or messages)")
	cmd.Flags().String("project", "", "Project-Id-Version written to the POT header")
	cmd.Flags().Int("workers", 0, "Files processed concurrently (default $WORKER_COUNT)")
	cmd.Flags().Bool("keep-going", false, "Continue with the next file when one fails")
	cmd.Flags().Bool("store", false, "Also persist the catalog to PostgreSQL ($DATABASE_URL)")

	return cmd
}

// resolveOptions merges flags over the environment configuration.
func resolveOptions(cmd *cobra.Command, args []string, cfg *config.Config) (extractOptions, error) {
	flags := cmd.Flags()
	opts := extractOptions{
		Paths:       args,
		Keyword:     cfg.Keyword,
		Domain:      cfg.Domain,
		Workers:     cfg.WorkerCount,
		MaxFileSize: cfg.MaxFileSize,
		DatabaseURL: cfg.DatabaseURL,
	}

	if v, _ := flags.GetString("keyword"); v != "" {
		opts.Keyword = v
	}
	if v, _ := flags.GetString("domain"); v != "" {
		opts.Domain = v
	}
	if v, _ := flags.GetInt("workers"); v > 0 {
		opts.Workers = v
	}
	opts.Output, _ = flags.GetString("output")
	opts.Project, _ = flags.GetString("project")
	opts.KeepGoing, _ = flags.GetBool("keep-going")
	opts.Store, _ = flags.GetBool("store")

	format := cfg.OutputFormat
	if v, _ := flags.GetString("format"); v != "" {
		format = v
	}
	f, err := catalog.ParseFormat(format)
	if err != nil {
		return opts, err
	}
	opts.Format = f

	return opts, nil
}

// setupContext creates a cancellable context with signal handling.
func setupContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
			log.Warn().Msg("Received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}

// runExtract handles the `extract` command.
func runExtract(ctx context.Context, opts extractOptions, stdout io.Writer) error {
	extractor := extract.New(gettext.Binding())
	jsParser := parser.NewJSParser(extractor, opts.Keyword, opts.MaxFileSize)

	w := filewalker.NewWalker(jsParser)
	entries, err := w.Walk(opts.Paths...)
	if err != nil {
		return fmt.Errorf("walk input paths: %w", err)
	}

	log.Info().
		Int("files", len(entries)).
		Str("keyword", opts.Keyword).
		Msg("Starting extraction")

	pool := worker.NewPool[filewalker.FileEntry, *parser.ParseResult](opts.Workers,
		func(ctx context.Context, entry filewalker.FileEntry) (*parser.ParseResult, error) {
			return entry.Parser.Parse(ctx, entry.Path)
		},
		worker.WithFailFast(!opts.KeepGoing),
	)
	results := pool.Execute(ctx, entries)

	records, failed, canceled, firstErr := summarize(results)
	if firstErr != nil && !opts.KeepGoing {
		return firstErr
	}

	cat := catalog.Build(opts.Domain, records)
	for _, d := range catalog.Domains(records) {
		if d != opts.Domain {
			log.Warn().Str("domain", d).Msg("Messages for another domain are not written; rerun with --domain")
		}
	}

	if err := writeOutput(opts, cat, records, stdout); err != nil {
		return err
	}

	if opts.Store {
		if err := storeCatalog(ctx, opts.DatabaseURL, cat); err != nil {
			return err
		}
	}

	log.Info().
		Int("files", len(entries)).
		Int("records", len(records)).
		Int("messages", cat.Len()).
		Int("failed", failed).
		Int("canceled", canceled).
		Msg("Extraction complete")

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed, first error: %w", failed, len(entries), firstErr)
	}
	return nil
}

// summarize collects the records of successful files. Files stopped because
// the run was cancelled are counted apart, so firstErr is the failure that
// caused the stop, in input order. Only when every failure is a
// cancellation is the first cancellation reported.
func summarize(results []worker.Task[filewalker.FileEntry, *parser.ParseResult]) (records []extract.Record, failed, canceled int, firstErr error) {
	var firstCancel error
	for _, r := range results {
		switch {
		case r.Err == nil:
			records = append(records, r.Result.Records...)
		case isCancellation(r.Err):
			canceled++
			if firstCancel == nil {
				firstCancel = r.Err
			}
		default:
			failed++
			if firstErr == nil {
				firstErr = r.Err
			}
		}
	}
	if firstErr == nil && firstCancel != nil {
		failed = canceled
		firstErr = firstCancel
	}
	return records, failed, canceled, firstErr
}

func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func writeOutput(opts extractOptions, cat *catalog.Catalog, records []extract.Record, stdout io.Writer) error {
	out := stdout
	if opts.Output != "" && opts.Output != "-" {
		if err := os.MkdirAll(filepath.Dir(opts.Output), 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
		f, err := os.Create(opts.Output)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	var err error
	switch opts.Format {
	case catalog.FormatJSON:
		err = catalog.WriteJSON(out, records)
	case catalog.FormatTSV:
		err = catalog.WriteTSV(out, cat)
	default:
		err = catalog.WritePOT(out, cat, catalog.Header{Project: opts.Project, Created: time.Now()})
	}
	if err != nil {
		return fmt.Errorf("write %s output: %w", opts.Format, err)
	}
	return nil
}

func storeCatalog(ctx context.Context, databaseURL string, cat *catalog.Catalog) error {
	pool, err := store.Connect(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	cs := store.NewCatalogStore(pool)
	if err := cs.EnsureSchema(ctx); err != nil {
		return err
	}
	if _, err := cs.Upsert(ctx, cat); err != nil {
		return fmt.Errorf("store catalog: %w", err)
	}
	return nil
}
