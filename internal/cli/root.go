// Package cli wires configuration, logging and the engine into cobra commands.
package cli

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"docqa/internal/chunker"
	"docqa/internal/config"
	"docqa/internal/ingest"
	"docqa/internal/service"
	"docqa/internal/tui"
)

type globalOptions struct {
	configPath string
	verbose    bool
}

// NewRootCommand builds the docqa command tree.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}
	root := &cobra.Command{
		Use:   "docqa [paths...]",
		Short: "Ask questions about plain-text documents",
		Long: `Indexes the given files, directories or globs with TF-IDF and opens an
interactive prompt that answers questions with passages quoted from the documents.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts, args)
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to YAML config file (default: $DOCQA_CONFIG, ./config.yaml or ~/.config/docqa/config.yaml)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newAskCommand(opts), newChunksCommand(opts))
	return root
}

type app struct {
	cfg    *config.AppConfig
	log    *logrus.Logger
	loader *ingest.Loader
	engine *service.Engine
}

func setup(cmd *cobra.Command, opts *globalOptions) (*app, error) {
	var (
		cfg *config.AppConfig
		err error
	)
	if opts.configPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(opts.configPath)
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	config.ApplyEnv(cfg)

	log, err := newLogger(cmd.ErrOrStderr(), cfg.Log, opts.verbose)
	if err != nil {
		return nil, err
	}

	ch, err := chunker.NewWindowChunker(cfg.Chunker.ChunkSize, cfg.Chunker.Overlap)
	if err != nil {
		return nil, err
	}
	loader := ingest.NewLoader(ingest.NewTextCache(), log)
	engine, err := service.NewEngine(ch, loader, service.Options{
		TopK:          cfg.Retrieval.TopK,
		ConcatLimit:   cfg.Answer.ConcatLimit,
		SnippetLimit:  cfg.Answer.SnippetLimit,
		VocabularyCap: cfg.Index.VocabularyCap,
		Workers:       cfg.Index.Workers,
		Stopwords:     cfg.StopwordList(),
	}, log)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, log: log, loader: loader, engine: engine}, nil
}

func newLogger(out io.Writer, cfg config.LogConfig, verbose bool) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetOutput(out)
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	if verbose {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)
	if cfg.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	return log, nil
}

func runTUI(cmd *cobra.Command, opts *globalOptions, paths []string) error {
	a, err := setup(cmd, opts)
	if err != nil {
		return err
	}
	msgs, err := a.engine.IngestPaths(cmd.Context(), paths)
	for _, m := range msgs {
		a.log.Debug(m)
	}
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}
	stats, _ := a.engine.Stats()
	header := fmt.Sprintf("%d document(s), %d chunk(s), %d term(s)", stats.Documents, stats.Chunks, stats.VocabularySize)

	_, err = tea.NewProgram(tui.New(a.engine, header), tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout())).Run()
	return err
}

func joinPages(pages []int) string {
	if len(pages) == 0 {
		return "-"
	}
	parts := make([]string, len(pages))
	for i, p := range pages {
		parts[i] = fmt.Sprint(p)
	}
	return strings.Join(parts, ",")
}
