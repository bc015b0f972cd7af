// Package main is the kotae CLI entry point.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/hyperjump/kotae/internal/answer"
	"github.com/hyperjump/kotae/internal/assistant"
	"github.com/hyperjump/kotae/internal/citation"
	"github.com/hyperjump/kotae/internal/cli"
	"github.com/hyperjump/kotae/internal/config"
	"github.com/hyperjump/kotae/internal/corpus"
	"github.com/hyperjump/kotae/internal/knowledge"
	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/internal/ranking"
	"github.com/hyperjump/kotae/internal/server"
	"github.com/hyperjump/kotae/pkg/utils"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/kotae/config.yaml"

// loadConfig loads config from path. When path is the default, config.yaml in
// the current directory takes precedence if it exists. Environment overrides
// are applied last. Returns the config and the path that was actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				path = fallback
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	if err := config.ApplyEnv(cfg, os.Getenv); err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// loadDotEnv loads .env from the working directory into the environment.
// A missing file is not an error.
func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "ask":
		runAsk()
	case "status":
		runStatus()
	case "version", "--version", "-v":
		fmt.Printf("kotae version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (per-question ranking, skipped records)")
	_ = fs.Parse(os.Args[2:])

	if err := loadDotEnv(); err != nil {
		fmt.Printf("%v\n", err)
		os.Exit(1)
	}
	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	stats := components.Service.Stats()
	logger.Info("knowledge base loaded",
		zap.Int("course_documents", stats.CourseDocuments),
		zap.Int("forum_posts", stats.ForumPosts),
		zap.Int("skipped_records", stats.Load.Course.Skipped+stats.Load.Forum.Skipped),
	)

	srv := server.NewServer(components.Service, &cfg.Server, logger, components.Knowledge.Responses.Apology)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

// printAskUsage prints ask subcommand usage.
func printAskUsage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), "Usage: kotae ask [flags] <question>\n\n")
	fmt.Fprintf(fs.Output(), "The question is all remaining arguments joined by spaces. Quoting is optional.\n\n")
	fs.PrintDefaults()
	fmt.Fprintf(fs.Output(), `
Examples:
  kotae ask should I use docker or podman
  kotae ask "how is GA4 bonus shown on the dashboard?" --output json
  kotae ask --server "" --explain when is the september 2025 exam
`)
}

// buildQuestion joins all positional args with spaces so multi-word questions
// work the same with or without shell quoting.
func buildQuestion(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// askArgsReorder moves any flags (and their values) that appear after the
// question to the front of the slice so that flag.Parse() sees them. Go's flag
// package stops at the first non-flag argument.
func askArgsReorder(args []string) []string {
	for i, a := range args {
		if len(a) > 0 && a[0] == '-' {
			if i == 0 {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, args[:i]...)
			return reordered
		}
	}
	return args
}

func runAsk() {
	fs := flag.NewFlagSet("ask", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path (for local mode)")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = answer locally from the corpus files)")
	outputFormat := fs.String("output", "text", "output format: text (human-readable) or json (parseable)")
	explain := fs.Bool("explain", false, "print the ranking breakdown instead of the answer (local mode only)")
	fs.Usage = func() { printAskUsage(fs) }
	_ = fs.Parse(askArgsReorder(os.Args[2:]))

	question := buildQuestion(fs.Args())
	if question == "" {
		printAskUsage(fs)
		os.Exit(1)
	}
	format, err := cli.ParseOutputFormat(*outputFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *explain && *serverURL != "" {
		fmt.Fprintln(os.Stderr, `--explain needs local mode; pass --server ""`)
		os.Exit(1)
	}

	if *serverURL != "" {
		result, err := cli.NewClient(*serverURL).Ask(question)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Ask failed: %v\n", err)
			os.Exit(1)
		}
		if err := cli.WriteAnswer(os.Stdout, result, format); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Local mode: load the corpus in-process.
	_ = loadDotEnv()
	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if *explain {
		err = cli.WriteExplain(os.Stdout, components.Service.Explain(question), format)
	} else {
		err = cli.WriteAnswer(os.Stdout, components.Service.Answer(question), format)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	serverURL := fs.String("server", "http://localhost:8080", "server URL")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	format, err := cli.ParseOutputFormat(*outputFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	health, err := cli.NewClient(*serverURL).Health()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Status failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteHealth(os.Stdout, health, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

// Components holds initialized services.
type Components struct {
	Knowledge *knowledge.Knowledge
	Store     *corpus.Store
	Service   *assistant.Service
}

// loadKnowledge returns the built-in knowledge, or the overlay at path when set.
func loadKnowledge(path string) (*knowledge.Knowledge, error) {
	if path == "" {
		return knowledge.Default(), nil
	}
	return knowledge.Load(path)
}

// openSources resolves the course and forum files. A kind with no existing
// candidate is omitted and reported at info level.
func openSources(cfg *config.CorpusConfig, logger *zap.Logger) ([]corpus.Source, func(), error) {
	var opened []*corpus.ResolvedSource
	closeAll := func() {
		for _, r := range opened {
			_ = r.Close()
		}
	}
	candidates := []struct {
		kind  models.Kind
		paths []string
	}{
		{models.KindCourse, cfg.CoursePaths},
		{models.KindForum, cfg.ForumPaths},
	}
	var sources []corpus.Source
	for _, c := range candidates {
		r, err := corpus.ResolveSource(c.kind, c.paths)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		if r == nil {
			logger.Info("no data file found", zap.String("kind", string(c.kind)), zap.Strings("candidates", c.paths))
			continue
		}
		logger.Info("loading data file", zap.String("kind", string(c.kind)), zap.String("path", r.Name))
		opened = append(opened, r)
		sources = append(sources, r.Source)
	}
	return sources, closeAll, nil
}

func initializeComponents(cfg *config.Config, logger *zap.Logger) (*Components, error) {
	k, err := loadKnowledge(cfg.Answer.KnowledgePath)
	if err != nil {
		return nil, err
	}

	sources, closeSources, err := openSources(&cfg.Corpus, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data files: %w", err)
	}
	store, err := corpus.Load(sources,
		corpus.WithSeedPosts(cfg.Corpus.SeedPostsOrDefault()),
		corpus.WithLogger(logger),
	)
	closeSources()
	if err != nil {
		return nil, fmt.Errorf("failed to load knowledge base: %w", err)
	}
	for _, loadErr := range store.Stats().Errors {
		logger.Warn("data file read incomplete", zap.String("error", loadErr))
	}

	ranker := ranking.NewRanker(&ranking.RankingConfig{
		TopK:           cfg.Answer.TopK,
		KeywordWeights: k.KeywordWeights,
	})
	svc := assistant.New(store, ranker, answer.NewSynthesizer(k), citation.NewExtractor(),
		assistant.WithLogger(logger),
		assistant.WithTopK(cfg.Answer.TopK),
		assistant.WithLinkLimit(cfg.Answer.LinkLimit),
	)
	return &Components{
		Knowledge: k,
		Store:     store,
		Service:   svc,
	}, nil
}

func printUsage() {
	fmt.Println(`kotae - Course Q&A assistant over course notes and forum posts

Usage:
  kotae server [flags]            Start the HTTP server
  kotae ask [flags] <question>    Ask a question
  kotae status [flags]            Show server health and loaded data
  kotae version                   Show version
  kotae help                      Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/kotae/config.yaml, or ./config.yaml if present)
  --debug            Enable debug logging

Ask Flags:
  --config string    Config file path (for local mode)
  --server string    Server URL (default: http://localhost:8080). Use empty (--server "") to answer locally.
  --output string    Output format: text or json (default: text)
  --explain          Print ranking breakdown (local mode only)

Status Flags:
  --server string    Server URL (default: http://localhost:8080)
  --output string    Output format: text or json (default: text)

Environment:
  PORT               Overrides server.port
  KOTAE_DEBUG        Overrides debug (true/false)
  A .env file in the working directory is loaded first.

Examples:
  kotae server
  kotae ask "Should I use Docker or Podman?"
  kotae ask --output json how is the GA4 bonus shown
  kotae ask --server "" --explain gpt-4o-mini or gpt-3.5-turbo
  kotae status --output json`)
}
