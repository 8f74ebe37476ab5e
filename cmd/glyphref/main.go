// Copyright 2025 The glyphref Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Command glyphref prepares the character tables used to train a few-shot
Hangul font generator.

Every artifact is derived from the 11,172 precomposed syllables
(U+AC00..U+D7A3) and keyed by uppercase hex code point.

# Usage

	glyphref [flags] <command>

Build the content/reference mapping from a directory of rendered reference
glyphs (file names like 가.png or AC00.png):

	glyphref -refs datasets/reference_font_image -out data mapping

Without -refs or -ref-chars the pool falls back to a greedy reference set
that covers every jamo.

# Commands

	mapping   cr_mapping.json (or .msgpack): top-K references per content character
	refset    refset.json: greedy reference set and the jamo it covers
	decomp    de.json: [lead, vowel+19, trail+47] per syllable, verified against NFD before writing
	tags      structure_tags.json: 0 lead+vowel, 1 with trail, 2 other
	split     train_unis.json / val_unis.json: seeded 80/20 split
	charset   total_korean.txt: every syllable in code point order
	all       decomp, tags, split, charset and mapping
	lookup    print mapping entries whose key starts with the given hex prefix
	inspect   interactive: type characters to see their decomposition and references

# Configuration

Defaults come from a TOML file, created on first run at
~/.config/glyphref/config.toml unless -config points elsewhere:

	[mapping]
	top_k = 3
	max_depth = 1
	workers = 4
	skip_missing = false
	format = "json"

	[refset]
	max_count = 18
	max_depth = 1

	[split]
	seed = 42
	train_ratio = 0.8

	[output]
	dir = "."

mapping.max_depth only bounds the coverage printed by inspect; references are
ranked on direct components. Flags given on the command line override the
file, and -rebuild-config rewrites the default file with these values.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/glyphref/internal/logger"
	"github.com/bastiangx/glyphref/pkg/config"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.3.0"
	AppName = "glyphref"
	gh      = "https://github.com/bastiangx/glyphref"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// options are the command line flags; zero values mean "use config".
type options struct {
	configPath string
	outDir     string
	refDir     string
	refChars   string
	inPath     string
	topK       int
	depth      int
	workers    int
	format     string
	seed       int
	skip       bool
}

func main() {
	sigHandler()

	var opts options
	showVersion := flag.Bool("version", false, "Show current version")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	rebuildConfig := flag.Bool("rebuild-config", false, "Rewrite the default config.toml with builtin defaults and exit")
	flag.StringVar(&opts.configPath, "config", "", "Path to a TOML config file")
	flag.StringVar(&opts.outDir, "out", "", "Output directory for artifacts")
	flag.StringVar(&opts.refDir, "refs", "", "Directory of reference glyph images (<char>.png or <HEX>.png)")
	flag.StringVar(&opts.refChars, "ref-chars", "", "Reference characters given inline, e.g. \"가각나한\"")
	flag.StringVar(&opts.inPath, "in", "", "Mapping file for lookup (default <out>/cr_mapping.<format>)")
	flag.IntVar(&opts.topK, "topk", 0, "References per content character")
	flag.IntVar(&opts.depth, "depth", -1, "Component search depth for refset and inspect")
	flag.IntVar(&opts.workers, "workers", 0, "Parallel workers for the mapping build")
	flag.StringVar(&opts.format, "format", "", "Mapping format: json | msgpack")
	flag.IntVar(&opts.seed, "seed", -1, "Seed for the train/valid split")
	flag.BoolVar(&opts.skip, "skip-missing", false, "Skip content characters missing from the table instead of failing")
	flag.Usage = usage
	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	logger.Setup(*debugMode)

	if *rebuildConfig {
		if err := config.RebuildConfigFile(); err != nil {
			log.Fatalf("Failed to rebuild config: %v", err)
		}
		path, _ := config.GetDefaultConfigPath()
		log.Infof("Rebuilt config at %s", path)
		os.Exit(0)
	}

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	cfg, cfgPath, err := config.LoadConfigWithPriority(opts.configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	applyFlags(cfg, opts)
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	log.Debugf("Using config: (%s)", config.GetActiveConfigPath(cfgPath))

	app := newApp(cfg, opts)
	if err := app.run(flag.Arg(0), flag.Args()[1:]); err != nil {
		log.Fatalf("%s: %v", flag.Arg(0), err)
	}
}

func applyFlags(cfg *config.Config, opts options) {
	if opts.outDir != "" {
		cfg.Output.Dir = opts.outDir
	}
	if opts.topK > 0 {
		cfg.Mapping.TopK = opts.topK
	}
	if opts.depth >= 0 {
		cfg.Mapping.MaxDepth = opts.depth
		cfg.RefSet.MaxDepth = opts.depth
	}
	if opts.workers > 0 {
		cfg.Mapping.Workers = opts.workers
	}
	if opts.format != "" {
		cfg.Mapping.Format = opts.format
	}
	if opts.seed >= 0 {
		cfg.Split.Seed = opts.seed
	}
	if opts.skip {
		cfg.Mapping.SkipMissing = true
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [flags] <mapping|refset|decomp|tags|split|charset|all|lookup <hex>|inspect>\n\n", AppName)
	flag.PrintDefaults()
}

func printVersion() {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	l.SetStyles(styles)

	l.Print("")
	l.Print("[ glyphref ] Hangul reference tables for few-shot font generation")
	l.Print("", "version", Version)
	l.Print("")
	l.Print("use -h or --help to see available options")
	l.Print("Github Repo", "gh", gh)
}
