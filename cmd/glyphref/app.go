package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bastiangx/glyphref/internal/cli"
	"github.com/bastiangx/glyphref/internal/utils"
	"github.com/bastiangx/glyphref/pkg/config"
	"github.com/bastiangx/glyphref/pkg/dataset"
	"github.com/bastiangx/glyphref/pkg/decomp"
	"github.com/bastiangx/glyphref/pkg/hangul"
	"github.com/bastiangx/glyphref/pkg/mapping"
	"github.com/bastiangx/glyphref/pkg/pool"
	"github.com/bastiangx/glyphref/pkg/refset"
	"github.com/charmbracelet/log"
)

var errUsage = errors.New("invalid arguments")

// app runs one command against a loaded config.
type app struct {
	cfg   *config.Config
	opts  options
	table *decomp.Table
}

func newApp(cfg *config.Config, opts options) *app {
	return &app{cfg: cfg, opts: opts}
}

func (a *app) run(cmd string, args []string) error {
	switch cmd {
	case "mapping":
		return a.mapping()
	case "refset":
		return a.refset()
	case "decomp":
		return a.decomp()
	case "tags":
		return a.tags()
	case "split":
		return a.split()
	case "charset":
		return a.charset()
	case "all":
		for _, step := range []func() error{a.decomp, a.tags, a.split, a.charset, a.mapping} {
			if err := step(); err != nil {
				return err
			}
		}
		return nil
	case "lookup":
		if len(args) != 1 {
			return fmt.Errorf("%w: lookup takes one hex prefix", errUsage)
		}
		return a.lookup(args[0])
	case "inspect":
		return a.inspect()
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

func (a *app) outPath(name string) string {
	return filepath.Join(a.cfg.Output.Dir, name)
}

func (a *app) hangulTable() (*decomp.Table, error) {
	if a.table == nil {
		t, err := decomp.HangulTable()
		if err != nil {
			return nil, err
		}
		a.table = t
	}
	return a.table, nil
}

// referencePool resolves the pool from -refs, then -ref-chars, then a greedy
// reference set over the whole syllable block.
func (a *app) referencePool(table *decomp.Table) ([]string, error) {
	var (
		chars []string
		err   error
	)
	switch {
	case a.opts.refDir != "":
		chars, err = pool.FromDir(a.opts.refDir)
	case a.opts.refChars != "":
		chars = pool.FromString(a.opts.refChars)
	default:
		chars, _ = refset.BuildReferenceSet(table.Keys(), table, a.cfg.RefSet.MaxCount, a.cfg.RefSet.MaxDepth)
		log.Infof("No reference pool given, using a greedy set of %d characters", len(chars))
	}
	if err != nil {
		return nil, err
	}
	if len(chars) == 0 {
		return nil, pool.ErrEmptyPool
	}

	known := chars[:0:0]
	for _, ch := range chars {
		if table.Has(ch) {
			known = append(known, ch)
			continue
		}
		log.Warnf("Reference %q is not a Hangul syllable, dropped", ch)
	}
	if len(known) == 0 {
		return nil, pool.ErrEmptyPool
	}
	return known, nil
}

func (a *app) mappingFormat() (mapping.FileFormat, error) {
	return mapping.ParseFormat(a.cfg.Mapping.Format)
}

func (a *app) mapping() error {
	table, err := a.hangulTable()
	if err != nil {
		return err
	}
	refs, err := a.referencePool(table)
	if err != nil {
		return err
	}
	format, err := a.mappingFormat()
	if err != nil {
		return err
	}

	log.Debug("Building mapping",
		"contents", table.Len(),
		"refs", len(refs),
		"topK", a.cfg.Mapping.TopK,
		"workers", a.cfg.Mapping.Workers)

	builder := mapping.NewBuilder(table, mapping.Options{
		TopK:        a.cfg.Mapping.TopK,
		Workers:     a.cfg.Mapping.Workers,
		SkipMissing: a.cfg.Mapping.SkipMissing,
	})
	m, stats, err := builder.Build(context.Background(), table.Keys(), refs)
	if err != nil {
		return err
	}
	if stats.Short > 0 {
		log.Warnf("%s entries have fewer than %d references (pool size %d)",
			utils.FormatWithCommas(stats.Short), a.cfg.Mapping.TopK, len(refs))
	}

	path := a.outPath("cr_mapping" + format.Ext())
	if err := mapping.WriteFile(path, m, format); err != nil {
		return err
	}
	log.Infof("C-R mapping done: %s entries -> %s (%v)", utils.FormatWithCommas(stats.Written), path, stats.TimeTaken)
	return nil
}

type refsetArtifact struct {
	Refs       []string `json:"refs"`
	Components []string `json:"components"`
}

func (a *app) refset() error {
	table, err := a.hangulTable()
	if err != nil {
		return err
	}
	candidates := table.Keys()
	if a.opts.refChars != "" {
		candidates = pool.FromString(a.opts.refChars)
	}

	selected, covered := refset.BuildReferenceSet(candidates, table, a.cfg.RefSet.MaxCount, a.cfg.RefSet.MaxDepth)
	art := refsetArtifact{Refs: make([]string, len(selected)), Components: covered.Sorted()}
	for i, ch := range selected {
		if art.Refs[i], err = mapping.KeyOf(ch); err != nil {
			return err
		}
	}

	path := a.outPath("refset.json")
	if err := dataset.WriteJSON(path, art); err != nil {
		return err
	}
	log.Infof("Reference set: %d characters covering %d components -> %s", len(selected), len(covered), path)
	return nil
}

func (a *app) decomp() error {
	table, err := dataset.IndexTable(hangul.Syllables())
	if err != nil {
		return err
	}
	if err := dataset.VerifyIndexTable(table); err != nil {
		return fmt.Errorf("de table verification failed: %w", err)
	}
	path := a.outPath("de.json")
	if err := dataset.WriteJSON(path, table); err != nil {
		return err
	}
	log.Infof("de.json done: %s entries -> %s", utils.FormatWithCommas(table.Len()), path)
	return nil
}

func (a *app) tags() error {
	tags := dataset.StructureTags(hangul.Syllables())
	path := a.outPath("structure_tags.json")
	if err := dataset.WriteJSON(path, tags); err != nil {
		return err
	}
	log.Infof("Structure tags done: %s entries -> %s", utils.FormatWithCommas(tags.Len()), path)
	return nil
}

func (a *app) split() error {
	rng := dataset.NewRand(uint64(a.cfg.Split.Seed))
	train, valid := dataset.Split(hangul.Syllables(), a.cfg.Split.TrainRatio, rng)

	if err := dataset.WriteJSON(a.outPath("train_unis.json"), dataset.HexList(train)); err != nil {
		return err
	}
	if err := dataset.WriteJSON(a.outPath("val_unis.json"), dataset.HexList(valid)); err != nil {
		return err
	}
	log.Infof("Train: %s, Valid: %s characters", utils.FormatWithCommas(len(train)), utils.FormatWithCommas(len(valid)))
	return nil
}

func (a *app) charset() error {
	path := a.outPath("total_korean.txt")
	if err := dataset.WriteText(path, dataset.Charset(hangul.Syllables())); err != nil {
		return err
	}
	log.Infof("Saved %s characters -> %s", utils.FormatWithCommas(hangul.SyllableCount), path)
	return nil
}

func (a *app) lookup(prefix string) error {
	path := a.opts.inPath
	if path == "" {
		format, err := a.mappingFormat()
		if err != nil {
			return err
		}
		path = a.outPath("cr_mapping" + format.Ext())
	}
	m, err := mapping.Load(path)
	if err != nil {
		return err
	}

	ix := mapping.NewIndex(m)
	keys := ix.WithPrefix(prefix)
	if len(keys) == 0 {
		log.Warnf("No entries with prefix %q in %s", prefix, path)
		return nil
	}
	for _, key := range keys {
		refs, _ := ix.Get(key)
		content, _ := mapping.CharOf(key)
		chars := make([]string, len(refs))
		for i, ref := range refs {
			chars[i], _ = mapping.CharOf(ref)
		}
		fmt.Fprintf(os.Stdout, "%s %s -> %s (%s)\n", key, content, strings.Join(refs, " "), strings.Join(chars, ""))
	}
	return nil
}

func (a *app) inspect() error {
	table, err := a.hangulTable()
	if err != nil {
		return err
	}
	refs, err := a.referencePool(table)
	if err != nil {
		return err
	}
	h := cli.NewInputHandler(table, refs, a.cfg.Mapping.TopK, a.cfg.Mapping.MaxDepth)
	return h.Start(os.Stdin)
}
