package mapping

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bastiangx/glyphref/internal/logger"
	"github.com/bastiangx/glyphref/pkg/decomp"
	"github.com/bastiangx/glyphref/pkg/refset"
	"github.com/charmbracelet/log"
)

const progressEvery = 1000

// Options controls a mapping build.
type Options struct {
	TopK        int
	Workers     int
	SkipMissing bool // log and skip characters missing from the table instead of failing
}

// Builder selects references for every content character.
type Builder struct {
	table  *decomp.Table
	opts   Options
	logger *log.Logger
}

// BuildStats summarizes a finished build.
type BuildStats struct {
	Contents  int
	Written   int
	Skipped   int
	Short     int // entries with fewer than TopK references
	TimeTaken time.Duration
}

type result struct {
	key  string
	refs []string
	skip bool
}

// NewBuilder creates a builder over a read-only table.
func NewBuilder(table *decomp.Table, opts Options) *Builder {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Builder{
		table:  table,
		opts:   opts,
		logger: logger.New("mapping"),
	}
}

// Build ranks pool against every content character. Content characters are
// independent, so they are spread over Options.Workers goroutines; results
// land by index, which keeps the output in contents order.
func (b *Builder) Build(ctx context.Context, contents, pool []string) (*Mapping, BuildStats, error) {
	start := time.Now()
	stats := BuildStats{Contents: len(contents)}

	poolKeys := make(map[string]string, len(pool))
	for _, ref := range pool {
		key, err := KeyOf(ref)
		if err != nil {
			return nil, stats, fmt.Errorf("reference %q: %w", ref, err)
		}
		if !b.table.Has(ref) {
			return nil, stats, fmt.Errorf("reference pool: %w: %q", decomp.ErrLookup, ref)
		}
		poolKeys[ref] = key
	}

	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	results := make([]result, len(contents))
	jobs := make(chan int)
	var done atomic.Int64
	var wg sync.WaitGroup

	for range b.opts.Workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				res, err := b.selectOne(contents[i], pool, poolKeys)
				if err != nil {
					cancel(err)
					return
				}
				results[i] = res
				if n := done.Add(1); n%progressEvery == 0 {
					b.logger.Debugf("%d/%d content characters done", n, len(contents))
				}
			}
		}()
	}

feed:
	for i := range contents {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if err := context.Cause(ctx); err != nil {
		return nil, stats, err
	}

	m := New(len(contents))
	for _, res := range results {
		if res.skip {
			stats.Skipped++
			continue
		}
		if len(res.refs) < b.opts.TopK {
			stats.Short++
		}
		m.Set(res.key, res.refs)
	}
	stats.Written = m.Len()
	stats.TimeTaken = time.Since(start)

	b.logger.Debug("Mapping built",
		"table", b.table.Name(),
		"contents", stats.Contents,
		"written", stats.Written,
		"skipped", stats.Skipped,
		"took", stats.TimeTaken)
	return m, stats, nil
}

func (b *Builder) selectOne(content string, pool []string, poolKeys map[string]string) (result, error) {
	key, err := KeyOf(content)
	if err != nil {
		return result{}, fmt.Errorf("content %q: %w", content, err)
	}
	refs, err := refset.SelectReferences(content, pool, b.table, b.opts.TopK)
	if err != nil {
		if b.opts.SkipMissing && errors.Is(err, decomp.ErrLookup) {
			b.logger.Warnf("Skipping %s (%s): %v", key, content, err)
			return result{key: key, skip: true}, nil
		}
		return result{}, err
	}
	hex := make([]string, len(refs))
	for i, ref := range refs {
		hex[i] = poolKeys[ref]
	}
	return result{key: key, refs: hex}, nil
}
