package cipher

import (
	"context"
	"fmt"
	"iter"
	"runtime"
	"strings"
	"unicode/utf8"

	"github.com/sourcegraph/conc/stream"
	"go.uber.org/zap"
)

const (
	// DefaultWarmupShifts is the number of tables built when the engine starts.
	DefaultWarmupShifts = 100
	// DefaultChunkSize is the number of characters transformed per batch chunk.
	DefaultChunkSize = 1000
	// DefaultYieldThreshold is the text length above which batch runs yield.
	DefaultYieldThreshold = 10000
	// DefaultYieldEvery is the chunk interval between yields.
	DefaultYieldEvery = 10
)

// Options configures an Engine.
type Options struct {
	WarmupShifts   int
	ChunkSize      int
	YieldThreshold int
	YieldEvery     int
	// Workers above one transform batch chunks concurrently.
	Workers int
}

// DefaultOptions returns 100 warm tables, 1000-rune chunks and a single worker.
func DefaultOptions() Options {
	return Options{
		WarmupShifts:   DefaultWarmupShifts,
		ChunkSize:      DefaultChunkSize,
		YieldThreshold: DefaultYieldThreshold,
		YieldEvery:     DefaultYieldEvery,
		Workers:        1,
	}
}

// Summary describes how a shift is applied to a text.
type Summary struct {
	Alphabet     AlphabetID
	AlphabetSize int
	AppliedShift int
}

// Engine performs Caesar substitution over the registered alphabets.
type Engine struct {
	cache  *TableCache
	opts   Options
	logger *zap.Logger
}

// NewEngine creates an Engine and warms up its table cache.
func NewEngine(opts Options, logger *zap.Logger) *Engine {
	defaults := DefaultOptions()
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = defaults.ChunkSize
	}
	if opts.YieldThreshold <= 0 {
		opts.YieldThreshold = defaults.YieldThreshold
	}
	if opts.YieldEvery <= 0 {
		opts.YieldEvery = defaults.YieldEvery
	}
	if opts.Workers <= 0 {
		opts.Workers = defaults.Workers
	}

	logger = logger.Named("cipher")

	return &Engine{
		cache:  NewTableCache(opts.WarmupShifts, logger),
		opts:   opts,
		logger: logger,
	}
}

// Cache exposes the engine's table cache.
func (e *Engine) Cache() *TableCache {
	return e.cache
}

// Describe reports the alphabet detected in text and the shift applied to it.
func (e *Engine) Describe(text string, shift int) Summary {
	alphabet := Lookup(Detect(text))
	return Summary{
		Alphabet:     alphabet.ID,
		AlphabetSize: alphabet.Size(),
		AppliedShift: NormalizeShift(shift, alphabet.Size()),
	}
}

// Transform encrypts or decrypts text in one pass.
// Empty text and a zero shift are returned unchanged.
func (e *Engine) Transform(text string, shift int, mode Mode) string {
	if text == "" || shift == 0 {
		return text
	}
	return e.TransformWith(text, shift, mode, Detect(text))
}

// TransformWith is Transform with the modulus alphabet chosen by the caller.
func (e *Engine) TransformWith(text string, shift int, mode Mode, alphabet AlphabetID) string {
	if text == "" || shift == 0 {
		return text
	}
	return e.table(shift, alphabet).Apply(text, mode)
}

// Chunks returns the transformed text as a lazy sequence of partial results.
// The alphabet is detected once on the whole text, so chunks agree on the modulus.
func (e *Engine) Chunks(text string, shift int, mode Mode, chunkSize int) iter.Seq[string] {
	if chunkSize <= 0 {
		chunkSize = e.opts.ChunkSize
	}

	return func(yield func(string) bool) {
		if text == "" {
			return
		}

		var t *Table
		if shift != 0 {
			t = e.table(shift, Detect(text))
		}

		for _, chunk := range splitChunks(text, chunkSize) {
			if t != nil {
				chunk = t.Apply(chunk, mode)
			}
			if !yield(chunk) {
				return
			}
		}
	}
}

// BatchOption customizes a single BatchProcess call.
type BatchOption func(*batchConfig)

type batchConfig struct {
	chunkSize int
	progress  func(done, total int)
}

// WithChunkSize overrides the engine chunk size for one call.
func WithChunkSize(size int) BatchOption {
	return func(c *batchConfig) {
		if size > 0 {
			c.chunkSize = size
		}
	}
}

// WithProgress registers a callback invoked after every transformed chunk.
func WithProgress(fn func(done, total int)) BatchOption {
	return func(c *batchConfig) {
		c.progress = fn
	}
}

// BatchProcess transforms text in contiguous chunks and concatenates them in order.
// Large inputs yield to the scheduler periodically and observe ctx at those points.
// Any fault inside the run is reported as ErrProcessingFailed.
func (e *Engine) BatchProcess(
	ctx context.Context, text string, shift int, mode Mode, opts ...BatchOption,
) (result string, err error) {
	cfg := batchConfig{chunkSize: e.opts.ChunkSize}
	for _, opt := range opts {
		opt(&cfg)
	}

	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("Batch processing panicked",
				zap.Any("panic", r),
				zap.Int("length", len(text)))

			result = ""
			err = fmt.Errorf("%w: %v", ErrProcessingFailed, r)
		}
	}()

	if text == "" || shift == 0 {
		return text, nil
	}

	total := utf8.RuneCountInString(text)
	if total <= cfg.chunkSize {
		out := e.Transform(text, shift, mode)
		if cfg.progress != nil {
			cfg.progress(1, 1)
		}
		return out, nil
	}

	t := e.table(shift, Detect(text))
	chunks := splitChunks(text, cfg.chunkSize)

	e.logger.Debug("Processing text in batches",
		zap.String("mode", mode.String()),
		zap.Int("characters", total),
		zap.Int("chunks", len(chunks)),
		zap.Int("appliedShift", t.Shift))

	if e.opts.Workers > 1 {
		return e.processConcurrently(ctx, chunks, t, mode, cfg, len(text))
	}

	var b strings.Builder
	b.Grow(len(text))

	for i, chunk := range chunks {
		b.WriteString(t.Apply(chunk, mode))

		if cfg.progress != nil {
			cfg.progress(i+1, len(chunks))
		}

		// Yield on every tenth chunk boundary for very large inputs
		if total > e.opts.YieldThreshold && i%e.opts.YieldEvery == 0 {
			runtime.Gosched()

			if err := ctx.Err(); err != nil {
				return "", fmt.Errorf("%w: %w", ErrProcessingFailed, err)
			}
		}
	}

	return b.String(), nil
}

// processConcurrently transforms chunks on a bounded stream.
// Stream callbacks run in submission order, which keeps the output ordered.
func (e *Engine) processConcurrently(
	ctx context.Context, chunks []string, t *Table, mode Mode, cfg batchConfig, size int,
) (string, error) {
	var b strings.Builder
	b.Grow(size)

	s := stream.New().WithMaxGoroutines(e.opts.Workers)

	var cancelled error
	for i, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			cancelled = err
			break
		}

		s.Go(func() stream.Callback {
			out := t.Apply(chunk, mode)
			return func() {
				b.WriteString(out)
				if cfg.progress != nil {
					cfg.progress(i+1, len(chunks))
				}
			}
		})
	}
	s.Wait()

	if cancelled != nil {
		return "", fmt.Errorf("%w: %w", ErrProcessingFailed, cancelled)
	}

	return b.String(), nil
}

// table resolves the cached table for shift normalized against the alphabet.
func (e *Engine) table(shift int, id AlphabetID) *Table {
	return e.cache.GetOrBuild(NormalizeShift(shift, Lookup(id).Size()))
}

// splitChunks cuts text into pieces of at most size characters.
func splitChunks(text string, size int) []string {
	chunks := make([]string, 0, utf8.RuneCountInString(text)/size+1)

	for len(text) > 0 {
		end, count := 0, 0
		for end < len(text) && count < size {
			_, width := utf8.DecodeRuneInString(text[end:])
			end += width
			count++
		}

		chunks = append(chunks, text[:end])
		text = text[end:]
	}

	return chunks
}
