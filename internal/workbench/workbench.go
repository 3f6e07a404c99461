// Package workbench is the input/output adapter around the cipher engine.
// It validates raw user input, runs the engine, and keeps the persistence
// collaborator up to date.
package workbench

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/robalyx/cipherlab/internal/analysis"
	"github.com/robalyx/cipherlab/internal/cipher"
	"github.com/robalyx/cipherlab/internal/numeral"
	"github.com/robalyx/cipherlab/internal/storage"
	"github.com/robalyx/cipherlab/internal/storage/types"
	"go.uber.org/zap"
)

const (
	// LargeInputThreshold is the length above which an input counts as large.
	LargeInputThreshold = 1000
	// AnalysisThreshold is the length above which decryptions carry a frequency analysis.
	AnalysisThreshold = 50
	// DefaultShift is the shift value a cleared form starts with.
	DefaultShift = "3"
)

// Messages shown in place of a live result.
const (
	InvalidShiftSentinel     = "خطا: مقدار جابجایی نامعتبر"
	ProcessingFailedSentinel = "خطا در رمزگذاری"
	ProcessingNotice         = "در حال پردازش..."
)

// Messages for rejected explicit requests.
const (
	emptyInputMessage   = "لطفاً متنی برای رمزگذاری/رمزگشایی وارد کنید."
	invalidShiftMessage = "لطفاً مقدار جابجایی معتبری وارد کنید (هر عدد غیر صفر)."
)

// Request is raw user input.
type Request struct {
	Text  string
	Shift string
}

// Result is the outcome of an explicit encrypt or decrypt request.
type Result struct {
	Output        string
	Mode          cipher.Mode
	Alphabet      cipher.AlphabetID
	AlphabetSize  int
	OriginalShift int
	AppliedShift  int
	Characters    int
	Duration      time.Duration
	// Large is set for inputs that warrant a processing indicator.
	Large bool
	// Frequencies is the analysis of a long decryption's output.
	Frequencies []analysis.FrequencyEntry
}

// LiveResult is the outcome of a live request.
type LiveResult struct {
	Seq    uint64
	Output string
	Large  bool
	Err    error
}

// Options configures a Workbench.
type Options struct {
	// CompleteArabicDigits also maps the Arabic-Indic digit one in shift values.
	CompleteArabicDigits bool
}

// Workbench runs user requests against the engine.
type Workbench struct {
	engine     *cipher.Engine
	store      storage.Store
	opts       Options
	logger     *zap.Logger
	liveSeq    atomic.Uint64
	liveMu     sync.Mutex
	liveCancel context.CancelFunc
}

// New creates a Workbench. A nil store keeps nothing.
func New(engine *cipher.Engine, store storage.Store, opts Options, logger *zap.Logger) *Workbench {
	if store == nil {
		store = storage.NewNop()
	}

	return &Workbench{
		engine: engine,
		store:  store,
		opts:   opts,
		logger: logger.Named("workbench"),
	}
}

// Validate checks a request and returns its parsed shift.
func (w *Workbench) Validate(req Request) (int, error) {
	if strings.TrimFunc(req.Text, unicode.IsSpace) == "" {
		return 0, cipher.ErrEmptyInput
	}
	return w.parseShift(req.Shift)
}

// Encrypt encrypts the request text.
func (w *Workbench) Encrypt(ctx context.Context, req Request, opts ...cipher.BatchOption) (*Result, error) {
	return w.run(ctx, req, cipher.ModeEncrypt, opts)
}

// Decrypt decrypts the request text.
func (w *Workbench) Decrypt(ctx context.Context, req Request, opts ...cipher.BatchOption) (*Result, error) {
	return w.run(ctx, req, cipher.ModeDecrypt, opts)
}

func (w *Workbench) run(
	ctx context.Context, req Request, mode cipher.Mode, opts []cipher.BatchOption,
) (*Result, error) {
	shift, err := w.Validate(req)
	if err != nil {
		return nil, err
	}

	w.supersedeLive()
	w.saveInput(ctx, req.Text)

	start := time.Now()
	output, err := w.engine.BatchProcess(ctx, req.Text, shift, mode, opts...)
	if err != nil {
		return nil, err
	}
	duration := time.Since(start)

	summary := w.engine.Describe(req.Text, shift)
	characters := utf8.RuneCountInString(req.Text)

	result := &Result{
		Output:        output,
		Mode:          mode,
		Alphabet:      summary.Alphabet,
		AlphabetSize:  summary.AlphabetSize,
		OriginalShift: shift,
		AppliedShift:  summary.AppliedShift,
		Characters:    characters,
		Duration:      duration,
		Large:         characters > LargeInputThreshold,
	}

	if mode == cipher.ModeDecrypt && characters > AnalysisThreshold {
		result.Frequencies = analysis.Analyze(output)
	}

	entry := &types.HistoryEntry{
		ID:           uuid.New(),
		Mode:         mode,
		Alphabet:     summary.Alphabet,
		AppliedShift: summary.AppliedShift,
		Characters:   characters,
		Preview:      analysis.Preview(req.Text, analysis.PreviewLength),
		CreatedAt:    start,
	}
	if err := w.store.AddHistory(ctx, entry); err != nil {
		w.logger.Warn("Failed to record history", zap.Error(err))
	}

	w.logger.Debug("Processed request",
		zap.String("mode", mode.String()),
		zap.String("alphabet", summary.Alphabet.String()),
		zap.Int("characters", characters),
		zap.Int("appliedShift", summary.AppliedShift),
		zap.Duration("duration", duration))

	return result, nil
}

// Live encrypts the request the way an as-you-type preview does. Failures are
// reported through the sentinel output strings. Every call supersedes the
// previous one: an in-flight call is cancelled and reports false, meaning its
// result is stale and should be dropped. Explicit Encrypt and Decrypt calls
// supersede in-flight live calls the same way.
func (w *Workbench) Live(ctx context.Context, req Request, opts ...cipher.BatchOption) (LiveResult, bool) {
	seq := w.liveSeq.Add(1)
	ctx, cancel := context.WithCancel(ctx)

	w.liveMu.Lock()
	if w.liveCancel != nil {
		w.liveCancel()
	}
	w.liveCancel = cancel
	w.liveMu.Unlock()

	defer func() {
		w.liveMu.Lock()
		if w.liveSeq.Load() == seq {
			w.liveCancel = nil
		}
		w.liveMu.Unlock()
		cancel()
	}()

	result := LiveResult{Seq: seq}
	w.saveInput(ctx, req.Text)

	if strings.TrimFunc(req.Text, unicode.IsSpace) == "" {
		return result, w.isCurrent(seq)
	}

	shift, err := w.parseShift(req.Shift)
	if err != nil {
		result.Output = InvalidShiftSentinel
		result.Err = err
		return result, w.isCurrent(seq)
	}

	result.Large = utf8.RuneCountInString(req.Text) > LargeInputThreshold

	output, err := w.engine.BatchProcess(ctx, req.Text, shift, cipher.ModeEncrypt, opts...)
	if err != nil {
		result.Output = ProcessingFailedSentinel
		result.Err = err
	} else {
		result.Output = output
	}

	fresh := w.isCurrent(seq)
	if !fresh {
		w.logger.Debug("Dropping superseded live result", zap.Uint64("seq", seq))
	}

	return result, fresh
}

// Restore returns the last saved input for replay at startup.
func (w *Workbench) Restore(ctx context.Context) (string, bool, error) {
	text, found, err := w.store.LastInput(ctx)
	if err != nil {
		return "", false, fmt.Errorf("failed to restore input: %w", err)
	}
	return text, found, nil
}

// History lists recent operations, newest first.
func (w *Workbench) History(ctx context.Context, limit int) ([]*types.HistoryEntry, error) {
	entries, err := w.store.History(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	return entries, nil
}

// UserMessage returns the text shown to a user for a request error.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, cipher.ErrEmptyInput):
		return emptyInputMessage
	case errors.Is(err, cipher.ErrInvalidShift):
		return invalidShiftMessage
	case errors.Is(err, cipher.ErrProcessingFailed):
		return ProcessingFailedSentinel
	default:
		return err.Error()
	}
}

// parseShift normalizes numeral glyphs and parses a nonzero shift.
func (w *Workbench) parseShift(raw string) (int, error) {
	if w.opts.CompleteArabicDigits {
		raw = numeral.ToASCIIDigitsComplete(raw)
	} else {
		raw = numeral.ToASCIIDigits(raw)
	}

	shift, err := numeral.ParseShift(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", cipher.ErrInvalidShift, err)
	}
	if shift == 0 {
		return 0, cipher.ErrInvalidShift
	}

	return shift, nil
}

func (w *Workbench) saveInput(ctx context.Context, text string) {
	if err := w.store.SaveInput(ctx, text); err != nil {
		w.logger.Warn("Failed to save input", zap.Error(err))
	}
}

// supersedeLive marks any in-flight live call as stale so it cannot
// overwrite the result of an explicit request.
func (w *Workbench) supersedeLive() {
	w.liveMu.Lock()
	defer w.liveMu.Unlock()

	w.liveSeq.Add(1)
	if w.liveCancel != nil {
		w.liveCancel()
		w.liveCancel = nil
	}
}

func (w *Workbench) isCurrent(seq uint64) bool {
	return w.liveSeq.Load() == seq
}
