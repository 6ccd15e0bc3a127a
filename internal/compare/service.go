package compare

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/csvcompare/internal/logging"
	"github.com/JonMunkholm/csvcompare/internal/table"
)

// Input is one side of a comparison: a display name and a way to load it.
type Input struct {
	Name string
	Load func(ctx context.Context) (*table.Table, error)
}

// Snapshot is a finished comparison.
type Snapshot struct {
	ID        uuid.UUID
	File1     string
	File2     string
	Model     *Model
	CreatedAt time.Time
	Duration  time.Duration
}

// Options configures a Service.
type Options struct {
	MaxConcurrent int
	MaxWait       time.Duration
	LoadTimeout   time.Duration
}

// Service runs comparisons and holds the one currently displayed.
//
// A failed comparison never touches the current snapshot. When comparisons
// overlap, the most recently triggered one wins regardless of which finishes
// first, and a snapshot is always installed whole.
type Service struct {
	loader  table.Loader
	limiter *Limiter
	timeout time.Duration
	status  StatusBar

	triggers atomic.Uint64

	mu         sync.RWMutex
	current    *Snapshot
	currentSeq uint64
}

// NewService creates a Service that loads sources through loader.
func NewService(loader table.Loader, opts Options) *Service {
	return &Service{
		loader:  loader,
		limiter: NewLimiter(opts.MaxConcurrent, opts.MaxWait),
		timeout: opts.LoadTimeout,
	}
}

// Compare loads the two sources and installs the result.
func (s *Service) Compare(ctx context.Context, path1, path2 string) (*Snapshot, error) {
	return s.CompareInputs(ctx, s.PathInput(path1), s.PathInput(path2))
}

// PathInput returns an Input that loads path through the service's loader.
func (s *Service) PathInput(path string) Input {
	return Input{
		Name: path,
		Load: func(ctx context.Context) (*table.Table, error) {
			return s.loader.Load(ctx, path)
		},
	}
}

// CompareInputs validates, loads and compares two inputs. On success the
// snapshot becomes current unless a newer comparison was triggered meanwhile.
func (s *Service) CompareInputs(ctx context.Context, in1, in2 Input) (*Snapshot, error) {
	if err := validate(in1, in2); err != nil {
		logging.FromContext(ctx).Warn("comparison rejected", "error", err)
		return nil, err
	}

	seq := s.triggers.Add(1)
	id := uuid.New()
	ctx = logging.WithComparison(ctx, id.String())
	logger := logging.FromContext(ctx)

	if err := s.limiter.Acquire(ctx); err != nil {
		logger.Warn("comparison slot unavailable", "error", err)
		return nil, err
	}
	defer s.limiter.Release()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	logger.Info("comparison started", "file1", in1.Name, "file2", in2.Name)

	left, err := s.load(ctx, 1, in1)
	if err != nil {
		return nil, err
	}
	right, err := s.load(ctx, 2, in2)
	if err != nil {
		return nil, err
	}

	model, err := NewModel(left, right)
	if err != nil {
		logger.Error("model construction failed", "error", err)
		return nil, err
	}

	snap := &Snapshot{
		ID:        id,
		File1:     in1.Name,
		File2:     in2.Name,
		Model:     model,
		CreatedAt: time.Now(),
		Duration:  time.Since(start),
	}

	sum := model.Summary()
	if s.install(seq, snap) {
		logger.Info("comparison installed",
			"pairs", sum.Pairs,
			"columns", sum.Columns,
			"mismatched", sum.Mismatched,
			"duration_ms", snap.Duration.Milliseconds(),
		)
	} else {
		logger.Info("comparison superseded by a newer one", "duration_ms", snap.Duration.Milliseconds())
	}

	return snap, nil
}

func validate(in1, in2 Input) error {
	var missing []int
	if in1.Name == "" || in1.Load == nil {
		missing = append(missing, 1)
	}
	if in2.Name == "" || in2.Load == nil {
		missing = append(missing, 2)
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

func (s *Service) load(ctx context.Context, file int, in Input) (*table.Table, error) {
	logger := logging.FromContext(ctx).With("file", file, "path", in.Name)
	start := time.Now()

	t, err := in.Load(ctx)
	if err != nil {
		lerr := &LoadError{File: file, Path: in.Name, Err: err}
		logger.Error("load failed", "error", err)
		return nil, lerr
	}

	logger.Debug("table loaded",
		"table", t.Name(),
		"rows", t.RowCount(),
		"columns", t.ColumnCount(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return t, nil
}

// install makes snap current if it was triggered after the current one.
func (s *Service) install(seq uint64, snap *Snapshot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq < s.currentSeq {
		return false
	}
	s.current = snap
	s.currentSeq = seq
	s.status.Update(Text(snap.File1), Text(summaryText(snap.Model.Summary())), Text(snap.File2))
	return true
}

func summaryText(sum Summary) string {
	if sum.Identical() {
		return "files are identical"
	}
	return fmt.Sprintf("%d mismatched cells in %d columns", sum.Mismatched, len(sum.MismatchedIn))
}

// Current returns the displayed comparison, or nil before the first success.
func (s *Service) Current() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Lookup returns the current snapshot, checking it against id when id is
// not empty so clients never mix cells of two comparisons.
func (s *Service) Lookup(id string) (*Snapshot, error) {
	snap := s.Current()
	if snap == nil {
		return nil, ErrNoComparison
	}
	if id != "" && id != snap.ID.String() {
		return nil, fmt.Errorf("%w: requested %s, current %s", ErrStaleComparison, id, snap.ID)
	}
	return snap, nil
}

// StatusBar exposes the status bar so the presentation layer can set its own slots.
func (s *Service) StatusBar() *StatusBar { return &s.status }

// LimiterStatus reports in-flight comparisons.
func (s *Service) LimiterStatus() LimiterStatus { return s.limiter.Status() }

// WaitForComparisons blocks until in-flight comparisons finish or ctx ends.
func (s *Service) WaitForComparisons(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}
