package duckdb

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/inodb/vcfcheck/internal/validate"
)

// CachedValidator serves verdicts from the store for unchanged files and
// records fresh verdicts. Fresh runs are buffered until Flush.
// It is safe for concurrent use.
type CachedValidator struct {
	store   *Store
	next    validate.FileValidator
	options string
	logger  *zap.Logger

	mu      sync.Mutex
	pending []Run
}

// NewCachedValidator wraps next. options must identify the validation
// options next runs with (see validate.Options.Key).
func NewCachedValidator(store *Store, next validate.FileValidator, options string) *CachedValidator {
	return &CachedValidator{
		store:   store,
		next:    next,
		options: options,
		logger:  zap.NewNop(),
	}
}

// SetLogger sets the logger for cache warnings.
func (c *CachedValidator) SetLogger(l *zap.Logger) {
	c.logger = l
}

// ValidateFile returns the stored verdict if the file is unchanged since
// it was last validated with the same options, otherwise validates it.
// Stdin and files that cannot be stat'ed bypass the cache.
func (c *CachedValidator) ValidateFile(path string) *validate.Result {
	if path == "-" {
		return c.next.ValidateFile(path)
	}

	fp, err := StatFile(path)
	if err != nil {
		return c.next.ValidateFile(path)
	}

	run, err := c.store.LookupRun(fp, c.options)
	if err != nil {
		c.logger.Warn("result cache lookup failed", zap.String("path", path), zap.Error(err))
	}
	if run != nil {
		c.logger.Debug("using cached verdict",
			zap.String("path", path),
			zap.Time("checked_at", run.CheckedAt))
		run.Result.Path = path
		return run.Result
	}

	res := c.next.ValidateFile(path)
	if ve := res.ValidationError(); ve != nil && ve.Kind == validate.KindIO {
		// I/O failures say nothing about the content.
		return res
	}

	c.mu.Lock()
	c.pending = append(c.pending, Run{
		File:      fp,
		Options:   c.options,
		Result:    res,
		CheckedAt: time.Now(),
	})
	c.mu.Unlock()

	return res
}

// Flush writes buffered runs to the store.
func (c *CachedValidator) Flush() error {
	c.mu.Lock()
	runs := c.pending
	c.pending = nil
	c.mu.Unlock()

	return c.store.WriteRuns(runs)
}
