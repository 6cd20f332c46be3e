package main

import (
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inodb/vcfcheck/internal/duckdb"
	"github.com/inodb/vcfcheck/internal/metrics"
	"github.com/inodb/vcfcheck/internal/validate"
)

// session wires the validator to the optional result cache and metrics
// recorder for one command invocation.
type session struct {
	logger    *zap.Logger
	validator validate.FileValidator
	store     *duckdb.Store
	cache     *duckdb.CachedValidator
	recorder  *metrics.Recorder
}

func openSession(verbose bool) (*session, error) {
	logger, err := newLogger(verbose)
	if err != nil {
		return nil, err
	}

	opts := validate.Options{CheckColumns: viper.GetBool("check_columns")}
	v := validate.New(opts)
	v.SetLogger(logger)

	s := &session{
		logger:    logger,
		validator: v,
	}

	if path := viper.GetString("cache.db"); path != "" {
		store, err := duckdb.Open(path)
		if err != nil {
			// The cache is an optimisation; validate without it.
			logger.Warn("result cache unavailable", zap.String("path", path), zap.Error(err))
		} else {
			s.store = store
			s.cache = duckdb.NewCachedValidator(store, v, opts.Key())
			s.cache.SetLogger(logger)
			s.validator = s.cache
		}
	}

	if viper.GetString("metrics.file") != "" {
		s.recorder = metrics.NewRecorder()
	}

	return s, nil
}

// observe logs and records one verdict.
func (s *session) observe(res *validate.Result) {
	if ve := res.ValidationError(); ve != nil {
		s.logger.Debug("file rejected",
			zap.String("path", res.Path),
			zap.Int("line", ve.Line),
			zap.String("rule", string(ve.Rule)),
			zap.Bool("cached", res.Cached))
	} else {
		s.logger.Debug("file valid",
			zap.String("path", res.Path),
			zap.Int("lines", res.Lines),
			zap.Duration("elapsed", res.Elapsed),
			zap.Bool("cached", res.Cached))
	}

	if s.recorder != nil {
		s.recorder.Observe(res)
	}
}

// Close flushes pending cache writes and the metrics textfile. Failures are
// logged, not returned: the verdict has already been decided.
func (s *session) Close() {
	if s.cache != nil {
		if err := s.cache.Flush(); err != nil {
			s.logger.Warn("recording validation runs failed", zap.Error(err))
		}
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Warn("closing result cache failed", zap.Error(err))
		}
	}
	if s.recorder != nil {
		path := viper.GetString("metrics.file")
		if err := s.recorder.WriteTextfile(path); err != nil {
			s.logger.Warn("writing metrics failed", zap.String("path", path), zap.Error(err))
		}
	}

	// Sync on stderr fails with EINVAL on some platforms.
	_ = s.logger.Sync()
}
