package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/dpup/terrain-profile/internal/cache"
	"github.com/dpup/terrain-profile/internal/lib/profile"
	"github.com/dpup/terrain-profile/internal/lib/tracks"
	"github.com/dpup/terrain-profile/internal/metrics"
)

// ProfileService parses uploaded tracks and computes their elevation
// profiles, caching results by content hash.
type ProfileService struct {
	hasher     *cache.ContentHasher
	store      *cache.ProfileStore
	calculator profile.Calculator
	partGaps   bool
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

// NewProfileService creates a new ProfileService. m and logger may be nil.
func NewProfileService(store *cache.ProfileStore, partGaps bool, m *metrics.Metrics, logger *zap.Logger) *ProfileService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileService{
		hasher:     cache.NewContentHasher(),
		store:      store,
		calculator: profile.NewCalculator(profile.WithPartGaps(partGaps)),
		partGaps:   partGaps,
		metrics:    m,
		logger:     logger,
	}
}

// Compute returns the profile for data. The boolean reports whether the
// result came from cache.
func (s *ProfileService) Compute(ctx context.Context, format tracks.Format, data []byte) (*profile.Profile, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	hash := s.hasher.HashDocument(string(format), data, s.partGaps)
	log := s.logger.With(zap.String("format", string(format)), zap.String("hash", hash[:12]))

	if s.store != nil {
		cached, age, found, err := s.store.GetProfile(hash)
		if err != nil {
			log.Warn("Cache read failed", zap.Error(err))
		}
		if found {
			log.Debug("Returning cached profile",
				zap.Int("vertices", len(cached.Vertices)),
				zap.Duration("age", age))
			s.record(format, metrics.ResultCached)
			if s.metrics != nil {
				s.metrics.CacheHits.Inc()
			}
			return cached, true, nil
		}
	}

	geometry, err := tracks.Parse(format, data)
	if err != nil {
		s.fail(log, format, err)
		return nil, false, err
	}

	p, err := s.calculator.Calculate(geometry)
	if err != nil {
		s.fail(log, format, err)
		return nil, false, err
	}

	if s.store != nil {
		if err := s.store.SetProfile(hash, p); err != nil {
			log.Warn("Failed to cache profile", zap.Error(err))
		}
	}

	if s.metrics != nil {
		s.metrics.VerticesProcessed.Observe(float64(len(p.Vertices)))
	}
	s.record(format, metrics.ResultOK)

	log.Info("Computed profile",
		zap.Int("vertices", len(p.Vertices)),
		zap.Float64("length_m", p.Statistics.Length),
		zap.Float64("ascend_m", p.Statistics.Ascend))

	return p, false, nil
}

// IsInvalidInput reports whether err was caused by the uploaded track rather
// than by the service.
func IsInvalidInput(err error) bool {
	return errors.Is(err, profile.ErrMissingGeometry) || errors.Is(err, profile.ErrInvalidGeometry)
}

func (s *ProfileService) fail(log *zap.Logger, format tracks.Format, err error) {
	if IsInvalidInput(err) {
		log.Info("Rejected track", zap.Error(err))
		s.record(format, metrics.ResultInvalidInput)
		return
	}
	log.Error("Profile computation failed", zap.Error(err))
	s.record(format, metrics.ResultError)
}

func (s *ProfileService) record(format tracks.Format, result string) {
	if s.metrics == nil {
		return
	}
	s.metrics.ProfilesComputed.WithLabelValues(string(format), result).Inc()
}
