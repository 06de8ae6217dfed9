package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/madhurinidan/clinic-web/internal/models"
	"github.com/madhurinidan/clinic-web/pkg/logger"
	"github.com/madhurinidan/clinic-web/pkg/metrics"
	"github.com/madhurinidan/clinic-web/pkg/slug"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// DoctorSource fetches the doctor directory from the clinic API
type DoctorSource interface {
	ListDoctors(ctx context.Context) ([]models.Doctor, error)
}

const (
	allDoctorsKey    = "doctor:all"
	doctorSlugPrefix = "doctor:slug:"
	cacheCheckPeriod = 30 * time.Second
)

// DoctorCache is a read-through cache of the doctor directory. The list entry
// carries the TTL; a miss fetches synchronously and failures are not cached.
type DoctorCache struct {
	cache    *gocache.Cache
	source   DoctorSource
	ttl      time.Duration
	disabled bool

	// serializes fetches so concurrent misses share one upstream call
	fetchMu     sync.Mutex
	mu          sync.RWMutex
	lastRefresh time.Time
}

// NewDoctorCache creates a cache over source. When disabled every read goes
// to the source.
func NewDoctorCache(source DoctorSource, ttlSeconds int, disabled bool) *DoctorCache {
	return &DoctorCache{
		cache:    gocache.New(gocache.NoExpiration, cacheCheckPeriod),
		source:   source,
		ttl:      time.Duration(ttlSeconds) * time.Second,
		disabled: disabled,
	}
}

// Warm fills the cache once. Failure is logged and left for the next read.
func (dc *DoctorCache) Warm(ctx context.Context) {
	if dc.disabled {
		return
	}
	if _, err := dc.refresh(ctx); err != nil {
		logger.Warn("Doctor directory warm-up failed", zap.Error(err))
	}
}

// Run refreshes the cache every TTL until ctx is done
func (dc *DoctorCache) Run(ctx context.Context) {
	if dc.disabled || dc.ttl <= 0 {
		return
	}

	ticker := time.NewTicker(dc.ttl)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := dc.refresh(ctx); err != nil {
				logger.Error("Scheduled doctor directory refresh failed", zap.Error(err))
			}
		}
	}
}

// Doctors returns the directory, fetching it on a miss
func (dc *DoctorCache) Doctors(ctx context.Context) ([]models.Doctor, error) {
	if dc.disabled {
		return dc.source.ListDoctors(ctx)
	}

	if doctors, ok := dc.cached(); ok {
		metrics.CacheHits.WithLabelValues("doctors").Inc()
		return doctors, nil
	}
	metrics.CacheMisses.WithLabelValues("doctors").Inc()

	dc.fetchMu.Lock()
	defer dc.fetchMu.Unlock()

	// another request may have filled it while we waited
	if doctors, ok := dc.cached(); ok {
		return doctors, nil
	}
	return dc.fetchLocked(ctx)
}

// BySlug finds a doctor by the slug of their name
func (dc *DoctorCache) BySlug(ctx context.Context, doctorSlug string) (*models.Doctor, error) {
	doctors, err := dc.Doctors(ctx)
	if err != nil {
		return nil, err
	}

	if !dc.disabled {
		if data, found := dc.cache.Get(doctorSlugPrefix + doctorSlug); found {
			if doctor, ok := data.(models.Doctor); ok {
				return &doctor, nil
			}
		}
	}

	for i := range doctors {
		if slug.Generate(doctors[i].Name) == doctorSlug {
			doctor := doctors[i]
			return &doctor, nil
		}
	}
	return nil, fmt.Errorf("doctor %q not found", doctorSlug)
}

// Invalidate drops the cached directory so the next read refetches it
func (dc *DoctorCache) Invalidate() {
	dc.cache.Flush()
	metrics.CacheSize.WithLabelValues("doctors").Set(0)
	logger.Debug("Doctor directory cache invalidated")
}

// LastRefresh reports when the directory was last fetched
func (dc *DoctorCache) LastRefresh() time.Time {
	dc.mu.RLock()
	defer dc.mu.RUnlock()
	return dc.lastRefresh
}

func (dc *DoctorCache) cached() ([]models.Doctor, bool) {
	data, found := dc.cache.Get(allDoctorsKey)
	if !found {
		return nil, false
	}
	doctors, ok := data.([]models.Doctor)
	if !ok {
		logger.Error("Invalid cache data type for doctor directory")
		dc.cache.Delete(allDoctorsKey)
		return nil, false
	}
	return doctors, true
}

func (dc *DoctorCache) refresh(ctx context.Context) ([]models.Doctor, error) {
	dc.fetchMu.Lock()
	defer dc.fetchMu.Unlock()
	return dc.fetchLocked(ctx)
}

// fetchLocked must be called with fetchMu held
func (dc *DoctorCache) fetchLocked(ctx context.Context) ([]models.Doctor, error) {
	start := time.Now()

	doctors, err := dc.source.ListDoctors(ctx)
	if err != nil {
		return nil, err
	}

	ttl := dc.ttl
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}

	dc.cache.Flush()
	for _, doctor := range doctors {
		dc.cache.Set(doctorSlugPrefix+slug.Generate(doctor.Name), doctor, gocache.NoExpiration)
	}
	dc.cache.Set(allDoctorsKey, doctors, ttl)

	dc.mu.Lock()
	dc.lastRefresh = time.Now()
	dc.mu.Unlock()

	metrics.CacheSize.WithLabelValues("doctors").Set(float64(len(doctors)))
	logger.Info("Doctor directory cached",
		zap.Int("count", len(doctors)),
		zap.Duration("duration", time.Since(start)))

	return doctors, nil
}
