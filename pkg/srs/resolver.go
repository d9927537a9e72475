package srs

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/geoinspect/app/models"
	"github.com/shashiranjanraj/geoinspect/pkg/logger"
	"github.com/shashiranjanraj/geoinspect/pkg/metrics"
)

// Cache is the subset of cache.Store the resolver needs.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) bool
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// Resolver identifies WKT definitions. The zero value uses local knowledge
// only; DB and Cache extend it.
type Resolver struct {
	DB    *gorm.DB // spatial_ref_sys lookups, optional
	Cache Cache    // memoises database answers, optional
	TTL   time.Duration
}

// ResolveSRID returns the SRID for wkt, or 0 when no step recognises it.
// Database errors are returned; a database miss is not an error.
func (r *Resolver) ResolveSRID(ctx context.Context, wkt string) (int, error) {
	w, err := ParseWKT(wkt)
	if err != nil {
		metrics.SRIDLookups.WithLabelValues("miss").Inc()
		return 0, nil
	}

	if w.Authority == "EPSG" && w.Code > 0 {
		metrics.SRIDLookups.WithLabelValues("authority").Inc()
		return w.Code, nil
	}
	if srid, ok := Lookup(w.Name); ok {
		metrics.SRIDLookups.WithLabelValues("builtin").Inc()
		return srid, nil
	}
	if r == nil || r.DB == nil {
		metrics.SRIDLookups.WithLabelValues("miss").Inc()
		return 0, nil
	}

	key := cacheKey(wkt)
	if r.Cache != nil {
		var srid int
		if r.Cache.Get(ctx, key, &srid) {
			metrics.SRIDLookups.WithLabelValues("cache").Inc()
			return srid, nil
		}
	}

	srid, err := r.lookupDB(ctx, wkt, w)
	if err != nil {
		return 0, err
	}
	if srid == 0 {
		metrics.SRIDLookups.WithLabelValues("miss").Inc()
		return 0, nil
	}
	metrics.SRIDLookups.WithLabelValues("database").Inc()

	if r.Cache != nil {
		if err := r.Cache.Set(ctx, key, srid, r.ttl()); err != nil {
			logger.Warn("srs: cache set failed", "error", err)
		}
	}
	return srid, nil
}

// lookupDB matches the exact srtext first, then the root node by name.
func (r *Resolver) lookupDB(ctx context.Context, wkt string, w WKT) (int, error) {
	db := r.DB.WithContext(ctx)

	var row models.SpatialRefSys
	err := db.Where("srtext = ?", wkt).Order("srid").First(&row).Error
	if err == nil {
		return row.SRID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, fmt.Errorf("srs: query spatial_ref_sys: %w", err)
	}

	if w.Name == "" {
		return 0, nil
	}
	pattern := fmt.Sprintf(`%s["%s"%%`, w.Kind, w.Name)
	err = db.Where("srtext LIKE ?", pattern).Order("srid").First(&row).Error
	switch {
	case err == nil:
		return row.SRID, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return 0, nil
	default:
		return 0, fmt.Errorf("srs: query spatial_ref_sys: %w", err)
	}
}

func (r *Resolver) ttl() time.Duration {
	if r.TTL <= 0 {
		return 24 * time.Hour
	}
	return r.TTL
}

func cacheKey(wkt string) string {
	sum := sha1.Sum([]byte(wkt))
	return "srs:" + hex.EncodeToString(sum[:])
}
