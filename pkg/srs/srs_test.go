package srs_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shashiranjanraj/geoinspect/app/models"
	"github.com/shashiranjanraj/geoinspect/pkg/srs"
)

const esriWGS84 = `GEOGCS["GCS_WGS_1984",DATUM["D_WGS_1984",SPHEROID["WGS_1984",6378137.0,298.257223563]],PRIMEM["Greenwich",0.0],UNIT["Degree",0.0174532925199433]]`

const esriUTM = `PROJCS["WGS_1984_UTM_Zone_33N",GEOGCS["GCS_WGS_1984",DATUM["D_WGS_1984",SPHEROID["WGS_1984",6378137.0,298.257223563]],PRIMEM["Greenwich",0.0],UNIT["Degree",0.0174532925199433]],PROJECTION["Transverse_Mercator"],PARAMETER["False_Easting",500000.0],PARAMETER["False_Northing",0.0],PARAMETER["Central_Meridian",15.0],PARAMETER["Scale_Factor",0.9996],PARAMETER["Latitude_Of_Origin",0.0],UNIT["Meter",1.0]]`

const localCRS = `PROJCS["Site_Grid_7",GEOGCS["GCS_WGS_1984",DATUM["D_WGS_1984",SPHEROID["WGS_1984",6378137.0,298.257223563]],PRIMEM["Greenwich",0.0],UNIT["Degree",0.0174532925199433]],PROJECTION["Transverse_Mercator"],UNIT["Meter",1.0]]`

func TestParseWKTRootAuthority(t *testing.T) {
	w, err := srs.ParseWKT(srs.WGS84WKT)
	require.NoError(t, err)
	require.Equal(t, "GEOGCS", w.Kind)
	require.Equal(t, "WGS 84", w.Name)
	require.Equal(t, "EPSG", w.Authority)
	require.Equal(t, 4326, w.Code, "nested datum/spheroid authorities must be ignored")
}

func TestParseWKT2ID(t *testing.T) {
	wkt2 := `GEOGCRS["WGS 84",DATUM["World Geodetic System 1984",ELLIPSOID["WGS 84",6378137,298.257223563,LENGTHUNIT["metre",1]]],CS[ellipsoidal,2],ID["EPSG",4326]]`
	w, err := srs.ParseWKT(wkt2)
	require.NoError(t, err)
	require.Equal(t, 4326, w.Code)
}

func TestParseWKTMalformed(t *testing.T) {
	for _, in := range []string{"", "GEOGCS", `GEOGCS["x"`, `GE OG["x"]`} {
		_, err := srs.ParseWKT(in)
		require.Error(t, err, "input %q", in)
		require.True(t, errors.Is(err, srs.ErrMalformedWKT))
	}
}

func TestLookup(t *testing.T) {
	cases := map[string]int{
		"GCS_WGS_1984":             4326,
		"WGS 84":                   4326,
		"gcs north american 1983":  4269,
		"WGS_1984_UTM_Zone_33N":    32633,
		"WGS 84 / UTM zone 19S":    32719,
		"NAD83 / UTM zone 10N":     26910,
		"NAD_1983_UTM_Zone_10N":    26910,
		"WGS 84 / Pseudo-Mercator": 3857,
		"British_National_Grid":    27700,
	}
	for name, want := range cases {
		got, ok := srs.Lookup(name)
		if !ok || got != want {
			t.Errorf("Lookup(%q) = %d, %v; want %d", name, got, ok, want)
		}
	}

	for _, name := range []string{"", "Site_Grid_7", "NAD83 / UTM zone 40N", "WGS 84 / UTM zone 61N"} {
		if got, ok := srs.Lookup(name); ok {
			t.Errorf("Lookup(%q) = %d, want miss", name, got)
		}
	}
}

func TestIdentify(t *testing.T) {
	require.Equal(t, 4326, srs.Identify(esriWGS84))
	require.Equal(t, 32633, srs.Identify(esriUTM))
	require.Equal(t, 0, srs.Identify(localCRS))
	require.Equal(t, 0, srs.Identify("garbage"))
}

type memCache struct {
	data map[string]int
	sets int
}

func (m *memCache) Get(_ context.Context, key string, dest interface{}) bool {
	v, ok := m.data[key]
	if ok {
		*(dest.(*int)) = v
	}
	return ok
}

func (m *memCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	m.data[key] = value.(int)
	m.sets++
	return nil
}

func openSRSDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "srs.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.SpatialRefSys{}))
	return db
}

func TestResolverWithoutDatabase(t *testing.T) {
	var r *srs.Resolver
	srid, err := r.ResolveSRID(context.Background(), localCRS)
	require.NoError(t, err)
	require.Zero(t, srid)

	srid, err = (&srs.Resolver{}).ResolveSRID(context.Background(), esriWGS84)
	require.NoError(t, err)
	require.Equal(t, 4326, srid)
}

func TestResolverDatabaseAndCache(t *testing.T) {
	ctx := context.Background()
	db := openSRSDB(t)
	require.NoError(t, db.Create(&models.SpatialRefSys{
		SRID: 900913, AuthName: "LOCAL", AuthSRID: 900913,
		SRText: `PROJCS["Site_Grid_7",GEOGCS["WGS 84"],UNIT["metre",1]]`,
	}).Error)

	cache := &memCache{data: map[string]int{}}
	r := &srs.Resolver{DB: db, Cache: cache}

	srid, err := r.ResolveSRID(ctx, localCRS)
	require.NoError(t, err)
	require.Equal(t, 900913, srid, "name match on the root PROJCS node")
	require.Equal(t, 1, cache.sets)

	// Second call is answered by the cache even with the row gone.
	require.NoError(t, db.Where("srid = ?", 900913).Delete(&models.SpatialRefSys{}).Error)
	srid, err = r.ResolveSRID(ctx, localCRS)
	require.NoError(t, err)
	require.Equal(t, 900913, srid)
	require.Equal(t, 1, cache.sets)
}

func TestResolverDatabaseExactMatchAndMiss(t *testing.T) {
	ctx := context.Background()
	db := openSRSDB(t)
	exact := `LOCAL_CS["Mine Grid",UNIT["metre",1]]`
	require.NoError(t, db.Create(&models.SpatialRefSys{SRID: 100001, AuthName: "LOCAL", SRText: exact}).Error)

	r := &srs.Resolver{DB: db}
	srid, err := r.ResolveSRID(ctx, exact)
	require.NoError(t, err)
	require.Equal(t, 100001, srid)

	srid, err = r.ResolveSRID(ctx, `LOCAL_CS["Other Grid",UNIT["metre",1]]`)
	require.NoError(t, err)
	require.Zero(t, srid)
}
