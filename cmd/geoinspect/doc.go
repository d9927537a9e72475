// Command geoinspect generates GORM models from geospatial vector data.
//
// Install:
//
//	go install github.com/shashiranjanraj/geoinspect/cmd/geoinspect@latest
//
// Then:
//
//	geoinspect ogrinspect zipcode.shp Zipcode               # model for layer 0
//	geoinspect ogrinspect zipcode.shp Zipcode --srid 4269 --mapping
//	geoinspect ogrinspect s3://bucket/tiger/ Zipcode --layer tl_zcta
//	geoinspect layer:list world.geojson
//	geoinspect migrate                                      # spatial_ref_sys
//	geoinspect seed
//
// Generated source goes to stdout, logs to stderr. A model.stub or
// mapping.stub under STUB_DIR (default .geoinspect/stubs) replaces the
// built-in rendering.
package main
