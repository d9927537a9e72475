package seeders

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shashiranjanraj/geoinspect/app/models"
	"github.com/shashiranjanraj/geoinspect/pkg/srs"
)

func init() {
	Register("spatial_ref_sys", SeedSpatialRefSys)
}

// SeedSpatialRefSys inserts the built-in reference systems. Rows that
// already exist are kept as they are.
func SeedSpatialRefSys(db *gorm.DB) error {
	all := srs.All()
	rows := make([]models.SpatialRefSys, 0, len(all))
	for _, wk := range all {
		rows = append(rows, models.SpatialRefSys{
			SRID:      wk.SRID,
			AuthName:  "EPSG",
			AuthSRID:  wk.SRID,
			SRText:    wk.WKT,
			Proj4Text: wk.Proj4,
		})
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
}
