package migrations

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/geoinspect/app/models"
	"github.com/shashiranjanraj/geoinspect/pkg/migration"
)

func init() {
	migration.Register("20260101000000_create_spatial_ref_sys_table", &CreateSpatialRefSys{})
}

// CreateSpatialRefSys creates spatial_ref_sys on databases without a
// spatial extension. PostGIS and SpatiaLite already ship the table, so an
// existing one is left alone.
type CreateSpatialRefSys struct{}

func (m *CreateSpatialRefSys) Up(db *gorm.DB) error {
	if db.Migrator().HasTable(&models.SpatialRefSys{}) {
		return nil
	}
	return db.AutoMigrate(&models.SpatialRefSys{})
}

// Down drops the table unless it belongs to PostGIS.
func (m *CreateSpatialRefSys) Down(db *gorm.DB) error {
	if db.Dialector.Name() == "postgres" {
		return nil
	}
	return db.Migrator().DropTable(&models.SpatialRefSys{})
}
