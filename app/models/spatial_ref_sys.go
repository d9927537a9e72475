package models

// SpatialRefSys is a row of the spatial_ref_sys table, laid out the way
// PostGIS and SpatiaLite define it so an existing spatial database can be
// queried directly.
type SpatialRefSys struct {
	SRID      int    `gorm:"column:srid;primaryKey;autoIncrement:false" json:"srid"`
	AuthName  string `gorm:"column:auth_name;size:256"                  json:"auth_name"`
	AuthSRID  int    `gorm:"column:auth_srid"                           json:"auth_srid"`
	SRText    string `gorm:"column:srtext;size:2048"                    json:"srtext"`
	Proj4Text string `gorm:"column:proj4text;size:2048"                 json:"proj4text"`
}

func (SpatialRefSys) TableName() string { return "spatial_ref_sys" }
