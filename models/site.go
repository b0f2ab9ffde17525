package models

// Site represents a solar installation monitored by the platform.
// Measurement data for a site lives in the object-storage bucket named by
// BucketName; this service only stores the site's descriptive attributes.
type Site struct {
	// SiteID is the internal unique identifier of the site.
	SiteID int64 `json:"site_id"`

	// Name is the human-readable site name.
	Name string `json:"name"`

	// BucketName references the storage bucket holding the site's
	// measurement data.
	BucketName string `json:"bucket_name"`

	// Location is the free-text geographic location of the site.
	Location string `json:"location"`

	// TotalPower is the installed capacity of the site in watts.
	TotalPower int64 `json:"total_power"`
}

// TableName returns the name of the database table
// associated with the Site model.
func (s Site) TableName() string {
	return "sites"
}

// UserSiteAccess is the many-to-many join granting a user access to a site.
type UserSiteAccess struct {
	ID     int64 `json:"-"`
	UserID int64 `json:"user_id"`
	SiteID int64 `json:"site_id"`
}

// TableName returns the name of the database table
// associated with the UserSiteAccess model.
func (a UserSiteAccess) TableName() string {
	return "user_site_access"
}
