package models

import "time"

// PromoSettings is the admin-editable promotion configuration. ValidityDays is the
// number of days a QR token stays redeemable after issuance.
type PromoSettings struct {
	ValidityDays int       `bson:"validityDays" json:"validityDays" binding:"required,gte=1,lte=365"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
	UpdatedBy    string    `bson:"updatedBy" json:"updatedBy"`
}

// ValidityWindow returns the redeemable window as a duration
func (s *PromoSettings) ValidityWindow() time.Duration {
	return time.Duration(s.ValidityDays) * 24 * time.Hour
}
