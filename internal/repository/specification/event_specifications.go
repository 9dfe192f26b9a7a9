package specification

import "gorm.io/gorm"

// Unacknowledged keeps only events not yet acknowledged by a client.
type Unacknowledged struct{}

func (s Unacknowledged) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("acknowledged = ?", false)
}

// Acknowledged keeps only events a client has already consumed.
type Acknowledged struct{}

func (s Acknowledged) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("acknowledged = ?", true)
}
