package models

import "time"

type RecordKind string

const (
	KindCustomer    RecordKind = "customer"
	KindHotel       RecordKind = "hotel"
	KindReservation RecordKind = "reservation"
)

// Record is the table row backing one persisted entity when records live in
// Postgres instead of files. Fields holds the JSON document.
type Record struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Kind      RecordKind `gorm:"type:varchar(20);not null;uniqueIndex:idx_record_kind_key" json:"kind"`
	Key       string     `gorm:"not null;uniqueIndex:idx_record_kind_key" json:"key"`
	Fields    string     `gorm:"type:text;not null" json:"fields"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
