package model

import "time"

// RevokedToken is an append-only blocklist entry. A bearer token is valid
// iff its JWT ID is absent from this table.
type RevokedToken struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	JTI       string    `json:"jti" gorm:"not null;uniqueIndex"`
	RevokedAt time.Time `json:"revoked_at" gorm:"autoCreateTime"`
}
