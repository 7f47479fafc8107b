package models

import "time"

// TimestampLayout is the wire format for all stored timestamps. ISO-8601 with
// a Z suffix sorts lexicographically, which the retention sweep and the
// "recent" amount query rely on.
const TimestampLayout = "2006-01-02T15:04:05Z"

// User is one Ko-fi account, keyed by its verification token.
// Created lazily the first time a transaction referencing an unseen token
// arrives, or explicitly through the user endpoints.
type User struct {
	VerificationToken string `gorm:"column:verification_token;primaryKey" json:"verification_token"`
	DataRetentionDays int    `gorm:"column:data_retention_days" json:"data_retention_days"`
	LatestRequestAt   string `gorm:"column:latest_request_at" json:"latest_request_at"`
	PreferredCurrency string `gorm:"column:preferred_currency;default:USD" json:"preferred_currency"`
}

// TableName overrides the table name.
func (User) TableName() string {
	return "kofi_users"
}

// Now returns the current UTC time in the stored timestamp format.
func Now() string {
	return time.Now().UTC().Format(TimestampLayout)
}
