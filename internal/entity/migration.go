package entity

// Migration tracks the schema version already applied to the database.
type Migration struct {
	Version int `gorm:"primaryKey"`
}
