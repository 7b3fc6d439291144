package specification

import "gorm.io/gorm"

// ByName matches a label by its exact name.
type ByName struct {
	Name string
}

func (s ByName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("name = ?", s.Name)
}
