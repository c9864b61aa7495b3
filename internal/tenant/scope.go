package tenant

import "gorm.io/gorm"

// Scope membatasi query ke satu company (tenant)
func Scope(companyID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("company_id = ?", companyID)
	}
}
