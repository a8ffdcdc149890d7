package db

import (
	"fmt"

	"gorm.io/gorm"

	types "github.com/yungbote/contactbook-backend/internal/domain"
)

// ownerListIndex backs ListByOwner paging, matching the mongo "owner_id" index.
const ownerListIndex = `CREATE INDEX IF NOT EXISTS idx_contacts_owner_id ON contacts (posted_by, id)`

func migrateSQL(db *gorm.DB) error {
	if err := db.AutoMigrate(&types.User{}, &types.Contact{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	if err := db.Exec(ownerListIndex).Error; err != nil {
		return fmt.Errorf("create contacts owner index: %w", err)
	}
	return nil
}
