package seeder

import (
	"gorm.io/gorm"

	"github.com/edusync-app/school-service/internal/models"
)

// SchemaCapabilities records which optional columns the target schema
// actually carries. Resolved once before seeding and passed into the
// stages that reference optional columns, so schema drift degrades a
// single field instead of failing the whole batch.
type SchemaCapabilities struct {
	// notifications.priority was added later; older schemas lack it.
	NotificationPriority bool
}

// ProbeCapabilities inspects the live schema.
func ProbeCapabilities(db *gorm.DB) SchemaCapabilities {
	return SchemaCapabilities{
		NotificationPriority: db.Migrator().HasColumn(&models.Notification{}, "priority"),
	}
}
