package database

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"
)

// listIndexes back the paginated list queries, which filter on deleted_at and
// sort by created_at.
var listIndexes = []struct {
	table   string
	name    string
	columns string
}{
	{"tasks", "idx_tasks_live_created", "deleted_at, created_at"},
	{"tasks", "idx_tasks_author_created", "author_id, created_at"},
	{"tasks", "idx_tasks_assignee_created", "assignee_id, created_at"},
	{"comments", "idx_comments_task_created", "task_id, created_at"},
	{"comments", "idx_comments_author_created", "author_id, created_at"},
	{"users", "idx_users_live_created", "deleted_at, created_at"},
}

// AddIndexes creates the composite indexes that AutoMigrate does not declare.
func AddIndexes(db *gorm.DB, log *slog.Logger) error {
	m := db.Migrator()
	for _, idx := range listIndexes {
		if m.HasIndex(idx.table, idx.name) {
			log.Debug("index already exists, skipping", "index", idx.name)
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Info("created index", "index", idx.name, "table", idx.table, "columns", idx.columns)
	}
	return nil
}
