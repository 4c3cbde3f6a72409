package database

import (
	"gorm.io/gorm"

	"github.com/yukikurage/task-tracker-api/internal/utils"
)

// Paginate orders newest first and applies the page window. The id tiebreak
// keeps rows with equal timestamps in a stable order across pages.
func Paginate(req utils.PageRequest) func(db *gorm.DB) *gorm.DB {
	return PaginateTable("", req)
}

// PaginateTable is Paginate with the ordering columns qualified by table,
// for queries that join other tables.
func PaginateTable(table string, req utils.PageRequest) func(db *gorm.DB) *gorm.DB {
	prefix := ""
	if table != "" {
		prefix = table + "."
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(prefix + "created_at DESC").
			Order(prefix + "id DESC").
			Offset(req.Offset()).
			Limit(req.Limit())
	}
}
