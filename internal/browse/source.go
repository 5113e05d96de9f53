package browse

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/mmandapa/Orchids-Full-Stack-SWE-Assessment/internal/utils"
)

// Source is the read boundary the pipeline pulls from. Both calls are
// treated as best-effort by the service: an error means "no content this
// cycle", never a crash.
type Source interface {
	ListTables() ([]string, error)
	FetchRows(table string, limit int) ([]Row, error)
}

// GormSource reads tables through a gorm connection. The dialect's migrator
// knows each backend's catalog views, so discovery works the same on
// sqlite, postgres and sqlserver.
type GormSource struct {
	db *gorm.DB
}

func NewGormSource(db *gorm.DB) *GormSource {
	return &GormSource{db: db}
}

func (s *GormSource) ListTables() ([]string, error) {
	return s.db.Migrator().GetTables()
}

// FetchRows samples up to limit rows from a table. Order is whatever the
// backend returns, stable enough within a single fetch.
func (s *GormSource) FetchRows(table string, limit int) ([]Row, error) {
	// Names come from the catalog, but they still end up in SQL verbatim.
	if !utils.ValidTableName(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}

	var raw []map[string]any
	if err := s.db.Table(table).Limit(limit).Find(&raw).Error; err != nil {
		return nil, err
	}

	rows := make([]Row, len(raw))
	for i, r := range raw {
		rows[i] = Row(r)
	}
	return rows, nil
}
