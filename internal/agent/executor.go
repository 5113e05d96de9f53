package agent

import (
	"fmt"

	"gorm.io/gorm"
)

// Executor runs agent-produced SQL against the application database. The
// caller is responsible for gating writes behind IsReadOnly first.
type Executor struct {
	db *gorm.DB
}

func NewExecutor(db *gorm.DB) *Executor {
	return &Executor{db: db}
}

// Query runs a read statement and returns the rows as generic maps, the
// same shape the browse pipeline consumes.
func (e *Executor) Query(sql string) ([]map[string]any, error) {
	var rows []map[string]any
	if err := e.db.Raw(sql).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return rows, nil
}

// Exec runs a mutating statement and reports rows affected.
func (e *Executor) Exec(sql string) (int64, error) {
	res := e.db.Exec(sql)
	if res.Error != nil {
		return 0, fmt.Errorf("exec failed: %w", res.Error)
	}
	return res.RowsAffected, nil
}
