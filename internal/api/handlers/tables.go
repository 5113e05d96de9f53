package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mmandapa/Orchids-Full-Stack-SWE-Assessment/internal/browse"
	"github.com/mmandapa/Orchids-Full-Stack-SWE-Assessment/internal/utils"
)

// TableHandler exposes the schema-less side of the database: listing
// whatever tables exist and appending rows to them. The SQL agent and demo
// tooling write through here.
type TableHandler struct {
	db     *gorm.DB
	source *browse.GormSource
}

// NewTableHandler creates a new TableHandler instance
func NewTableHandler(db *gorm.DB) *TableHandler {
	return &TableHandler{db: db, source: browse.NewGormSource(db)}
}

// ListTables returns every table the connected database reports
func (h *TableHandler) ListTables(c *gin.Context) {
	tables, err := h.source.ListTables()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list tables"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": tables})
}

// InsertRow appends one row to a named table. Column names are whatever the
// caller sends; the table must already exist.
func (h *TableHandler) InsertRow(c *gin.Context) {
	table := c.Param("table")

	// The name ends up in SQL verbatim, so it has to be a clean identifier
	if !utils.ValidTableName(table) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid table name"})
		return
	}

	var row map[string]interface{}
	if err := c.ShouldBindJSON(&row); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid row payload"})
		return
	}
	if len(row) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Row has no columns"})
		return
	}

	if err := h.db.Table(table).Create(&row).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Insert failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "created", "table": table})
}
