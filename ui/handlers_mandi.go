package ui

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"

	"mandiprices/domain/core"
	"mandiprices/domain/record"

	"github.com/gin-gonic/gin"
)

const (
	exportFileName = "mandi_prices_data_gov_in.xlsx"
	xlsxMIME       = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// queryFromRequest maps ?state=&district=&commodity=&date=&limit= onto an
// upstream query.
func (s *Server) queryFromRequest(c *gin.Context) (record.Query, bool) {
	q := record.Query{
		Filters: record.Filters{
			State:       strings.TrimSpace(c.Query("state")),
			District:    strings.TrimSpace(c.Query("district")),
			Commodity:   strings.TrimSpace(c.Query("commodity")),
			ArrivalDate: strings.TrimSpace(c.Query("date")),
		},
		Limit: s.defaultLimit,
	}

	if l := c.Query("limit"); l != "" {
		limit, err := strconv.Atoi(l)
		if err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return q, false
		}
		q.Limit = limit
	}
	return q, true
}

// buildTable runs fetch and decode and writes the error response itself on
// failure.
func (s *Server) buildTable(c *gin.Context) (*record.Table, record.Metadata, bool) {
	q, ok := s.queryFromRequest(c)
	if !ok {
		return nil, nil, false
	}

	table, meta, err := s.exporter.BuildTable(c.Request.Context(), q)
	if err != nil {
		_ = c.Error(err)
		if core.IsShapeError(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No records found"})
			return nil, nil, false
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch data", "details": err.Error()})
		return nil, nil, false
	}
	return table, meta, true
}

// handleMandiRecords returns the records as JSON
func (s *Server) handleMandiRecords(c *gin.Context) {
	table, meta, ok := s.buildTable(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"columns":  table.Columns,
		"records":  table.Maps(),
		"count":    table.Len(),
		"metadata": meta,
	})
}

// handleMandiExport returns the records as an xlsx download
func (s *Server) handleMandiExport(c *gin.Context) {
	table, _, ok := s.buildTable(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := s.xlsx.WriteTo(table, &buf); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build spreadsheet"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+exportFileName+`"`)
	c.Data(http.StatusOK, xlsxMIME, buf.Bytes())
}
