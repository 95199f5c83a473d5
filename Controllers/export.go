package Controllers

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/gin-gonic/gin"
)

const ExportDir = "./Exports"

// exportTables is the dump order; mirrors the migration order so a SQL dump
// can be replayed parents-first.
var exportTables = []string{
	"users",
	"licenses",
	"patients",
	"consultations",
	"invoice_lines",
	"invoice_statuses",
	"prescriptions",
	"prescription_lines",
	"prescribed_exams",
	"echography_reports",
	"doppler_reports",
	"ecg_reports",
	"thyroid_reports",
	"certificates",
	"orientation_letters",
	"medications",
	"medical_acts",
	"exam_types",
	"report_templates",
	"settings",
}

func (api *API) fetchTable(table string) ([]string, []map[string]interface{}, error) {
	var rows []map[string]interface{}
	if err := api.DB.Table(table).Find(&rows).Error; err != nil {
		return nil, nil, err
	}

	columns := []string{}
	if len(rows) > 0 {
		for column := range rows[0] {
			columns = append(columns, column)
		}
		sort.Strings(columns)
	}
	return columns, rows, nil
}

// serveExport streams the generated file as a download and removes it a few
// seconds after the response completes; the cron sweep catches any stray.
func serveExport(c *gin.Context, path string) {
	c.FileAttachment(path, filepath.Base(path))
	time.AfterFunc(10*time.Second, func() {
		os.Remove(path)
	})
}

func exportPath(extension string) string {
	return filepath.Join(ExportDir, fmt.Sprintf("backup_%s.%s", time.Now().Format("20060102_150405"), extension))
}

func sqlLiteral(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return "NULL"
	case string:
		return "'" + strings.ReplaceAll(v, "'", "''") + "'"
	case time.Time:
		return "'" + v.Format("2006-01-02 15:04:05") + "'"
	case bool:
		if v {
			return "TRUE"
		}
		return "FALSE"
	default:
		return fmt.Sprintf("%v", v)
	}
}

func (api *API) ExportSQL(c *gin.Context) {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("-- database dump %s\n\n", time.Now().Format(time.RFC3339)))

	for _, table := range exportTables {
		columns, rows, err := api.fetchTable(table)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		for _, row := range rows {
			values := make([]string, 0, len(columns))
			for _, column := range columns {
				values = append(values, sqlLiteral(row[column]))
			}
			builder.WriteString(fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s);\n",
				table, strings.Join(columns, ", "), strings.Join(values, ", ")))
		}
	}

	path := exportPath("sql")
	if err := os.WriteFile(path, []byte(builder.String()), 0644); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	serveExport(c, path)
}

func (api *API) ExportCSV(c *gin.Context) {
	path := exportPath("csv")
	file, err := os.Create(path)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	writer := csv.NewWriter(file)

	for _, table := range exportTables {
		columns, rows, err := api.fetchTable(table)
		if err != nil {
			file.Close()
			os.Remove(path)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		writer.Write([]string{"# " + table})
		writer.Write(columns)
		for _, row := range rows {
			record := make([]string, 0, len(columns))
			for _, column := range columns {
				if row[column] == nil {
					record = append(record, "")
				} else {
					record = append(record, fmt.Sprintf("%v", row[column]))
				}
			}
			writer.Write(record)
		}
		writer.Write([]string{})
	}

	writer.Flush()
	file.Close()
	serveExport(c, path)
}

func (api *API) ExportJSON(c *gin.Context) {
	dump := make(map[string][]map[string]interface{}, len(exportTables))
	for _, table := range exportTables {
		_, rows, err := api.fetchTable(table)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		dump[table] = rows
	}

	data, err := json.MarshalIndent(dump, "", "  ")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	path := exportPath("json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	serveExport(c, path)
}

func (api *API) ExportXLSX(c *gin.Context) {
	file := excelize.NewFile()

	for index, table := range exportTables {
		columns, rows, err := api.fetchTable(table)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		file.NewSheet(table)
		if index == 0 {
			file.DeleteSheet("Sheet1")
		}
		for columnIndex, column := range columns {
			file.SetCellValue(table, fmt.Sprintf("%s1", excelColumn(columnIndex)), column)
		}
		for rowIndex, row := range rows {
			for columnIndex, column := range columns {
				cell := fmt.Sprintf("%s%d", excelColumn(columnIndex), rowIndex+2)
				if row[column] != nil {
					file.SetCellValue(table, cell, fmt.Sprintf("%v", row[column]))
				}
			}
		}
	}

	path := exportPath("xlsx")
	if err := file.SaveAs(path); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	serveExport(c, path)
}

func excelColumn(index int) string {
	name := ""
	for index >= 0 {
		name = string(rune('A'+index%26)) + name
		index = index/26 - 1
	}
	return name
}
