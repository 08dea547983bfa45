package services

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/surveysavvy/surveysavvy/model"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportService dumps every persisted table to flat files for analysis
// outside the tool. Column sets are discovered from the live result set so
// exports stay in step with schema changes.
type ExportService struct {
	db *gorm.DB
}

func NewExportService(db *gorm.DB) *ExportService {
	return &ExportService{db: db}
}

// tableNames lists the tables to export, in schema dependency order.
func tableNames() []string {
	type tabler interface{ TableName() string }

	var names []string
	for _, m := range model.AllTables() {
		if t, ok := m.(tabler); ok {
			names = append(names, t.TableName())
		}
	}
	return names
}

// readTable loads a whole table as strings. NULLs become empty cells.
func (s *ExportService) readTable(table string) (columns []string, records [][]string, err error) {
	rows, err := s.db.Raw("SELECT * FROM " + table).Rows()
	if err != nil {
		return nil, nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	columns, err = rows.Columns()
	if err != nil {
		return nil, nil, fmt.Errorf("columns of %s: %w", table, err)
	}

	for rows.Next() {
		raw := make([][]byte, len(columns))
		scan := make([]interface{}, len(columns))
		for i := range raw {
			scan[i] = &raw[i]
		}

		if err := rows.Scan(scan...); err != nil {
			return nil, nil, fmt.Errorf("scan %s: %w", table, err)
		}

		record := make([]string, len(columns))
		for i, cell := range raw {
			record[i] = string(cell)
		}
		records = append(records, record)
	}

	return columns, records, rows.Err()
}

// ExportCSV writes one CSV file per table into dir.
func (s *ExportService) ExportCSV(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	for _, table := range tableNames() {
		columns, records, err := s.readTable(table)
		if err != nil {
			return err
		}

		file, err := os.Create(filepath.Join(dir, table+".csv"))
		if err != nil {
			return fmt.Errorf("create csv for %s: %w", table, err)
		}

		writer := csv.NewWriter(file)
		if err := writer.Write(columns); err != nil {
			file.Close()
			return fmt.Errorf("write header for %s: %w", table, err)
		}
		if err := writer.WriteAll(records); err != nil {
			file.Close()
			return fmt.Errorf("write rows for %s: %w", table, err)
		}
		writer.Flush()

		if err := file.Close(); err != nil {
			return fmt.Errorf("close csv for %s: %w", table, err)
		}
	}

	return nil
}

// ExportXLSX writes the whole database to one workbook, one sheet per table.
func (s *ExportService) ExportXLSX(path string) error {
	workbook := excelize.NewFile()
	defer workbook.Close()

	for i, table := range tableNames() {
		if i == 0 {
			// reuse the default sheet for the first table
			if err := workbook.SetSheetName(workbook.GetSheetName(0), table); err != nil {
				return fmt.Errorf("rename sheet for %s: %w", table, err)
			}
		} else {
			if _, err := workbook.NewSheet(table); err != nil {
				return fmt.Errorf("create sheet for %s: %w", table, err)
			}
		}

		columns, records, err := s.readTable(table)
		if err != nil {
			return err
		}

		header := make([]interface{}, len(columns))
		for j, col := range columns {
			header[j] = col
		}
		if err := workbook.SetSheetRow(table, "A1", &header); err != nil {
			return fmt.Errorf("write header for %s: %w", table, err)
		}

		for j, record := range records {
			row := make([]interface{}, len(record))
			for k, cell := range record {
				row[k] = cell
			}
			cell, err := excelize.CoordinatesToCellName(1, j+2)
			if err != nil {
				return err
			}
			if err := workbook.SetSheetRow(table, cell, &row); err != nil {
				return fmt.Errorf("write row for %s: %w", table, err)
			}
		}
	}

	if err := workbook.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
