// Package sheetssql treats a Google spreadsheet as a small typed database.
// Each table is a tab whose first row holds column names, second row column
// types, and every following row a record. The first column is the record key.
package sheetssql

import (
	"fmt"
	"sync"
)

// dataStartRow is the first 1-based row holding records
const dataStartRow = 3

// SheetsClient defines the sheet operations the database needs
type SheetsClient interface {
	GetValues(spreadsheetID, sheetRange string) ([][]interface{}, error)
	AppendRows(spreadsheetID, sheetRange string, values [][]interface{}) error
	UpdateValues(spreadsheetID, sheetRange string, values [][]interface{}) error
	CreateSheet(spreadsheetID, sheetTitle string) (int64, error)
	SheetTitles(spreadsheetID string) ([]string, error)
}

// Column defines a column with name and type
type Column struct {
	Name string
	Type string // e.g., "text", "date", "int", "bool", "uuid", "timestamp"
}

// TableSchema defines the structure of a table
type TableSchema struct {
	Name    string
	Columns []Column
}

// Schema defines the database schema
type Schema struct {
	Tables []TableSchema
}

// DB represents a connection to a Google Sheets "database"
type DB struct {
	client        SheetsClient
	spreadsheetID string
	schema        *Schema

	// mu serialises read-modify-write upserts
	mu sync.Mutex
}

// NewDB creates a new Sheets SQL database connection and ensures schema exists
func NewDB(client SheetsClient, spreadsheetID string, schema *Schema) (*DB, error) {
	db := &DB{
		client:        client,
		spreadsheetID: spreadsheetID,
		schema:        schema,
	}

	if err := db.ensureSchema(); err != nil {
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	return db, nil
}

// SpreadsheetID returns the database spreadsheet ID
func (db *DB) SpreadsheetID() string {
	return db.spreadsheetID
}

// InsertRows appends rows to the specified table
func (db *DB) InsertRows(tableName string, rows [][]interface{}) error {
	return db.client.AppendRows(db.spreadsheetID, tableName, rows)
}

// replaceRows overwrites the table's records starting at the first data row
func (db *DB) replaceRows(tableName string, rows [][]interface{}) error {
	return db.client.UpdateValues(db.spreadsheetID, fmt.Sprintf("%s!A%d", tableName, dataStartRow), rows)
}
