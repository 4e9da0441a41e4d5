package sheetssql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type TestShift struct {
	ID        string `ssql_header:"id" ssql_type:"uuid"`
	Date      string `ssql_header:"date" ssql_type:"date"`
	ShiftCode string `ssql_header:"shift_code" ssql_type:"text"`
}

type TestProviderRating struct {
	ID     string `ssql_header:"id" ssql_type:"text"`
	UserID string `ssql_header:"user_id" ssql_type:"text"`
	Rating int    `ssql_header:"rating" ssql_type:"int"`
}

func TestSchemaFromModels(t *testing.T) {
	schema, err := SchemaFromModels(TestShift{}, &TestProviderRating{})
	require.NoError(t, err)
	require.Len(t, schema.Tables, 2)

	shift := schema.Tables[0]
	assert.Equal(t, "test_shift", shift.Name)
	assert.Equal(t, []Column{
		{Name: "id", Type: "uuid"},
		{Name: "date", Type: "date"},
		{Name: "shift_code", Type: "text"},
	}, shift.Columns)

	assert.Equal(t, "test_provider_rating", schema.Tables[1].Name)
	assert.Len(t, schema.Tables[1].Columns, 3)
}

func TestSchemaFromModels_Errors(t *testing.T) {
	type MissingHeader struct {
		ID string `ssql_type:"uuid"`
	}
	type MissingType struct {
		ID string `ssql_header:"id"`
	}

	tests := []struct {
		name    string
		model   interface{}
		wantErr string
	}{
		{"missing header tag", MissingHeader{}, "missing 'ssql_header' tag"},
		{"missing type tag", MissingType{}, "missing 'ssql_type' tag"},
		{"not a struct", "not a struct", "must be a struct"},
		{"no fields", struct{}{}, "has no fields"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SchemaFromModels(tt.model)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"ScheduleEntry", "schedule_entry"},
		{"HappinessRating", "happiness_rating"},
		{"Provider", "provider"},
		{"simple", "simple"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, toSnakeCase(tt.input))
		})
	}
}

func TestNewDB_EnsureSchema(t *testing.T) {
	schema, err := SchemaFromModels(TestShift{}, TestProviderRating{})
	require.NoError(t, err)

	mock := newMockSheetsClient()
	mock.titles = []string{"test_shift"}
	mock.tables["test_shift"] = [][]interface{}{
		{"id", "date", "shift_code"},
		{"uuid", "date", "text"},
	}

	db, err := NewDB(mock, "db-sheet", schema)
	require.NoError(t, err)
	assert.Equal(t, "db-sheet", db.SpreadsheetID())

	assert.Equal(t, []string{"test_provider_rating"}, mock.created)
	assert.Equal(t, [][]interface{}{
		{"id", "user_id", "rating"},
		{"text", "text", "int"},
	}, mock.tables["test_provider_rating"])
}

func TestNewDB_SchemaMismatch(t *testing.T) {
	schema, err := SchemaFromModels(TestShift{})
	require.NoError(t, err)

	mock := newMockSheetsClient()
	mock.titles = []string{"test_shift"}
	mock.tables["test_shift"] = [][]interface{}{
		{"id", "day", "shift_code"},
		{"uuid", "date", "text"},
	}

	_, err = NewDB(mock, "db-sheet", schema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema mismatch")
}
