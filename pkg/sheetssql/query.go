package sheetssql

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// GetTableAs retrieves all rows from a table and maps them to structs of type T.
// The header and type rows are skipped; columns without a matching field are ignored.
func GetTableAs[T any](db *DB, tableName string) ([]T, error) {
	values, err := db.client.GetValues(db.spreadsheetID, tableName)
	if err != nil {
		return nil, fmt.Errorf("failed to get table %s: %w", tableName, err)
	}

	if len(values) < dataStartRow {
		return []T{}, nil
	}

	var model T
	t := reflect.TypeOf(model)

	columnIndexes := make(map[string]int)
	for i, header := range values[0] {
		if h, ok := header.(string); ok {
			columnIndexes[h] = i
		}
	}

	fieldMap := make(map[string]reflect.StructField)
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if name := field.Tag.Get("ssql_header"); name != "" {
			fieldMap[name] = field
		}
	}

	dataRows := values[dataStartRow-1:]
	results := make([]T, 0, len(dataRows))
	for rowIdx, row := range dataRows {
		if isBlankRow(row) {
			continue
		}

		result := reflect.New(t).Elem()
		for columnName, colIdx := range columnIndexes {
			field, ok := fieldMap[columnName]
			if !ok || colIdx >= len(row) || row[colIdx] == nil {
				continue
			}

			if err := setFieldValue(result.FieldByName(field.Name), row[colIdx]); err != nil {
				return nil, fmt.Errorf("row %d, column %s: %w", rowIdx+dataStartRow, columnName, err)
			}
		}

		results = append(results, result.Interface().(T))
	}

	return results, nil
}

func isBlankRow(row []interface{}) bool {
	for _, cell := range row {
		if cellText(cell) != "" {
			return false
		}
	}
	return true
}

// cellText renders a cell as the text a user would type into it
func cellText(v interface{}) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(c)
	default:
		return fmt.Sprint(c)
	}
}

// setFieldValue converts a sheet cell value to the field's Go type and sets it.
// Cells usually arrive as strings, but numbers and booleans are accepted too.
func setFieldValue(field reflect.Value, cellValue interface{}) error {
	if !field.CanSet() {
		return fmt.Errorf("field cannot be set")
	}

	cellStr := strings.TrimSpace(cellText(cellValue))

	switch field.Kind() {
	case reflect.String:
		field.SetString(cellStr)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if cellStr == "" {
			field.SetInt(0)
			return nil
		}
		intVal, err := strconv.ParseInt(cellStr, 10, 64)
		if err != nil {
			return fmt.Errorf("failed to parse int: %w", err)
		}
		field.SetInt(intVal)

	case reflect.Float32, reflect.Float64:
		if cellStr == "" {
			field.SetFloat(0)
			return nil
		}
		floatVal, err := strconv.ParseFloat(cellStr, 64)
		if err != nil {
			return fmt.Errorf("failed to parse float: %w", err)
		}
		field.SetFloat(floatVal)

	case reflect.Bool:
		if cellStr == "" {
			field.SetBool(false)
			return nil
		}
		boolVal, err := strconv.ParseBool(cellStr)
		if err != nil {
			return fmt.Errorf("failed to parse bool: %w", err)
		}
		field.SetBool(boolVal)

	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}

	return nil
}

// modelRow flattens a tagged struct into a sheet row in field order
func modelRow(v reflect.Value) []interface{} {
	t := v.Type()
	row := make([]interface{}, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).Tag.Get("ssql_header") == "" {
			continue
		}
		row = append(row, v.Field(i).Interface())
	}
	return row
}

func tableNameOf[T any]() string {
	var model T
	return toSnakeCase(reflect.TypeOf(model).Name())
}

// InsertModels appends structs as rows to their corresponding table
func InsertModels[T any](db *DB, models []T) error {
	if len(models) == 0 {
		return nil
	}

	rows := make([][]interface{}, 0, len(models))
	for _, model := range models {
		rows = append(rows, modelRow(reflect.ValueOf(model)))
	}

	return db.InsertRows(tableNameOf[T](), rows)
}

// UpsertModels writes structs to their table, replacing any record whose key
// (first column) matches and appending the rest. Existing records keep their
// position. It reports how many records were inserted and updated.
func UpsertModels[T any](db *DB, models []T) (inserted, updated int, err error) {
	if len(models) == 0 {
		return 0, 0, nil
	}

	tableName := tableNameOf[T]()

	db.mu.Lock()
	defer db.mu.Unlock()

	values, err := db.client.GetValues(db.spreadsheetID, tableName)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get table %s: %w", tableName, err)
	}

	var rows [][]interface{}
	if len(values) >= dataStartRow {
		rows = append(rows, values[dataStartRow-1:]...)
	}

	index := make(map[string]int, len(rows))
	for i, row := range rows {
		if len(row) > 0 {
			index[cellText(row[0])] = i
		}
	}

	for _, model := range models {
		row := modelRow(reflect.ValueOf(model))
		if len(row) == 0 {
			return 0, 0, fmt.Errorf("model %s has no ssql columns", tableName)
		}
		key := cellText(row[0])
		if i, ok := index[key]; ok {
			rows[i] = row
			updated++
			continue
		}
		index[key] = len(rows)
		rows = append(rows, row)
		inserted++
	}

	if err := db.replaceRows(tableName, rows); err != nil {
		return 0, 0, fmt.Errorf("failed to write table %s: %w", tableName, err)
	}

	return inserted, updated, nil
}
