package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// StringArray is a custom type for storing string arrays as JSON in the database.
type StringArray []string

// Value implements the driver.Valuer interface for database serialization.
func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface for database deserialization.
func (a *StringArray) Scan(value interface{}) error {
	b, err := jsonBytes(value)
	if err != nil {
		return errors.New("failed to scan StringArray")
	}
	if b == nil {
		*a = StringArray{}
		return nil
	}
	return json.Unmarshal(b, a)
}

// JSONMap is a custom type for storing free-form JSON objects in the database.
// It backs the task input snapshot and the accumulating output map.
type JSONMap map[string]interface{}

// Value implements the driver.Valuer interface for database serialization.
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface for database deserialization.
func (m *JSONMap) Scan(value interface{}) error {
	b, err := jsonBytes(value)
	if err != nil {
		return errors.New("failed to scan JSONMap")
	}
	if b == nil {
		*m = JSONMap{}
		return nil
	}
	return json.Unmarshal(b, m)
}

// SKUList is a custom type for storing an ordered list of SKU mappings as JSON.
type SKUList []map[string]interface{}

// Value implements the driver.Valuer interface for database serialization.
func (l SKUList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface for database deserialization.
func (l *SKUList) Scan(value interface{}) error {
	b, err := jsonBytes(value)
	if err != nil {
		return errors.New("failed to scan SKUList")
	}
	if b == nil {
		*l = SKUList{}
		return nil
	}
	return json.Unmarshal(b, l)
}

func jsonBytes(value interface{}) ([]byte, error) {
	if value == nil {
		return nil, nil
	}
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, errors.New("unexpected column type")
	}
}
