// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONB stores free-form attributes as a JSON document.
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	b, err := json.Marshal(j)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (j *JSONB) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*j = nil
		return nil
	case []byte:
		return json.Unmarshal(v, j)
	case string:
		return json.Unmarshal([]byte(v), j)
	default:
		return fmt.Errorf("unsupported JSONB value %T", value)
	}
}

// Enums
type Source string

const (
	SourceStandard Source = "standard"
	SourceSimple   Source = "simple"
	SourcePreorder Source = "preorder"
)

// Sources lists every catalog partition.
var Sources = []Source{SourceStandard, SourceSimple, SourcePreorder}

func (s Source) Valid() bool {
	switch s {
	case SourceStandard, SourceSimple, SourcePreorder:
		return true
	}
	return false
}

func (s Source) IsPreorder() bool {
	return s == SourcePreorder
}

func ParseSource(raw string) (Source, error) {
	s := Source(raw)
	if !s.Valid() {
		return "", fmt.Errorf("unknown source %q", raw)
	}
	return s, nil
}

type OrderStatus string

const (
	OrderStatusNew       OrderStatus = "new"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusCancelled OrderStatus = "cancelled"
)
