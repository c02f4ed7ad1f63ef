package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Value implements driver.Valuer so the breakdown is stored as JSONB.
func (b MaterialBreakdown) Value() (driver.Value, error) {
	if b == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(b)
}

// Scan implements sql.Scanner.
func (b *MaterialBreakdown) Scan(src interface{}) error {
	if src == nil {
		*b = MaterialBreakdown{}
		return nil
	}

	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into MaterialBreakdown", src)
	}

	return json.Unmarshal(data, b)
}
