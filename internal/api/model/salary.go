package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Salary is stored as a jsonb object
type Salary struct {
	Min      int64  `json:"min"`
	Max      int64  `json:"max"`
	Currency string `json:"currency"`
}

func (Salary) GormDataType() string {
	return "jsonb"
}

func (s Salary) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *Salary) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*s = Salary{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported salary source type %T", src)
	}
	return json.Unmarshal(data, s)
}
