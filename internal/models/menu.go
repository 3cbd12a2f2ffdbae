package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// StringArray is a custom type for handling string arrays in JSONB
type StringArray []string

// Value implements the driver.Valuer interface
func (a StringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *StringArray) Scan(value interface{}) error {
	if value == nil {
		*a = StringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// Price is stored as DECIMAL(10,2) and comes back from the postgres driver as a
// string. Callers always see a number, so Scan normalizes whatever the driver
// hands over.
type Price float64

// Value implements the driver.Valuer interface
func (p Price) Value() (driver.Value, error) {
	return float64(p), nil
}

// Scan implements the sql.Scanner interface
func (p *Price) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*p = 0
		return nil
	case float64:
		*p = Price(v)
		return nil
	case int64:
		*p = Price(v)
		return nil
	case []byte:
		f, err := strconv.ParseFloat(string(v), 64)
		if err != nil {
			return fmt.Errorf("failed to parse price %q: %w", string(v), err)
		}
		*p = Price(f)
		return nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("failed to parse price %q: %w", v, err)
		}
		*p = Price(f)
		return nil
	default:
		return fmt.Errorf("unsupported price column type %T", value)
	}
}

// MenuItem represents a single entry on the menu
type MenuItem struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Name        string      `gorm:"size:255;not null" json:"name"`
	Category    string      `gorm:"size:50;not null" json:"category"`
	Calories    int         `gorm:"not null" json:"calories"`
	Price       Price       `gorm:"type:decimal(10,2);not null" json:"price"`
	Ingredients StringArray `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Description string      `gorm:"type:text;not null" json:"description"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func (MenuItem) TableName() string {
	return "menus"
}
