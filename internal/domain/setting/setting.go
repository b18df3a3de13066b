package setting

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ValueType defines the type of a setting value
type ValueType string

const (
	ValueTypeString ValueType = "string"
	ValueTypeInt    ValueType = "int"
	ValueTypeBool   ValueType = "bool"
)

// SystemSetting is one runtime-tunable configuration value. Rows override
// the file/environment configuration of the same name.
type SystemSetting struct {
	id          uint
	category    string
	key         string
	value       string
	valueType   ValueType
	description string
	updatedAt   time.Time
}

func NewSystemSetting(category, key string, valueType ValueType, value, description string) (*SystemSetting, error) {
	if category == "" {
		return nil, fmt.Errorf("category is required")
	}
	if key == "" {
		return nil, ErrInvalidSettingKey
	}
	if !isValidValueType(valueType) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidValueType, valueType)
	}
	return &SystemSetting{
		category:    category,
		key:         key,
		value:       value,
		valueType:   valueType,
		description: description,
		updatedAt:   time.Now(),
	}, nil
}

// ReconstructSystemSetting reconstructs a SystemSetting from persistence layer
func ReconstructSystemSetting(id uint, category, key, value string, valueType ValueType, description string, updatedAt time.Time) *SystemSetting {
	return &SystemSetting{
		id:          id,
		category:    category,
		key:         key,
		value:       value,
		valueType:   valueType,
		description: description,
		updatedAt:   updatedAt,
	}
}

func (s *SystemSetting) ID() uint             { return s.id }
func (s *SystemSetting) Category() string     { return s.category }
func (s *SystemSetting) Key() string          { return s.key }
func (s *SystemSetting) Value() string        { return s.value }
func (s *SystemSetting) ValueType() ValueType { return s.valueType }
func (s *SystemSetting) Description() string  { return s.description }
func (s *SystemSetting) UpdatedAt() time.Time { return s.updatedAt }

// SetID sets the setting ID (only for persistence layer use)
func (s *SystemSetting) SetID(id uint) {
	s.id = id
}

// HasValue checks if the setting has a non-empty value
func (s *SystemSetting) HasValue() bool {
	return strings.TrimSpace(s.value) != ""
}

func (s *SystemSetting) GetInt64Value() (int64, error) {
	if !s.HasValue() {
		return 0, nil
	}
	return strconv.ParseInt(strings.TrimSpace(s.value), 10, 64)
}

func (s *SystemSetting) GetBoolValue() (bool, error) {
	if !s.HasValue() {
		return false, nil
	}
	return strconv.ParseBool(strings.TrimSpace(s.value))
}

func isValidValueType(vt ValueType) bool {
	switch vt {
	case ValueTypeString, ValueTypeInt, ValueTypeBool:
		return true
	default:
		return false
	}
}
