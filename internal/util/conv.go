package util

import (
	"time"
)

// ParseDateBound 解析 YYYY-MM-DD 或 RFC3339。
// endOfDay 为 true 且输入只有日期时，返回次日零点（用作开区间上界）。
func ParseDateBound(s string, endOfDay bool) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.ParseInLocation(DateFormat, s, time.Local)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		t = t.AddDate(0, 0, 1)
	}
	return &t, nil
}

// IsDateOnly 判断输入是否为不带时间的 YYYY-MM-DD
func IsDateOnly(s string) bool {
	_, err := time.Parse(DateFormat, s)
	return err == nil
}
