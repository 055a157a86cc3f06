package sqlite

import (
	"encoding/json"
)

// EncodeTimestamps serializes a millisecond timestamp list for storage in a
// TEXT column. An empty or nil list encodes as "[]".
func EncodeTimestamps(millis []int64) (string, error) {
	if len(millis) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(millis)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodeTimestamps parses a millisecond timestamp list from a TEXT column.
func DecodeTimestamps(s string) ([]int64, error) {
	if s == "" || s == "[]" {
		return nil, nil
	}
	var millis []int64
	if err := json.Unmarshal([]byte(s), &millis); err != nil {
		return nil, err
	}
	return millis, nil
}

// BoolToInt converts a bool to the 0/1 integer representation used by
// SQLite columns.
func BoolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
