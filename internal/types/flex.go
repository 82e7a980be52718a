package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FlexList accepts either a JSON array or a single bare value
type FlexList[T any] []T

func (f *FlexList[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = nil
		return nil
	}

	if data[0] != '[' {
		var one T
		if err := json.Unmarshal(data, &one); err != nil {
			return err
		}
		*f = FlexList[T]{one}
		return nil
	}

	var many []T
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*f = many
	return nil
}

// MarshalJSON always writes an array, never null
func (f FlexList[T]) MarshalJSON() ([]byte, error) {
	if f == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]T(f))
}

func (f FlexList[T]) Slice() []T {
	return []T(f)
}

// Count is a positive whole number that clients may send as 3, 3.0 or "3"
type Count uint64

// MaxCount is the largest Count accepted from JSON, so Int never wraps
const MaxCount = math.MaxInt32

func (c *Count) UnmarshalJSON(data []byte) error {
	text := strings.TrimSpace(string(data))
	if text == "" || text == "null" {
		return nil
	}
	if text[0] == '"' {
		unquoted, err := strconv.Unquote(text)
		if err != nil {
			return fmt.Errorf("count: %w", err)
		}
		text = strings.TrimSpace(unquoted)
	}

	if n, err := strconv.ParseUint(text, 10, 64); err == nil {
		if n > MaxCount {
			return fmt.Errorf("count: %q is too large", text)
		}
		*c = Count(n)
		return nil
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return fmt.Errorf("count: %q is not a number", text)
	}
	if f < 0 || f != math.Trunc(f) || f > MaxCount {
		return fmt.Errorf("count: %q is not a whole non-negative number", text)
	}
	*c = Count(f)
	return nil
}

func (c Count) MarshalJSON() ([]byte, error) {
	return strconv.AppendUint(nil, uint64(c), 10), nil
}

func (c Count) Int() int {
	return int(c)
}
