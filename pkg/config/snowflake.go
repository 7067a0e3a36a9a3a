package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Snowflake is a Discord identifier. It is decoded from either a JSON integer or a quoted decimal string so that
// large IDs never pass through a float.
type Snowflake string

// UnmarshalJSON implements the json.Unmarshaler interface.
func (s *Snowflake) UnmarshalJSON(b []byte) error {
	raw := bytes.TrimSpace(b)
	if bytes.Equal(raw, []byte("null")) {
		return fmt.Errorf("snowflake is null")
	}

	text := string(raw)
	if len(raw) > 0 && raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return fmt.Errorf("invalid snowflake %s: %w", raw, err)
		}
	}

	id, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid snowflake %s: %w", raw, err)
	} else if id == 0 {
		return fmt.Errorf("invalid snowflake %s: must be greater than zero", raw)
	}

	*s = Snowflake(strconv.FormatUint(id, 10))
	return nil
}

// String implements the fmt.Stringer interface.
func (s Snowflake) String() string {
	return string(s)
}
