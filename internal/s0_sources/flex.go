package s0_sources

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Upstream caches are written by several collectors. Numbers sometimes
// arrive as strings with thousands separators and booleans as 0/1.

// flexFloat accepts a JSON number, a numeric string or null
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	v, err := parseNumber(b)
	if err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}

// flexInt accepts a JSON number, a numeric string or null (fractions truncate)
type flexInt int

func (i *flexInt) UnmarshalJSON(b []byte) error {
	v, err := parseNumber(b)
	if err != nil {
		return err
	}
	*i = flexInt(int(v))
	return nil
}

// flexBool accepts true/false, "true"/"false", 0/1 or null
type flexBool bool

func (fb *flexBool) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch string(b) {
	case "null", `""`:
		*fb = false
		return nil
	case "true":
		*fb = true
		return nil
	case "false":
		*fb = false
		return nil
	}

	s := string(b)
	if unq, err := strconv.Unquote(s); err == nil {
		s = unq
	}
	if v, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
		*fb = flexBool(v)
		return nil
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
		*fb = v != 0
		return nil
	}
	return fmt.Errorf("invalid boolean %s", string(b))
}

// flexString accepts a string, a number or null
type flexString string

func (fs *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if string(b) == "null" {
		*fs = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*fs = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*fs = flexString(n.String())
		return nil
	}
	return fmt.Errorf("invalid string %s", string(b))
}

func parseNumber(b []byte) (float64, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return 0, nil
	}

	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return 0, err
		}
		s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
		if s == "" {
			return 0, nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid number %q", s)
		}
		return finite(v)
	}

	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return 0, err
	}
	return finite(v)
}

func finite(v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite number")
	}
	return v, nil
}
