package infosimples

import "encoding/json"

// Flex is a string that tolerates JSON numbers and null on unmarshal.
type Flex string

// UnmarshalJSON accepts a string, a number (kept as its literal text) or
// null (empty string).
func (f *Flex) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = Flex(s)
		return nil
	}
	*f = Flex(b)
	return nil
}

func (f Flex) String() string { return string(f) }

// FlexAmount is a monetary field that may arrive as a string, a number or
// null. Number tokens keep their literal text but are flagged, since they are
// plain decimals rather than BR-formatted strings and must not go through a
// locale-aware parser.
type FlexAmount struct {
	Value  string
	Number bool
}

// UnmarshalJSON accepts a string, a number or null (empty value).
func (f *FlexAmount) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = FlexAmount{}
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexAmount{Value: s}
		return nil
	}
	*f = FlexAmount{Value: string(b), Number: true}
	return nil
}

func (f FlexAmount) String() string { return f.Value }
