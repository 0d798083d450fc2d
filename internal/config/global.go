package config

import "fmt"

// Global describes whether a predefined global variable may be reassigned.
type Global string

const (
	GlobalReadonly Global = "readonly"
	GlobalWritable Global = "writable"
	GlobalOff      Global = "off"
)

// ParseGlobal also accepts the legacy spellings "readable"/"writeable" and
// booleans (true is writable, false is readonly).
func ParseGlobal(value any) (Global, error) {
	switch v := value.(type) {
	case bool:
		if v {
			return GlobalWritable, nil
		}
		return GlobalReadonly, nil
	case string:
		switch v {
		case "readonly", "readable":
			return GlobalReadonly, nil
		case "writable", "writeable":
			return GlobalWritable, nil
		case "off":
			return GlobalOff, nil
		}
	case Global:
		return ParseGlobal(string(v))
	}
	return "", fmt.Errorf("%w (got %v)", ErrInvalidGlobal, value)
}
