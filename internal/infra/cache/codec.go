package cache

import "fmt"

const (
	valueExists  = "1"
	valueMissing = "0"
)

func encode(exists bool) string {
	if exists {
		return valueExists
	}
	return valueMissing
}

func decode(val string) (bool, bool, error) {
	switch val {
	case valueExists:
		return true, true, nil
	case valueMissing:
		return false, true, nil
	default:
		return false, false, fmt.Errorf("unexpected cached value %q", val)
	}
}
