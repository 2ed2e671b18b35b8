package gravatar

import (
	"context"
	"time"
)

const (
	// BaseURL is the Gravatar avatar endpoint. The hash is appended directly.
	BaseURL = "http://gravatar.com/avatar/"

	// DefaultSize is the size a new profile starts with.
	DefaultSize = 80

	// DefaultTimeout bounds a single existence check.
	DefaultTimeout = 3 * time.Second
)

// Rating is the maximum content rating an avatar may carry.
type Rating string

const (
	RatingG  Rating = "G"
	RatingPG Rating = "PG"
	RatingR  Rating = "R"
	RatingX  Rating = "X"
)

var ratings = []Rating{RatingG, RatingPG, RatingR, RatingX}

// Valid reports whether r is one of the ratings the service understands.
// The comparison is case-sensitive.
func (r Rating) Valid() bool {
	for _, candidate := range ratings {
		if r == candidate {
			return true
		}
	}
	return false
}

// OptionName names one of the URL options of a profile.
type OptionName string

const (
	OptionDefault OptionName = "default"
	OptionSize    OptionName = "size"
	OptionRating  OptionName = "rating"
	OptionBorder  OptionName = "border"
)

// optionOrder is the order options appear in a rendered URL.
var optionOrder = map[OptionName]int64{
	OptionDefault: 0,
	OptionSize:    1,
	OptionRating:  2,
	OptionBorder:  3,
}

// QueryKey returns the single-letter query parameter used by the service.
func (n OptionName) QueryKey() string {
	if n == "" {
		return ""
	}
	return string(n[:1])
}

// Option is a present option and its value.
type Option struct {
	Name  OptionName
	Value any
}

// Checker answers whether a URL resolves to an existing avatar.
type Checker interface {
	Check(ctx context.Context, rawURL string) (bool, error)
}
