package domain

import "github.com/totegamma/gravatar/internal/utils"

// Avatar is the rendered view of a profile.
type Avatar struct {
	Email   string                  `json:"email"`
	Hash    string                  `json:"hash"`
	URL     string                  `json:"url"`
	HTML    string                  `json:"html"`
	Options utils.OrderedKVMap[any] `json:"options"`
}
