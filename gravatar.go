// Package gravatar builds Gravatar avatar URLs and <img> markup from email
// addresses and checks whether an avatar is registered for an address.
//
//	p := gravatar.New("user@example.com")
//	fmt.Println(p.URL())  // http://gravatar.com/avatar/<hash>?s=80
//	fmt.Println(p)        // <img src="..." width="80" height="80" />
package gravatar

import (
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cast"

	"github.com/totegamma/gravatar/internal/utils"
)

// Profile holds an address and the display options of its avatar.
// Build one with New or NewFromConfig; a zero Profile is usable but starts
// without the default size. A Profile is not safe for concurrent mutation.
type Profile struct {
	email   string
	hash    string
	hasHash bool

	options       utils.OrderedKVMap[any]
	fileExtension string
	extraMarkup   string

	baseURL string
	checker Checker
}

// ProfileOption customizes a Profile at construction.
type ProfileOption func(*Profile)

// WithBaseURL replaces the service base path. The hash is appended to it
// directly, so it should end with a slash.
func WithBaseURL(baseURL string) ProfileOption {
	return func(p *Profile) {
		if baseURL != "" {
			p.baseURL = baseURL
		}
	}
}

// WithChecker sets the checker used by Exists.
func WithChecker(checker Checker) ProfileOption {
	return func(p *Profile) {
		if checker != nil {
			p.checker = checker
		}
	}
}

func newProfile(opts []ProfileOption) *Profile {
	p := &Profile{
		options: utils.OrderedKVMap[any]{},
		baseURL: BaseURL,
		checker: DefaultChecker,
	}
	p.setOption(OptionSize, DefaultSize)
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// New returns a profile for email. An invalid address leaves the profile
// without an identity; check Email or Hash when that matters.
func New(email string, opts ...ProfileOption) *Profile {
	p := newProfile(opts)
	p.SetEmail(email)
	return p
}

// NewFromConfig builds a profile from a configuration mapping. Recognized
// keys are email, default, size, rating, border, fileExtension and
// extraMarkup (file_extension and extra are accepted as aliases). Keys are
// applied in sorted order through the regular setters, so a rejected email
// or rating is ignored just like an explicit call. Unknown keys fail with a
// *ConfigurationError.
func NewFromConfig(cfg map[string]any, opts ...ProfileOption) (*Profile, error) {
	p := newProfile(opts)
	if err := p.Apply(cfg); err != nil {
		return nil, err
	}
	return p, nil
}

// Apply applies a configuration mapping to p. Every key is checked before
// anything is changed, so a failing mapping leaves p untouched.
func (p *Profile) Apply(cfg map[string]any) error {
	keys := make([]string, 0, len(cfg))
	for key := range cfg {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	setters := make([]func(), 0, len(keys))
	for _, key := range keys {
		setter, err := p.setterFor(key, cfg[key])
		if err != nil {
			return err
		}
		setters = append(setters, setter)
	}
	for _, set := range setters {
		set()
	}
	return nil
}

func (p *Profile) setterFor(key string, val any) (func(), error) {
	switch key {
	case "email":
		s, err := cast.ToStringE(val)
		if err != nil {
			return nil, errInvalidValue(key, val)
		}
		return func() { p.SetEmail(s) }, nil
	case "default":
		if val == nil {
			return func() { p.unsetOption(OptionDefault) }, nil
		}
		s, err := cast.ToStringE(val)
		if err != nil {
			return nil, errInvalidValue(key, val)
		}
		return func() { p.SetDefault(s) }, nil
	case "size":
		size, err := toSize(val)
		if err != nil {
			return nil, errInvalidValue(key, val)
		}
		return func() { p.SetSize(size) }, nil
	case "rating":
		s, err := cast.ToStringE(val)
		if err != nil {
			return nil, errInvalidValue(key, val)
		}
		return func() { p.SetRating(s) }, nil
	case "border":
		if val == nil {
			return func() { p.unsetOption(OptionBorder) }, nil
		}
		s, err := cast.ToStringE(val)
		if err != nil {
			return nil, errInvalidValue(key, val)
		}
		return func() { p.SetBorder(s) }, nil
	case "fileExtension", "file_extension":
		s, err := cast.ToStringE(val)
		if err != nil {
			return nil, errInvalidValue(key, val)
		}
		return func() { p.SetFileExtension(s) }, nil
	case "extraMarkup", "extra":
		s, err := cast.ToStringE(val)
		if err != nil {
			return nil, errInvalidValue(key, val)
		}
		return func() { p.SetExtraMarkup(s) }, nil
	default:
		return nil, errNoSuchOption(key)
	}
}

// toSize reads strings as plain decimal; anything unparsable is 0.
func toSize(val any) (int, error) {
	if s, ok := val.(string); ok {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return 0, nil
		}
		return n, nil
	}
	return cast.ToIntE(val)
}

// SetEmail stores email and recomputes the hash. It returns false and
// changes nothing when email does not look like an address.
func (p *Profile) SetEmail(email string) bool {
	if !IsValidEmail(email) {
		return false
	}
	p.email = email
	p.hash = HashEmail(email)
	p.hasHash = true
	return true
}

// SetDefault sets the image served when no avatar exists: a keyword such
// as identicon, monsterid, wavatar or 404, or an absolute image URL.
func (p *Profile) SetDefault(value string) {
	p.setOption(OptionDefault, value)
}

// SetRating sets the maximum rating. Values other than G, PG, R and X are
// rejected and the previous rating is kept.
func (p *Profile) SetRating(value string) bool {
	rating := Rating(value)
	if !rating.Valid() {
		return false
	}
	p.setOption(OptionRating, string(rating))
	return true
}

// SetSize sets the avatar size in pixels. Non-positive sizes clear it so
// the service default applies.
func (p *Profile) SetSize(size int) {
	if size <= 0 {
		p.unsetOption(OptionSize)
		return
	}
	p.setOption(OptionSize, size)
}

// SetExtraMarkup appends attributes to the rendered <img> tag.
func (p *Profile) SetExtraMarkup(value string) {
	if p.extraMarkup == "" {
		p.extraMarkup = value
		return
	}
	p.extraMarkup += " " + value
}

// SetFileExtension sets the extension appended to the avatar path, without
// the leading dot.
func (p *Profile) SetFileExtension(ext string) {
	p.fileExtension = ext
}

// SetBorder sets the border color, e.g. F00 or FF0000.
func (p *Profile) SetBorder(color string) {
	p.setOption(OptionBorder, color)
}

func (p *Profile) setOption(name OptionName, value any) {
	if p.options == nil {
		p.options = utils.OrderedKVMap[any]{}
	}
	p.options.Put(string(name), value, optionOrder[name])
}

func (p *Profile) unsetOption(name OptionName) {
	delete(p.options, string(name))
}

func (p *Profile) Email() string {
	return p.email
}

// Hash returns the identity hash, if an address has been set.
func (p *Profile) Hash() (string, bool) {
	return p.hash, p.hasHash
}

func (p *Profile) FileExtension() string {
	return p.fileExtension
}

func (p *Profile) ExtraMarkup() string {
	return p.extraMarkup
}

// BaseURL returns the service base path the profile renders against.
func (p *Profile) BaseURL() string {
	if p.baseURL == "" {
		return BaseURL
	}
	return p.baseURL
}

// Option returns the value of an option in string form, or "" if absent.
func (p *Profile) Option(name OptionName) string {
	v, ok := p.options.Lookup(string(name))
	if !ok {
		return ""
	}
	return cast.ToString(v)
}

// HasOption reports whether an option is set.
func (p *Profile) HasOption(name OptionName) bool {
	_, ok := p.options.Lookup(string(name))
	return ok
}

// IsUnset reports whether an option is absent.
func (p *Profile) IsUnset(name OptionName) bool {
	return !p.HasOption(name)
}

// Options returns the present options in URL order.
func (p *Profile) Options() []Option {
	entries := p.options.Entries()
	options := make([]Option, len(entries))
	for i, e := range entries {
		options[i] = Option{Name: OptionName(e.Key), Value: e.Value}
	}
	return options
}

func (p *Profile) Size() (int, bool) {
	v, ok := p.options.Lookup(string(OptionSize))
	if !ok {
		return 0, false
	}
	return v.(int), true
}

func (p *Profile) Rating() (Rating, bool) {
	v, ok := p.options.Lookup(string(OptionRating))
	if !ok {
		return "", false
	}
	return Rating(v.(string)), true
}

func (p *Profile) Default() (string, bool) {
	v, ok := p.options.Lookup(string(OptionDefault))
	if !ok {
		return "", false
	}
	return v.(string), true
}

func (p *Profile) Border() (string, bool) {
	v, ok := p.options.Lookup(string(OptionBorder))
	if !ok {
		return "", false
	}
	return v.(string), true
}
