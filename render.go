package gravatar

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// URL returns the avatar URL. Present options are appended as single-letter
// query parameters in the order default, size, rating, border.
func (p *Profile) URL() string {
	var b strings.Builder
	b.WriteString(p.BaseURL())
	b.WriteString(p.hash)
	if p.fileExtension != "" {
		b.WriteByte('.')
		b.WriteString(p.fileExtension)
	}
	b.WriteByte('?')
	for i, e := range p.options.Entries() {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(OptionName(e.Key).QueryKey())
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(cast.ToString(e.Value)))
	}
	return b.String()
}

// HTML returns an <img> tag for the avatar. width and height are only
// emitted when a size is set.
func (p *Profile) HTML() string {
	var b strings.Builder
	b.WriteString(`<img src="`)
	b.WriteString(p.URL())
	b.WriteByte('"')
	if size, ok := p.Size(); ok {
		n := strconv.Itoa(size)
		b.WriteString(` width="` + n + `" height="` + n + `"`)
	}
	if extra := strings.TrimSpace(p.extraMarkup); extra != "" {
		b.WriteByte(' ')
		b.WriteString(extra)
	}
	b.WriteString(" />")
	return b.String()
}

func (p *Profile) String() string {
	return p.HTML()
}

// existsURL forces a 404 from the service when no avatar is registered.
func (p *Profile) existsURL() string {
	return p.BaseURL() + p.hash + "?d=404"
}
