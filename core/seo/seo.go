// Package seo builds page metadata (title, description, canonical URL, Open Graph and
// Twitter cards) from the site defaults in core.SiteInfo.
package seo

import (
	"encoding/json"
	"fmt"
	"html"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	"github.com/trezcool/masomo-web/core"
	"github.com/trezcool/masomo-web/core/notice"
)

// DescriptionMaxLen is the longest description search engines display.
const DescriptionMaxLen = 160

// Page describes one page; empty fields fall back to the site defaults.
type Page struct {
	Title       string
	Description string
	Path        string
	Image       string
	Keywords    []string
	Type        string // Open Graph type, "website" by default
	NoIndex     bool
}

// Meta is the resolved metadata of a page.
type Meta struct {
	Title         string
	Description   string
	Canonical     string
	Image         string
	Keywords      []string
	Author        string
	Robots        string
	SiteName      string
	Type          string
	Locale        string
	TwitterCard   string
	TwitterHandle string
	ThemeColor    string
}

type Builder struct {
	site   core.SiteInfo
	strict *bluemonday.Policy
}

func NewBuilder(site core.SiteInfo) *Builder {
	return &Builder{
		site:   site,
		strict: bluemonday.StrictPolicy(),
	}
}

// Page resolves p against the site defaults.
func (b *Builder) Page(p Page) Meta {
	m := Meta{
		Title:         b.title(p.Title),
		Description:   b.description(p.Description),
		Canonical:     b.absURL(p.Path),
		Keywords:      mergeKeywords(b.site.Keywords, p.Keywords),
		Author:        b.site.Author,
		Robots:        "index, follow",
		SiteName:      b.site.Name,
		Type:          p.Type,
		Locale:        b.site.Locale,
		TwitterCard:   "summary",
		TwitterHandle: b.site.TwitterHandle,
		ThemeColor:    b.site.ThemeColor,
	}
	if p.NoIndex {
		m.Robots = "noindex, nofollow"
	}
	if m.Type == "" {
		m.Type = "website"
	}

	img := p.Image
	if img == "" {
		img = b.site.Image
	}
	if img != "" {
		m.Image = b.absURL(img)
		m.TwitterCard = "summary_large_image"
	}
	return m
}

// Notice returns the metadata of a notice's page. The description is the notice details
// stripped of markup.
func (b *Builder) Notice(n notice.Notice) Meta {
	return b.Page(Page{
		Title:       n.Title,
		Description: b.PlainText(n.Details),
		Path:        "/notices/" + n.ID.String(),
		Type:        "article",
		Keywords:    []string{"notice"},
	})
}

// PlainText removes any markup from s and collapses whitespace.
func (b *Builder) PlainText(s string) string {
	return strings.Join(strings.Fields(html.UnescapeString(b.strict.Sanitize(s))), " ")
}

func (b *Builder) title(title string) string {
	title = core.CleanString(title)
	if title == "" {
		return b.site.Title
	}
	if b.site.TitleTemplate == "" || !strings.Contains(b.site.TitleTemplate, "%s") {
		return title
	}
	return fmt.Sprintf(b.site.TitleTemplate, title)
}

func (b *Builder) description(desc string) string {
	desc = strings.Join(strings.Fields(desc), " ")
	if desc == "" {
		desc = b.site.Description
	}
	return truncate(desc, DescriptionMaxLen)
}

// absURL resolves ref (a path or an absolute URL) against the site's base URL.
func (b *Builder) absURL(ref string) string {
	base, err := url.Parse(b.site.BaseURL)
	if err != nil || base.Scheme == "" {
		return ref
	}
	if ref == "" {
		ref = "/"
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	if r.IsAbs() {
		return r.String()
	}
	if !strings.HasPrefix(r.Path, "/") {
		r.Path = "/" + r.Path
	}
	r.Path = strings.TrimSuffix(base.Path, "/") + r.Path
	return base.ResolveReference(r).String()
}

// Organization returns the JSON-LD description of the school.
func (b *Builder) Organization() ([]byte, error) {
	org := struct {
		Context     string `json:"@context"`
		Type        string `json:"@type"`
		Name        string `json:"name"`
		URL         string `json:"url"`
		Description string `json:"description,omitempty"`
		Logo        string `json:"logo,omitempty"`
	}{
		Context:     "https://schema.org",
		Type:        "EducationalOrganization",
		Name:        b.site.Name,
		URL:         b.absURL("/"),
		Description: b.site.Description,
	}
	if b.site.Image != "" {
		org.Logo = b.absURL(b.site.Image)
	}
	return json.Marshal(org)
}

func mergeKeywords(lists ...[]string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, list := range lists {
		for _, kw := range list {
			kw = core.CleanString(kw, true /* lower */)
			if kw == "" || seen[kw] {
				continue
			}
			seen[kw] = true
			out = append(out, kw)
		}
	}
	return out
}

// truncate cuts s to at most limit characters, on a word boundary when possible.
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	r := []rune(s)[:limit-1]
	cut := string(r)
	if i := strings.LastIndex(cut, " "); i >= 0 && utf8.RuneCountInString(cut[:i]) > limit/2 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " .,;:") + "…"
}
