// Package linkcheck verifies that links between generated pages resolve.
package linkcheck

import (
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/nieomylnieja/refdoc/internal/mdsyntax"
	"github.com/nieomylnieja/refdoc/internal/page"
)

// Dangling is a link pointing at a page which was not generated.
type Dangling struct {
	// Page is the name of the page containing the link.
	Page        string `json:"page"`
	Destination string `json:"destination"`
}

// Checker resolves links against a set of generated pages.
type Checker struct {
	// Prefix marks link destinations pointing at generated pages.
	// Links without it are not checked.
	Prefix string
	known  map[string]struct{}
}

// New creates a [Checker] aware of the given page names.
func New(prefix string, pageNames ...string) *Checker {
	c := &Checker{Prefix: prefix, known: make(map[string]struct{}, len(pageNames))}
	c.Add(pageNames...)
	return c
}

// Add registers generated pages.
func (c *Checker) Add(pageNames ...string) {
	for _, name := range pageNames {
		c.known[name] = struct{}{}
	}
}

// Check returns the dangling links of every page, in page order.
func (c *Checker) Check(pages ...page.Page) []Dangling {
	var dangling []Dangling
	for _, p := range pages {
		for _, dest := range ExtractLinks([]byte(p.Content)) {
			if !c.resolves(dest) {
				dangling = append(dangling, Dangling{Page: p.Name, Destination: dest})
			}
		}
	}
	return dangling
}

func (c *Checker) resolves(dest string) bool {
	if c.Prefix == "" || !strings.HasPrefix(dest, c.Prefix) {
		return true
	}
	target := strings.TrimPrefix(dest, c.Prefix)
	if i := strings.IndexByte(target, '#'); i >= 0 {
		target = target[:i]
	}
	name, ok := strings.CutSuffix(target, mdsyntax.Extension)
	if !ok {
		return false
	}
	_, ok = c.known[name]
	return ok
}

// ExtractLinks returns the destinations of every inline link of a markdown document.
func ExtractLinks(body []byte) []string {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	root := md.Parser().Parse(text.NewReader(body))

	var links []string
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		if link, ok := n.(*gmast.Link); ok {
			links = append(links, string(link.Destination))
		}
		return gmast.WalkContinue, nil
	})
	return links
}
