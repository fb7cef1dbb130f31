// Package pages turns Markdown files into pages for the segmented pager.
package pages

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"

	"github.com/kyaoi/mdtabs/internal/segment"
)

// Page is one Markdown document shown as a tab.
type Page struct {
	Title        string
	Icon         string
	SelectedIcon string
	Tags         []string
	Order        int
	Path         string
	Body         string
}

type matter struct {
	Title        string   `yaml:"title" toml:"title"`
	Icon         string   `yaml:"icon" toml:"icon"`
	SelectedIcon string   `yaml:"selected_icon" toml:"selected_icon"`
	Tags         []string `yaml:"tags" toml:"tags"`
	Order        int      `yaml:"order" toml:"order"`
}

// LoadFile reads a Markdown file and splits off its front matter.
func LoadFile(path string) (Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Page{}, err
	}
	return Parse(path, data)
}

// Parse builds a page from raw file contents. Files without front matter are
// accepted as they are.
func Parse(path string, data []byte) (Page, error) {
	var m matter
	body, err := frontmatter.Parse(bytes.NewReader(data), &m)
	if err != nil {
		return Page{}, fmt.Errorf("front matter in %s: %w", path, err)
	}
	title := strings.TrimSpace(m.Title)
	if title == "" {
		base := filepath.Base(path)
		title = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return Page{
		Title:        title,
		Icon:         m.Icon,
		SelectedIcon: m.SelectedIcon,
		Tags:         m.Tags,
		Order:        m.Order,
		Path:         path,
		Body:         string(body),
	}, nil
}

// HasTag reports whether the page lists tag, ignoring case.
func (p Page) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// FilterByTag keeps the pages that carry tag. An empty tag keeps everything.
func FilterByTag(list []Page, tag string) []Page {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return list
	}
	var out []Page
	for _, p := range list {
		if p.HasTag(tag) {
			out = append(out, p)
		}
	}
	return out
}

// Sort orders pages by their front matter order, then by title.
func Sort(list []Page) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Order != list[j].Order {
			return list[i].Order < list[j].Order
		}
		return strings.ToLower(list[i].Title) < strings.ToLower(list[j].Title)
	})
}

// Items converts pages into strip items in display order.
func Items(list []Page) []segment.Item {
	items := make([]segment.Item, len(list))
	for i, p := range list {
		items[i] = segment.Item{
			Index:        i,
			Label:        p.Title,
			Icon:         p.Icon,
			SelectedIcon: p.SelectedIcon,
		}
	}
	return items
}
