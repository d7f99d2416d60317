// Package content serves the read-only portfolio document.
package content

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrNotConfigured is returned by Load when the content file does not exist.
var ErrNotConfigured = errors.New("portfolio content not configured")

// Load reads and normalises the portfolio document at path.
func Load(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotConfigured
	}
	if err != nil {
		return nil, fmt.Errorf("read portfolio content: %w", err)
	}
	return Parse(raw)
}

// Parse decodes a YAML document. Unknown fields are rejected.
func Parse(raw []byte) (*Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse portfolio content: %w", err)
	}
	doc.normalize()
	return &doc, nil
}

func (d *Document) normalize() {
	for i := range d.Skills.Categories {
		cat := &d.Skills.Categories[i]
		cat.Icon = SkillCategoryIcons.Resolve(cat.Icon)
		for j := range cat.Skills {
			cat.Skills[j].Level = clamp(cat.Skills[j].Level, 0, 100)
		}
	}
	for i := range d.Skills.SoftSkills {
		d.Skills.SoftSkills[i].Icon = SoftSkillIcons.Resolve(d.Skills.SoftSkills[i].Icon)
	}
	for i := range d.About.Hobbies {
		d.About.Hobbies[i].Icon = HobbyIcons.Resolve(d.About.Hobbies[i].Icon)
	}
	for i := range d.Contact.Info {
		d.Contact.Info[i].Icon = ContactIcons.Resolve(d.Contact.Info[i].Icon)
	}
	for i := range d.Testimonials {
		d.Testimonials[i].Rating = clamp(d.Testimonials[i].Rating, 1, 5)
	}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
