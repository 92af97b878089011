package model

import (
	"strings"
)

// BackgroundAlpha is appended to a category colour to build its tinted
// column background (#rrggbb -> #rrggbb10)
const BackgroundAlpha = "10"

// DefaultCategoryColor is the colour offered for a new category
const DefaultCategoryColor = "#2563eb"

// Category represents a board column
type Category struct {
	ID              string `json:"id" yaml:"id"`
	Name            string `json:"name" yaml:"name"`
	Color           string `json:"color" yaml:"color"`
	BackgroundColor string `json:"background_color" yaml:"background_color"`
}

// BackgroundFor derives the column background from a category colour
func BackgroundFor(color string) string {
	return color + BackgroundAlpha
}

// WithColor returns the category with its colour set and background recomputed
func (c Category) WithColor(color string) Category {
	c.Color = strings.ToLower(strings.TrimSpace(color))
	c.BackgroundColor = BackgroundFor(c.Color)
	return c
}

// Normalized trims the name and recomputes the background from the colour
func (c Category) Normalized() Category {
	c.Name = strings.TrimSpace(c.Name)
	return c.WithColor(c.Color)
}

// DefaultCategories returns the categories every new board starts with
func DefaultCategories() []Category {
	return []Category{
		Category{ID: "roteiros", Name: "Roteiros"}.WithColor("#2563eb"),
		Category{ID: "prompts", Name: "Prompts"}.WithColor("#0891b2"),
		Category{ID: "outros", Name: "Outros"}.WithColor("#4f46e5"),
	}
}
