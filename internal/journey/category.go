package journey

import (
	"math/rand/v2"
	"sync"
)

// Category tags an entry with a traffic-light mood.
type Category string

const (
	CategoryRed    Category = "red"
	CategoryYellow Category = "yellow"
	CategoryGreen  Category = "green"
)

// Categories returns the fixed set of categories.
func Categories() []Category {
	return []Category{CategoryRed, CategoryYellow, CategoryGreen}
}

// Valid reports whether c is one of the fixed categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryRed, CategoryYellow, CategoryGreen:
		return true
	}
	return false
}

// Categorizer assigns a category to submitted text.
type Categorizer interface {
	Categorize(text string) Category
}

// CategorizerFunc adapts a function to Categorizer.
type CategorizerFunc func(text string) Category

func (f CategorizerFunc) Categorize(text string) Category { return f(text) }

// RandomCategorizer picks a category uniformly at random and ignores the text.
// It is a placeholder until entries are classified by sentiment.
// A nil r uses the global source.
func RandomCategorizer(r *rand.Rand) Categorizer {
	all := Categories()
	if r == nil {
		return CategorizerFunc(func(string) Category {
			return all[rand.IntN(len(all))]
		})
	}
	var mu sync.Mutex
	return CategorizerFunc(func(string) Category {
		mu.Lock()
		defer mu.Unlock()
		return all[r.IntN(len(all))]
	})
}
