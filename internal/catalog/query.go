package catalog

import (
	"regexp"
	"sort"
	"strings"

	"github.com/JackHouche/cbdproject/internal/domain"
)

// Query helpers over a product slice. All of them are pure: they never touch
// the repository and never mutate their input.

func Active(products []domain.Product) []domain.Product {
	return filter(products, func(p domain.Product) bool { return p.Active })
}

func Featured(products []domain.Product) []domain.Product {
	return filter(products, func(p domain.Product) bool { return p.Featured && p.Active })
}

func Promo(products []domain.Product) []domain.Product {
	return filter(products, func(p domain.Product) bool { return p.Promo && p.Active })
}

func FilterByCategory(products []domain.Product, category string) []domain.Product {
	return filter(products, func(p domain.Product) bool {
		return p.Active && p.Category == category
	})
}

// Search matches the query against name, description and category,
// case-insensitively. Inactive products never match.
func Search(products []domain.Product, query string) []domain.Product {
	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" {
		return Active(products)
	}
	return filter(products, func(p domain.Product) bool {
		if !p.Active {
			return false
		}
		return strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.Description), term) ||
			strings.Contains(strings.ToLower(p.Category), term)
	})
}

// Categories derives the distinct category list from active products,
// alphabetically, for the storefront navigation.
func Categories(products []domain.Product) []domain.Category {
	seen := make(map[string]bool)
	var out []domain.Category
	for _, p := range products {
		if !p.Active || p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, domain.Category{
			ID:   Slugify(p.Category),
			Name: p.Category,
			Slug: Slugify(p.Category),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

type SortField string

const (
	SortByName   SortField = "name"
	SortByPrice  SortField = "price"
	SortByRating SortField = "rating"
)

// SortBy returns a sorted copy. Unknown fields sort by name.
func SortBy(products []domain.Product, field SortField, descending bool) []domain.Product {
	out := make([]domain.Product, len(products))
	copy(out, products)

	less := func(a, b domain.Product) bool {
		switch field {
		case SortByPrice:
			return a.Price < b.Price
		case SortByRating:
			return a.Rating < b.Rating
		default:
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if descending {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

type Stats struct {
	TotalProducts    int          `json:"total_products"`
	ActiveProducts   int          `json:"active_products"`
	InactiveProducts int          `json:"inactive_products"`
	FeaturedProducts int          `json:"featured_products"`
	PromoProducts    int          `json:"promo_products"`
	LowStockProducts int          `json:"low_stock_products"`
	OutOfStock       int          `json:"out_of_stock_products"`
	TotalValue       domain.Cents `json:"total_value"`
}

const lowStockThreshold = 5

func ComputeStats(products []domain.Product) Stats {
	var s Stats
	s.TotalProducts = len(products)
	for _, p := range products {
		if p.Active {
			s.ActiveProducts++
		} else {
			s.InactiveProducts++
		}
		if p.Featured {
			s.FeaturedProducts++
		}
		if p.Promo {
			s.PromoProducts++
		}
		if p.Stock == 0 {
			s.OutOfStock++
		} else if p.Stock < lowStockThreshold {
			s.LowStockProducts++
		}
		s.TotalValue += p.Price.Times(p.Stock)
	}
	return s
}

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns a display name into a URL slug.
func Slugify(name string) string {
	slug := slugRe.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}

func filter(products []domain.Product, keep func(domain.Product) bool) []domain.Product {
	var out []domain.Product
	for _, p := range products {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
