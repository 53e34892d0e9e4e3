package domain

import "time"

type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	Price         Cents     `json:"price"`
	OriginalPrice *Cents    `json:"original_price,omitempty"`
	Stock         int       `json:"stock"`
	Rating        float64   `json:"rating"`
	ReviewCount   int       `json:"review_count"`
	Active        bool      `json:"active"`
	Featured      bool      `json:"featured"`
	Promo         bool      `json:"promo"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}
