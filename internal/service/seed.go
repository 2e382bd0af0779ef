package service

import "github.com/scentworks/perfumeshop/internal/store"

func strPtr(s string) *string { return &s }

// sampleProducts is the development seed data inserted by SeedIfEmpty.
var sampleProducts = []store.Product{
	{
		Title:       "Citrus Bloom Eau de Parfum",
		Description: strPtr("A bright, sparkling blend of bergamot, neroli, and white musk."),
		Price:       68.0,
		Category:    "perfume",
		InStock:     true,
		Image:       strPtr("https://images.unsplash.com/photo-1541643600914-78b084683601?q=80&w=1200&auto=format&fit=crop"),
		Rating:      4.7,
		Notes:       []string{"bergamot", "neroli", "white musk"},
	},
	{
		Title:       "Amber Leaf Elixir",
		Description: strPtr("Warm amber wrapped in vanilla and a hint of tobacco leaf."),
		Price:       84.0,
		Category:    "perfume",
		InStock:     true,
		Image:       strPtr("https://images.unsplash.com/photo-1595433707802-6b2626ef1c86?q=80&w=1200&auto=format&fit=crop"),
		Rating:      4.6,
		Notes:       []string{"amber", "vanilla", "tobacco"},
	},
	{
		Title:       "Verdant Whisper",
		Description: strPtr("Green tea freshness meets jasmine petals and cedarwood."),
		Price:       72.0,
		Category:    "perfume",
		InStock:     true,
		Image:       strPtr("https://images.unsplash.com/photo-1563170423-18f482d82cc8?q=80&w=1200&auto=format&fit=crop"),
		Rating:      4.5,
		Notes:       []string{"green tea", "jasmine", "cedarwood"},
	},
}
