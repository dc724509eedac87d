package core

// Fallback presentation for purchases whose category no longer exists.
const (
	FallbackEmoji = "🍽️"
	FallbackColor = "#717171"
)

// ResolveCategory looks up a category by id and always returns a usable
// definition. Unknown ids (e.g. the category was deleted after the purchase
// was recorded) degrade to a synthetic definition carrying the raw id as
// label and neutral emoji/color.
func ResolveCategory(categories []Category, id string) Category {
	for _, c := range categories {
		if c.ID == id {
			return c
		}
	}
	return Category{
		ID:    id,
		Label: id,
		Emoji: FallbackEmoji,
		Color: FallbackColor,
	}
}

// DefaultCategories returns the seed set created for a fresh installation.
// Default categories cannot be deleted.
func DefaultCategories(nowMillis int64) []Category {
	return []Category{
		{ID: "fast-food", Label: "Fast Food", Emoji: "🍔", Color: "#ea1d2c", Order: 1, IsDefault: true, CreatedAt: nowMillis},
		{ID: "japonesa", Label: "Japonesa", Emoji: "🍣", Color: "#a037f0", Order: 2, IsDefault: true, CreatedAt: nowMillis},
		{ID: "saudavel", Label: "Saudável", Emoji: "🥗", Color: "#1ea664", Order: 3, IsDefault: true, CreatedAt: nowMillis},
		{ID: "sobremesa", Label: "Sobremesa", Emoji: "🍰", Color: "#e7a74e", Order: 4, IsDefault: true, CreatedAt: nowMillis},
		{ID: "bebidas", Label: "Bebidas", Emoji: "🥤", Color: "#3b82f6", Order: 5, IsDefault: true, CreatedAt: nowMillis},
		{ID: "outras", Label: "Outras", Emoji: "🍽️", Color: "#717171", Order: 6, IsDefault: true, CreatedAt: nowMillis},
	}
}
