package menu

// Catalog is the restaurant's static menu: ordered categories plus a
// short-code index. It is built once at startup and never mutated.
type Catalog struct {
	categories []Category
	byCode     map[string]MenuItem
}

// NewCatalog builds a catalog from the given categories, prepending the
// aggregated "All Items" view and indexing items by short code.
func NewCatalog(categories []Category) *Catalog {
	var all []MenuItem
	byCode := make(map[string]MenuItem)
	for _, cat := range categories {
		for _, item := range cat.Items {
			all = append(all, item)
			byCode[item.ShortCode] = item
		}
	}

	ordered := make([]Category, 0, len(categories)+1)
	ordered = append(ordered, Category{Name: "All Items", Items: all})
	ordered = append(ordered, categories...)

	return &Catalog{
		categories: ordered,
		byCode:     byCode,
	}
}

// Categories returns the ordered category list, "All Items" first.
func (c *Catalog) Categories() []Category {
	return c.categories
}

// CategoryNames returns the ordered category names.
func (c *Catalog) CategoryNames() []string {
	names := make([]string, len(c.categories))
	for i, cat := range c.categories {
		names[i] = cat.Name
	}
	return names
}

// Item looks up an item by its short code.
func (c *Catalog) Item(shortCode string) (MenuItem, bool) {
	item, ok := c.byCode[shortCode]
	return item, ok
}

// DefaultCatalog returns the Spice Heaven menu.
func DefaultCatalog() *Catalog {
	return NewCatalog(defaultCategories)
}

var defaultCategories = []Category{
	{
		Name: "Chicken Items",
		Items: []MenuItem{
			{ShortCode: "chicken-pakora", Name: "Chicken Pakora", Price: 115, Description: "Crispy deep-fried chicken fritters marinated with aromatic spices and gram flour coating. Served hot with mint chutney.", Image: "chicken-pakora"},
			{ShortCode: "chicken-lolipop", Name: "Chicken Lolipop", Price: 125, Description: "Indo-Chinese style chicken drumettes marinated in spicy batter, deep-fried until golden and crispy. A perfect appetizer.", Image: "chicken-lolipop"},
			{ShortCode: "chicken-kosha", Name: "Chicken Kasha", Price: 110, Description: "Traditional Bengali-style dry chicken curry with whole spices, slow-cooked to perfection with rich flavors.", Image: "chicken-kosha"},
			{ShortCode: "chilly-chicken", Name: "Chilly Chicken", Price: 120, Description: "Popular Indo-Chinese dish with crispy chicken pieces tossed in spicy chili sauce with bell peppers and onions.", Image: "chilly-chicken"},
			{ShortCode: "chicken-butter-masla", Name: "Chicken Butter Masala", Price: 120, Description: "Tender chicken pieces in a silky smooth tomato-based gravy enriched with butter, cream, and aromatic spices.", Image: "chicken-butter-masla"},
			{ShortCode: "kadai-chicken", Name: "Kadai Chicken", Price: 140, Description: "Spicy chicken cooked in a traditional iron kadai with bell peppers, tomatoes, and freshly ground kadai masala.", Image: "kadai-chicken"},
			{ShortCode: "chicken-rezala", Name: "Chicken Rezala", Price: 140, Description: "Aromatic Bengali white chicken curry made with yogurt, poppy seeds, and cashews. Delicately spiced and creamy.", Image: "chicken-rezala"},
			{ShortCode: "chicken-momo-steam", Name: "Chicken Momo Steam (5pc)", Price: 50, Description: "Steamed dumplings filled with seasoned minced chicken and vegetables. Served with spicy red chutney.", Image: "chicken-momo-steam"},
			{ShortCode: "chicken-tikka", Name: "Chicken Tikka (5pc)", Price: 100, Description: "Succulent boneless chicken pieces marinated in yogurt and tandoori spices, grilled in a clay oven.", Image: "chicken-tikka"},
			{ShortCode: "chicken-tandoor", Name: "Tandooro Full", Price: 400, HalfPrice: 200, Description: "Whole chicken marinated overnight in yogurt and tandoori spices, roasted in a clay oven. Serves 3-4 people.", Image: "chicken-tandoor"},
		},
	},
	{
		Name: "Vegetarian Items",
		Items: []MenuItem{
			{ShortCode: "mix-veg", Name: "Mix Veg", Price: 50, Description: "Colorful medley of fresh seasonal vegetables cooked in a mildly spiced gravy with tomatoes and onions.", Image: "mix-veg"},
			{ShortCode: "paneer-butter-masla", Name: "Paneer Butter Masala", Price: 150, Description: "Soft paneer cubes in a rich, creamy tomato-based gravy with butter and aromatic spices. A classic favorite.", Image: "paneer-butter-masla"},
			{ShortCode: "tadka", Name: "Tadka", Price: 40, Description: "Yellow lentils tempered with ghee, cumin, garlic, and dried red chilies. Simple yet flavorful comfort food.", Image: "tadka"},
			{ShortCode: "paneer-chilly", Name: "Paneer Chilly", Price: 100, Description: "Crispy paneer cubes stir-fried with bell peppers, onions, and green chilies in a spicy Indo-Chinese sauce.", Image: "paneer-chilly"},
			{ShortCode: "chana-masla", Name: "Chana Masala", Price: 40, Description: "Chickpeas simmered in a tangy tomato-onion gravy with aromatic spices. Healthy and delicious.", Image: "chana-masla"},
		},
	},
	{
		Name: "Biryani",
		Items: []MenuItem{
			{ShortCode: "chicken-briyani", Name: "Chicken Biryani", Price: 120, Description: "Fragrant basmati rice layered with tender chicken pieces, aromatic spices, saffron, and fried onions. Served with raita.", Image: "chicken-briyani"},
			{ShortCode: "alu-briyani", Name: "Aloo Biryani", Price: 90, Description: "Vegetarian delight with spiced potatoes layered with fragrant basmati rice, herbs, and aromatic spices.", Image: "alu-briyani"},
			{ShortCode: "egg-briyani", Name: "Egg Biryani", Price: 100, Description: "Flavorful biryani with boiled eggs layered in aromatic basmati rice with whole spices and saffron.", Image: "egg-briyani"},
		},
	},
	{
		Name: "Bread",
		Items: []MenuItem{
			{ShortCode: "nm-roti", Name: "Roti", Price: 5, Description: "Soft, thin whole wheat flatbread cooked on a tawa. Perfect accompaniment to any curry.", Image: "nm-roti"},
			{ShortCode: "alu-paratha", Name: "Aloo Paratha", Price: 25, Description: "Stuffed whole wheat flatbread filled with spiced mashed potatoes. Served with butter, curd, and pickle.", Image: "alu-paratha"},
			{ShortCode: "butter-nan", Name: "Butter Naan", Price: 10, Description: "Soft, fluffy leavened bread baked in a tandoor and brushed with butter. A classic favorite.", Image: "butter-nan"},
			{ShortCode: "tandoori-roti", Name: "Tandoori Roti", Price: 7, Description: "Whole wheat flatbread baked in a traditional clay tandoor oven. Slightly smoky and crispy.", Image: "tandoori-roti"},
		},
	},
	{
		Name: "Rolls",
		Items: []MenuItem{
			{ShortCode: "egg-roll", Name: "Egg Roll", Price: 40, Description: "Soft paratha wrapped around spiced egg omelet with onions, green chilies, and sauces. Quick and tasty.", Image: "egg-roll"},
			{ShortCode: "chicken-roll", Name: "Chicken Roll", Price: 60, Description: "Succulent chicken tikka pieces wrapped in soft paratha with onions, mint chutney, and spicy sauces.", Image: "chicken-roll"},
			{ShortCode: "paneer-roll", Name: "Paneer Roll", Price: 60, Description: "Grilled paneer cubes with onions, bell peppers, and sauces wrapped in soft paratha. Perfect vegetarian option.", Image: "paneer-roll"},
		},
	},
	{
		Name: "Veg Rice",
		Items: []MenuItem{
			{ShortCode: "veg-rice", Name: "Veg Rice", Price: 70, Description: "Colorful fried rice with mixed vegetables, aromatic spices, and herbs. Light yet satisfying.", Image: "veg-rice"},
			{ShortCode: "jeera-rice", Name: "Jeera Rice", Price: 70, Description: "Simple basmati rice tempered with cumin seeds and ghee. Perfect with any curry.", Image: "jeera-rice"},
			{ShortCode: "veg-polao", Name: "Veg Polao", Price: 90, Description: "Fragrant basmati rice cooked with mixed vegetables, whole spices, and aromatic herbs.", Image: "veg-polao"},
		},
	},
	{
		Name: "Non-Veg Rice",
		Items: []MenuItem{
			{ShortCode: "egg-rice", Name: "Egg Rice", Price: 80, Description: "Tasty fried rice with scrambled eggs, vegetables, and savory sauces. Protein-rich and delicious.", Image: "egg-rice"},
			{ShortCode: "chicken-rice", Name: "Chicken Rice", Price: 120, Description: "Flavorful fried rice with tender chicken pieces, vegetables, and aromatic spices.", Image: "chicken-rice"},
			{ShortCode: "mixed-rice", Name: "Mixed Rice", Price: 150, Description: "Loaded fried rice with chicken, egg, and vegetables. A complete meal in itself.", Image: "mixed-rice"},
		},
	},
	{
		Name: "Chowmein",
		Items: []MenuItem{
			{ShortCode: "veg-chow", Name: "Veg Chowmein", Price: 50, HalfPrice: 30, Description: "Classic Hakka noodles stir-fried with fresh vegetables, garlic, and savory sauces. Light and healthy.", Image: "veg-chow"},
			{ShortCode: "egg-chow", Name: "Egg Chowmein", Price: 60, HalfPrice: 40, Description: "Hakka noodles tossed with scrambled eggs, vegetables, and Indo-Chinese sauces. Perfect balance.", Image: "egg-chow"},
			{ShortCode: "egg-chicken-chow", Name: "Egg Chicken Chowmein", Price: 80, HalfPrice: 50, Description: "Best of both worlds - noodles with chicken and eggs, vegetables, and flavorful sauces.", Image: "egg-chicken-chow"},
			{ShortCode: "panner-chow", Name: "Paneer Chowmein", Price: 90, HalfPrice: 50, Description: "Hakka noodles with soft paneer cubes, colorful vegetables, and spicy-tangy sauce.", Image: "panner-chow"},
			{ShortCode: "mix-chow", Name: "Mixed Chowmein", Price: 120, HalfPrice: 70, Description: "Ultimate chowmein loaded with chicken, egg, paneer, vegetables, and special sauces. Most popular!", Image: "mix-chow"},
			{ShortCode: "chicken-chow", Name: "Chicken Chowmein", Price: 70, HalfPrice: 50, Description: "Delicious noodles stir-fried with tender chicken pieces, crunchy vegetables, and aromatic sauces.", Image: "chicken-chow"},
		},
	},
}
