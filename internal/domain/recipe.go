package domain

// Ingredient is an item (or potion) name with a count
type Ingredient struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// CraftingRecipe converts materials into a higher tier item
type CraftingRecipe struct {
	Name      string       `json:"name"`
	Materials []Ingredient `json:"materials"`
	Output    Ingredient   `json:"output"`
}

// PotionRecipe converts materials into a luck potion.
// Output.Name is the internal potion id, not a droppable item.
type PotionRecipe struct {
	Name           string       `json:"name"`
	Materials      []Ingredient `json:"materials"`
	Output         Ingredient   `json:"output"`
	LuckMultiplier float64      `json:"luck_multiplier"`
}

// PotionEffect maps an internal potion id to its one-roll multiplier
type PotionEffect struct {
	PotionID   string  `json:"potion_id"`
	Multiplier float64 `json:"multiplier"`
}

// Shortfall describes how many of a material are missing for a single craft
type Shortfall struct {
	Material string `json:"material"`
	Required int    `json:"required"`
	Owned    int    `json:"owned"`
	Missing  int    `json:"missing"`
}
