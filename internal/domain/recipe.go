package domain

// Recipe consumes a quantity of one material item and produces one item chosen
// uniformly from the output pool.
type Recipe struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	MaterialID  string   `json:"material_id"`
	MaterialQty int      `json:"material_qty"`
	Outputs     []string `json:"outputs"`
}
