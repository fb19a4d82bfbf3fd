package domain

// FilterOptions lists the distinct values the dashboard can filter by,
// sorted for stable dropdowns.
type FilterOptions struct {
	Clients     []string `json:"clientes"`
	Contractors []string `json:"contratistas"`
	Statuses    []string `json:"estados"`
	Buildings   []string `json:"edificios"`
}
