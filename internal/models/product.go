package models

// Product represents a product the business sells.
type Product struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Stock      int    `json:"stock"`
	Price      Money  `json:"price"`
	NumberSold int    `json:"number_sold"`
	IsRetired  bool   `json:"is_retired"`
}

// Field implements query.Record.
func (p Product) Field(name string) (any, bool) {
	switch name {
	case "id":
		return p.ID, true
	case "name":
		return p.Name, true
	case "stock":
		return p.Stock, true
	case "price":
		return p.Price, true
	case "number_sold":
		return p.NumberSold, true
	case "is_retired":
		return p.IsRetired, true
	}
	return nil, false
}

// ProductPatch carries the fields of a partial product update. Nil means unchanged.
type ProductPatch struct {
	Name       *string
	Stock      *int
	Price      *Money
	NumberSold *int
	IsRetired  *bool
}

// Apply returns p with the patch applied.
func (pp ProductPatch) Apply(p Product) Product {
	if pp.Name != nil {
		p.Name = *pp.Name
	}
	if pp.Stock != nil {
		p.Stock = *pp.Stock
	}
	if pp.Price != nil {
		p.Price = *pp.Price
	}
	if pp.NumberSold != nil {
		p.NumberSold = *pp.NumberSold
	}
	if pp.IsRetired != nil {
		p.IsRetired = *pp.IsRetired
	}
	return p
}
