package models

// Transaction is a sale (or refund) with the ordered list of product names it involved.
// The list may repeat a name and may contain UnknownProduct.
type Transaction struct {
	ID       int      `json:"id"`
	Total    Money    `json:"total"`
	Date     Date     `json:"date"`
	Type     string   `json:"type"`
	Products []string `json:"products"`
}

func (t Transaction) Field(name string) (any, bool) {
	switch name {
	case "id":
		return t.ID, true
	case "total":
		return t.Total, true
	case "date":
		return t.Date, true
	case "type":
		return t.Type, true
	case "products":
		return t.Products, true
	}
	return nil, false
}

// SalesOf counts how many entries of the product list name the given product.
func (t Transaction) SalesOf(product string) int {
	n := 0
	for _, name := range t.Products {
		if SameName(name, product) {
			n++
		}
	}
	return n
}

type TransactionPatch struct {
	Total    *Money
	Date     *Date
	Type     *string
	Products *[]string
}

func (tp TransactionPatch) Apply(t Transaction) Transaction {
	if tp.Total != nil {
		t.Total = *tp.Total
	}
	if tp.Date != nil {
		t.Date = *tp.Date
	}
	if tp.Type != nil {
		t.Type = *tp.Type
	}
	if tp.Products != nil {
		t.Products = append([]string(nil), (*tp.Products)...)
	}
	return t
}
