package models

type Expense struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Date  Date   `json:"date"`
	Type  string `json:"type"`
	Price Money  `json:"price"`
}

func (e Expense) Field(name string) (any, bool) {
	switch name {
	case "id":
		return e.ID, true
	case "name":
		return e.Name, true
	case "date":
		return e.Date, true
	case "type":
		return e.Type, true
	case "price":
		return e.Price, true
	}
	return nil, false
}

type ExpensePatch struct {
	Name  *string
	Date  *Date
	Type  *string
	Price *Money
}

func (ep ExpensePatch) Apply(e Expense) Expense {
	if ep.Name != nil {
		e.Name = *ep.Name
	}
	if ep.Date != nil {
		e.Date = *ep.Date
	}
	if ep.Type != nil {
		e.Type = *ep.Type
	}
	if ep.Price != nil {
		e.Price = *ep.Price
	}
	return e
}
