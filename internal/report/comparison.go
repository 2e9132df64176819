package report

import "context"

type ProductDetail struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Comparison is a grouped bar chart of stock against units sold.
type Comparison struct {
	Chart
	ProductDetails []ProductDetail `json:"product_details"`
}

// ProductComparison covers every product that is not retired, in id order.
func (s *Service) ProductComparison(ctx context.Context) (Comparison, error) {
	products, err := s.products.GetAll(ctx)
	if err != nil {
		return Comparison{}, err
	}

	labels := []string{}
	details := []ProductDetail{}
	stock := []float64{}
	sold := []float64{}
	for _, p := range products {
		if p.IsRetired {
			continue
		}
		labels = append(labels, p.Name)
		details = append(details, ProductDetail{Name: p.Name, Price: p.Price.InexactFloat64()})
		stock = append(stock, float64(p.Stock))
		sold = append(sold, float64(p.NumberSold))
	}

	return Comparison{
		Chart: Chart{
			Labels: labels,
			Datasets: []Dataset{
				{Label: "Stock", Data: stock, BackgroundColor: "rgba(54, 162, 235, 0.7)", BorderColor: "rgba(54, 162, 235, 1)", BorderWidth: 1},
				{Label: "Number Sold", Data: sold, BackgroundColor: "rgba(255, 99, 132, 0.7)", BorderColor: "rgba(255, 99, 132, 1)", BorderWidth: 1},
			},
		},
		ProductDetails: details,
	}, nil
}
