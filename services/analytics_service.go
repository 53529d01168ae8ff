package services

import (
	"sort"

	"perfume-store/models"
)

type DayRevenue struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

type ProductSales struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Revenue   float64 `json:"revenue"`
}

type Dashboard struct {
	TotalRevenue      float64        `json:"totalRevenue"`
	TotalOrders       int            `json:"totalOrders"`
	AverageOrderValue float64        `json:"averageOrderValue"`
	RevenueByDay      []DayRevenue   `json:"revenueByDay"`
	TopProducts       []ProductSales `json:"topProducts"`
}

const topProductsLimit = 5

// BuildDashboard aggregates upstream order records into the admin analytics
// view. Cancelled orders are excluded from every figure.
func BuildDashboard(orders []models.Order) Dashboard {
	byDay := make(map[string]*DayRevenue)
	byProduct := make(map[string]*ProductSales)

	var dashboard Dashboard
	for _, o := range orders {
		if o.Status == "cancelled" {
			continue
		}

		dashboard.TotalOrders++
		dashboard.TotalRevenue += o.Total

		day := o.CreatedAt.Format("2006-01-02")
		if d, ok := byDay[day]; ok {
			d.Revenue += o.Total
			d.Orders++
		} else {
			byDay[day] = &DayRevenue{Date: day, Revenue: o.Total, Orders: 1}
		}

		for _, item := range o.Items {
			if p, ok := byProduct[item.ProductID]; ok {
				p.Quantity += item.Quantity
				p.Revenue += item.Price * float64(item.Quantity)
			} else {
				byProduct[item.ProductID] = &ProductSales{
					ProductID: item.ProductID,
					Name:      item.Name,
					Quantity:  item.Quantity,
					Revenue:   item.Price * float64(item.Quantity),
				}
			}
		}
	}

	dashboard.TotalRevenue = models.Round2(dashboard.TotalRevenue)
	if dashboard.TotalOrders > 0 {
		dashboard.AverageOrderValue = models.Round2(dashboard.TotalRevenue / float64(dashboard.TotalOrders))
	}

	dashboard.RevenueByDay = make([]DayRevenue, 0, len(byDay))
	for _, d := range byDay {
		d.Revenue = models.Round2(d.Revenue)
		dashboard.RevenueByDay = append(dashboard.RevenueByDay, *d)
	}
	sort.Slice(dashboard.RevenueByDay, func(i, j int) bool {
		return dashboard.RevenueByDay[i].Date < dashboard.RevenueByDay[j].Date
	})

	dashboard.TopProducts = make([]ProductSales, 0, len(byProduct))
	for _, p := range byProduct {
		p.Revenue = models.Round2(p.Revenue)
		dashboard.TopProducts = append(dashboard.TopProducts, *p)
	}
	sort.Slice(dashboard.TopProducts, func(i, j int) bool {
		if dashboard.TopProducts[i].Quantity != dashboard.TopProducts[j].Quantity {
			return dashboard.TopProducts[i].Quantity > dashboard.TopProducts[j].Quantity
		}
		return dashboard.TopProducts[i].ProductID < dashboard.TopProducts[j].ProductID
	})
	if len(dashboard.TopProducts) > topProductsLimit {
		dashboard.TopProducts = dashboard.TopProducts[:topProductsLimit]
	}

	return dashboard
}
