package analytics

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/vhoanghac/sellerdash/internal/entity"
)

// OtherBucket is the label for items whose product or category is missing
// and for customers without a default province.
const OtherBucket = "Khác"

const (
	segmentNew       = "new"
	segmentReturning = "returning"
)

// GrossRevenue sums final_total over every order in the slice, regardless of
// status. This is the dashboard's "gross revenue" figure; the seller report
// uses DeliveredRevenue instead.
func GrossRevenue(orders []entity.SellerOrder) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		total = total.Add(o.FinalTotal)
	}
	return total
}

// DeliveredRevenue sums final_total over DELIVERED orders only.
func DeliveredRevenue(orders []entity.SellerOrder) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		if o.Status == entity.OrderStatusDelivered {
			total = total.Add(o.FinalTotal)
		}
	}
	return total
}

// UniqueCustomers counts distinct customer ids among orders that have one.
func UniqueCustomers(orders []entity.SellerOrder) int {
	seen := make(map[int64]struct{})
	for _, o := range orders {
		if o.CustomerID.Valid {
			seen[o.CustomerID.Int64] = struct{}{}
		}
	}
	return len(seen)
}

// AverageOrderValue is revenue / orderCount, zero when there are no orders.
func AverageOrderValue(revenue decimal.Decimal, orderCount int) decimal.Decimal {
	if orderCount == 0 {
		return decimal.Zero
	}
	return revenue.Div(decimal.NewFromInt(int64(orderCount))).Round(2)
}

// ConversionRate estimates orders per distinct customer as a percentage.
// With no visitor tracking this is an estimate, not a funnel metric.
func ConversionRate(orderCount, uniqueCustomers int) decimal.Decimal {
	if uniqueCustomers == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(orderCount)).
		Div(decimal.NewFromInt(int64(uniqueCustomers))).
		Mul(decimal.NewFromInt(100)).Round(2)
}

// RevenueSeries buckets orders by calendar date of creation and emits one
// point for every date in the window, zero-filled, no gaps. Profit is
// revenue times the assumed margin.
func RevenueSeries(orders []entity.SellerOrder, w entity.Window, margin decimal.Decimal) []entity.RevenuePoint {
	loc := w.From.Location()
	type bucket struct {
		revenue decimal.Decimal
		count   int
	}
	byDay := make(map[string]bucket)
	for _, o := range orders {
		key := o.CreatedAt.In(loc).Format("2006-01-02")
		b := byDay[key]
		b.revenue = b.revenue.Add(o.FinalTotal)
		b.count++
		byDay[key] = b
	}

	points := make([]entity.RevenuePoint, 0, w.Days)
	for cur := w.From; !cur.After(w.To); cur = cur.AddDate(0, 0, 1) {
		b := byDay[cur.Format("2006-01-02")]
		rev := b.revenue
		if rev.IsZero() {
			rev = decimal.Zero
		}
		points = append(points, entity.RevenuePoint{
			Date:       cur,
			Revenue:    rev,
			Profit:     rev.Mul(margin).Round(2),
			OrderCount: b.count,
		})
	}
	return points
}

// CategoryRevenue sums order-item line totals by product category, sorted
// descending by revenue. Items without a category land in OtherBucket.
func CategoryRevenue(orders []entity.SellerOrder) []entity.CategoryRevenue {
	type bucket struct {
		revenue  decimal.Decimal
		quantity int
	}
	byCategory := make(map[string]bucket)
	for _, o := range orders {
		for _, it := range o.Items {
			name := OtherBucket
			if it.CategoryName.Valid && it.CategoryName.String != "" {
				name = it.CategoryName.String
			}
			b := byCategory[name]
			b.revenue = b.revenue.Add(it.LineTotal)
			b.quantity += it.Quantity
			byCategory[name] = b
		}
	}

	result := make([]entity.CategoryRevenue, 0, len(byCategory))
	for name, b := range byCategory {
		result = append(result, entity.CategoryRevenue{
			CategoryName: name,
			Revenue:      b.revenue,
			Quantity:     b.quantity,
		})
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Revenue.Equal(result[j].Revenue) {
			return result[i].Revenue.GreaterThan(result[j].Revenue)
		}
		return result[i].CategoryName < result[j].CategoryName
	})
	return result
}

// CustomerSegments classifies each in-window customer as returning (more
// than one order in the window) or new, and returns both labeled counts.
func CustomerSegments(orders []entity.SellerOrder) []entity.CustomerSegment {
	ordersByCustomer := make(map[int64]int)
	for _, o := range orders {
		if o.CustomerID.Valid {
			ordersByCustomer[o.CustomerID.Int64]++
		}
	}
	var newCount, returningCount int
	for _, n := range ordersByCustomer {
		if n > 1 {
			returningCount++
		} else {
			newCount++
		}
	}
	return []entity.CustomerSegment{
		{Label: segmentNew, Count: newCount},
		{Label: segmentReturning, Count: returningCount},
	}
}

// Geography counts distinct customers per default-address province and
// returns the top limit provinces by count. Customers without a province
// count under OtherBucket.
func Geography(orders []entity.SellerOrder, limit int) []entity.ProvinceCount {
	provinceByCustomer := make(map[int64]string)
	for _, o := range orders {
		if !o.CustomerID.Valid {
			continue
		}
		province := OtherBucket
		if o.CustomerProvince.Valid && o.CustomerProvince.String != "" {
			province = o.CustomerProvince.String
		}
		provinceByCustomer[o.CustomerID.Int64] = province
	}

	counts := make(map[string]int)
	for _, p := range provinceByCustomer {
		counts[p]++
	}
	result := make([]entity.ProvinceCount, 0, len(counts))
	for p, n := range counts {
		result = append(result, entity.ProvinceCount{Province: p, Count: n})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Province < result[j].Province
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result
}

// TopProducts ranks products by in-window item revenue, top limit,
// descending. The trend compares each product's revenue against the
// comparison window via PercentChange.
func TopProducts(current, previous []entity.SellerOrder, limit int) []entity.TopProduct {
	type bucket struct {
		name     string
		revenue  decimal.Decimal
		quantity int
	}
	cur := make(map[int]bucket)
	for _, o := range current {
		for _, it := range o.Items {
			b := cur[it.ProductID]
			b.name = it.ProductName
			b.revenue = b.revenue.Add(it.LineTotal)
			b.quantity += it.Quantity
			cur[it.ProductID] = b
		}
	}
	prev := make(map[int]decimal.Decimal)
	for _, o := range previous {
		for _, it := range o.Items {
			prev[it.ProductID] = prev[it.ProductID].Add(it.LineTotal)
		}
	}

	result := make([]entity.TopProduct, 0, len(cur))
	for id, b := range cur {
		result = append(result, entity.TopProduct{
			ProductID:   id,
			ProductName: b.name,
			Revenue:     b.revenue,
			Quantity:    b.quantity,
			TrendPct:    PercentChange(b.revenue, prev[id]),
		})
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Revenue.Equal(result[j].Revenue) {
			return result[i].Revenue.GreaterThan(result[j].Revenue)
		}
		return result[i].ProductID < result[j].ProductID
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result
}

// BestSellerFallback converts all-time best sellers into placeholder
// top-product entries for windows with no sales at all.
func BestSellerFallback(products []entity.Product, limit int) []entity.TopProduct {
	result := make([]entity.TopProduct, 0, limit)
	for _, p := range products {
		if p.TotalSold <= 0 {
			continue
		}
		result = append(result, entity.TopProduct{
			ProductID:   p.ID,
			ProductName: p.Name,
			ImageURL:    p.ImageURL,
			Revenue:     decimal.Zero,
			Quantity:    p.TotalSold,
			TrendPct:    0,
		})
		if len(result) == limit {
			break
		}
	}
	return result
}

// LowStock tags products below the dashboard threshold: danger at or below
// zero on hand, warning otherwise.
func LowStock(products []entity.Product) []entity.LowStockProduct {
	result := make([]entity.LowStockProduct, 0, len(products))
	for _, p := range products {
		severity := entity.StockSeverityWarning
		if p.Quantity <= 0 {
			severity = entity.StockSeverityDanger
		}
		result = append(result, entity.LowStockProduct{
			ProductID: p.ID,
			Name:      p.Name,
			Quantity:  p.Quantity,
			Severity:  severity,
		})
	}
	return result
}

// StockAlerts is the analytics view: the limit lowest-stock products,
// critical at five or fewer on hand.
func StockAlerts(products []entity.Product, limit int) []entity.LowStockProduct {
	sorted := make([]entity.Product, len(products))
	copy(sorted, products)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Quantity != sorted[j].Quantity {
			return sorted[i].Quantity < sorted[j].Quantity
		}
		return sorted[i].ID < sorted[j].ID
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	result := make([]entity.LowStockProduct, 0, len(sorted))
	for _, p := range sorted {
		severity := entity.StockSeverityWarning
		if p.Quantity <= 5 {
			severity = entity.StockSeverityCritical
		}
		result = append(result, entity.LowStockProduct{
			ProductID: p.ID,
			Name:      p.Name,
			Quantity:  p.Quantity,
			Severity:  severity,
		})
	}
	return result
}

// TrafficSeries fabricates a visitors/views/bounce series from order
// activity. No visitor tracking exists; the formulas are placeholders kept
// for behavioral parity: visitors is twice the day's distinct customers
// (minimum one), views is three visitors each, and bounce rate falls five
// points per order with a 20% floor.
func TrafficSeries(orders []entity.SellerOrder, w entity.Window) []entity.TrafficPoint {
	loc := w.From.Location()
	type bucket struct {
		customers map[int64]struct{}
		orders    int
	}
	byDay := make(map[string]*bucket)
	for _, o := range orders {
		key := o.CreatedAt.In(loc).Format("2006-01-02")
		b := byDay[key]
		if b == nil {
			b = &bucket{customers: make(map[int64]struct{})}
			byDay[key] = b
		}
		b.orders++
		if o.CustomerID.Valid {
			b.customers[o.CustomerID.Int64] = struct{}{}
		}
	}

	points := make([]entity.TrafficPoint, 0, w.Days)
	for cur := w.From; !cur.After(w.To); cur = cur.AddDate(0, 0, 1) {
		var customers, orderCount int
		if b := byDay[cur.Format("2006-01-02")]; b != nil {
			customers = len(b.customers)
			orderCount = b.orders
		}
		visitors := customers * 2
		if visitors < 1 {
			visitors = 1
		}
		bounce := 70.0 - float64(orderCount)*5.0
		if bounce < 20.0 {
			bounce = 20.0
		}
		points = append(points, entity.TrafficPoint{
			Date:       cur,
			Visitors:   visitors,
			PageViews:  visitors * 3,
			BounceRate: bounce,
		})
	}
	return points
}

// TrafficSources counts orders per payment-method tag, descending. A
// stand-in for acquisition channels; no real source attribution exists.
func TrafficSources(orders []entity.SellerOrder) []entity.TrafficSource {
	counts := make(map[string]int)
	for _, o := range orders {
		counts[o.PaymentMethod]++
	}
	result := make([]entity.TrafficSource, 0, len(counts))
	for src, n := range counts {
		result = append(result, entity.TrafficSource{Source: src, Count: n})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Source < result[j].Source
	})
	return result
}

// TopCustomers ranks in-window customers by total spend, top limit.
func TopCustomers(orders []entity.SellerOrder, limit int) []entity.TopCustomer {
	type bucket struct {
		name   string
		spend  decimal.Decimal
		orders int
	}
	byCustomer := make(map[int64]bucket)
	for _, o := range orders {
		if !o.CustomerID.Valid {
			continue
		}
		b := byCustomer[o.CustomerID.Int64]
		if o.CustomerName.Valid {
			b.name = o.CustomerName.String
		}
		b.spend = b.spend.Add(o.FinalTotal)
		b.orders++
		byCustomer[o.CustomerID.Int64] = b
	}

	result := make([]entity.TopCustomer, 0, len(byCustomer))
	for id, b := range byCustomer {
		result = append(result, entity.TopCustomer{
			CustomerID: int(id),
			Name:       b.name,
			OrderCount: b.orders,
			TotalSpend: b.spend,
		})
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].TotalSpend.Equal(result[j].TotalSpend) {
			return result[i].TotalSpend.GreaterThan(result[j].TotalSpend)
		}
		return result[i].CustomerID < result[j].CustomerID
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result
}

// StatusHistogram counts orders per status, descending by count.
func StatusHistogram(orders []entity.SellerOrder) []entity.StatusCount {
	counts := make(map[entity.OrderStatusName]int)
	for _, o := range orders {
		counts[o.Status]++
	}
	result := make([]entity.StatusCount, 0, len(counts))
	for s, n := range counts {
		result = append(result, entity.StatusCount{Status: s, Count: n})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Status < result[j].Status
	})
	return result
}
