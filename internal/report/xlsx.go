package report

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/vhoanghac/sellerdash/internal/entity"
	"github.com/xuri/excelize/v2"
)

// currencyNumFmt renders raw numeric cells as Vietnamese đồng amounts.
const currencyNumFmt = `#,###,##0 "₫"`

const (
	sheetSummary      = "Tổng quan"
	sheetOrders       = "Đơn hàng"
	sheetProducts     = "Sản phẩm"
	sheetTopCustomers = "Khách hàng"
	sheetDailyRevenue = "Doanh thu"
	sheetStatuses     = "Trạng thái"
)

// renderXLSX builds the workbook: a summary sheet always, plus one sheet
// per requested section that has rows. Empty sections get no sheet.
func renderXLSX(rep *entity.SellerReport, sections []entity.ReportSection) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	currencyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: strPtr(currencyNumFmt)})
	if err != nil {
		return nil, fmt.Errorf("currency style: %w", err)
	}
	wb := &workbook{f: f, currencyStyle: currencyStyle}

	if err := wb.summarySheet(rep); err != nil {
		return nil, err
	}

	for _, sec := range sections {
		var err error
		switch sec {
		case entity.SectionOrders:
			err = wb.ordersSheet(rep.Orders)
		case entity.SectionProducts:
			err = wb.productsSheet(rep.Products)
		case entity.SectionTopCustomers:
			err = wb.topCustomersSheet(rep.TopCustomers)
		case entity.SectionDailyRevenue:
			err = wb.dailyRevenueSheet(rep.DailyRevenue)
		case entity.SectionStatuses:
			err = wb.statusesSheet(rep.Statuses)
		}
		if err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

type workbook struct {
	f             *excelize.File
	currencyStyle int
}

func (wb *workbook) summarySheet(rep *entity.SellerReport) error {
	// The default sheet becomes the summary.
	if err := wb.f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return fmt.Errorf("summary sheet: %w", err)
	}

	rows := []struct {
		label    string
		value    interface{}
		currency bool
	}{
		{"Cửa hàng", rep.Seller.ShopName, false},
		{"Kỳ báo cáo", rep.Window.Token, false},
		{"Từ ngày", rep.Window.From.Format("2006-01-02"), false},
		{"Đến ngày", rep.Window.To.Format("2006-01-02"), false},
		{"Doanh thu (đã giao)", rep.Revenue, true},
		{"Doanh thu gộp", rep.GrossRevenue, true},
		{"Số đơn hàng", rep.OrderCount, false},
		{"Đơn đã giao", rep.Delivered, false},
		{"Đơn đã hủy", rep.Cancelled, false},
		{"Giá trị đơn trung bình", rep.AvgOrderValue, true},
	}
	for i, r := range rows {
		row := i + 1
		if err := wb.f.SetCellValue(sheetSummary, cell(1, row), r.label); err != nil {
			return err
		}
		if err := wb.setValue(sheetSummary, cell(2, row), r.value, r.currency); err != nil {
			return err
		}
	}
	return wb.f.SetColWidth(sheetSummary, "A", "B", 28)
}

func (wb *workbook) ordersSheet(orders []entity.SellerOrder) error {
	if len(orders) == 0 {
		return nil
	}
	if err := wb.newSheet(sheetOrders,
		"Mã đơn", "Ngày tạo", "Khách hàng", "Tỉnh/Thành", "Trạng thái", "Thanh toán", "Tổng tiền"); err != nil {
		return err
	}
	for i, o := range orders {
		row := i + 2
		wb.f.SetCellValue(sheetOrders, cell(1, row), o.UUID)
		wb.f.SetCellValue(sheetOrders, cell(2, row), o.CreatedAt.Format("2006-01-02 15:04"))
		wb.f.SetCellValue(sheetOrders, cell(3, row), o.CustomerName.String)
		wb.f.SetCellValue(sheetOrders, cell(4, row), o.CustomerProvince.String)
		wb.f.SetCellValue(sheetOrders, cell(5, row), o.Status.String())
		wb.f.SetCellValue(sheetOrders, cell(6, row), o.PaymentMethod)
		if err := wb.setCurrency(sheetOrders, cell(7, row), o.FinalTotal); err != nil {
			return err
		}
	}
	return nil
}

func (wb *workbook) productsSheet(products []entity.Product) error {
	if len(products) == 0 {
		return nil
	}
	if err := wb.newSheet(sheetProducts,
		"Sản phẩm", "Danh mục", "Giá bán", "Tồn kho", "Đã bán"); err != nil {
		return err
	}
	for i, p := range products {
		row := i + 2
		wb.f.SetCellValue(sheetProducts, cell(1, row), p.Name)
		wb.f.SetCellValue(sheetProducts, cell(2, row), p.CategoryName.String)
		if err := wb.setCurrency(sheetProducts, cell(3, row), p.Price); err != nil {
			return err
		}
		wb.f.SetCellValue(sheetProducts, cell(4, row), p.Quantity)
		wb.f.SetCellValue(sheetProducts, cell(5, row), p.TotalSold)
	}
	return nil
}

func (wb *workbook) topCustomersSheet(customers []entity.TopCustomer) error {
	if len(customers) == 0 {
		return nil
	}
	if err := wb.newSheet(sheetTopCustomers,
		"Khách hàng", "Số đơn", "Tổng chi tiêu"); err != nil {
		return err
	}
	for i, c := range customers {
		row := i + 2
		wb.f.SetCellValue(sheetTopCustomers, cell(1, row), c.Name)
		wb.f.SetCellValue(sheetTopCustomers, cell(2, row), c.OrderCount)
		if err := wb.setCurrency(sheetTopCustomers, cell(3, row), c.TotalSpend); err != nil {
			return err
		}
	}
	return nil
}

func (wb *workbook) dailyRevenueSheet(points []entity.RevenuePoint) error {
	if len(points) == 0 {
		return nil
	}
	if err := wb.newSheet(sheetDailyRevenue,
		"Ngày", "Doanh thu", "Lợi nhuận ước tính", "Số đơn"); err != nil {
		return err
	}
	for i, p := range points {
		row := i + 2
		wb.f.SetCellValue(sheetDailyRevenue, cell(1, row), p.Date.Format("2006-01-02"))
		if err := wb.setCurrency(sheetDailyRevenue, cell(2, row), p.Revenue); err != nil {
			return err
		}
		if err := wb.setCurrency(sheetDailyRevenue, cell(3, row), p.Profit); err != nil {
			return err
		}
		wb.f.SetCellValue(sheetDailyRevenue, cell(4, row), p.OrderCount)
	}
	return nil
}

func (wb *workbook) statusesSheet(statuses []entity.StatusCount) error {
	if len(statuses) == 0 {
		return nil
	}
	if err := wb.newSheet(sheetStatuses, "Trạng thái", "Số đơn"); err != nil {
		return err
	}
	for i, s := range statuses {
		row := i + 2
		wb.f.SetCellValue(sheetStatuses, cell(1, row), s.Status.String())
		wb.f.SetCellValue(sheetStatuses, cell(2, row), s.Count)
	}
	return nil
}

func (wb *workbook) newSheet(name string, headers ...string) error {
	if _, err := wb.f.NewSheet(name); err != nil {
		return fmt.Errorf("sheet %s: %w", name, err)
	}
	for i, h := range headers {
		if err := wb.f.SetCellValue(name, cell(i+1, 1), h); err != nil {
			return err
		}
	}
	return nil
}

func (wb *workbook) setValue(sheet, c string, v interface{}, currency bool) error {
	if currency {
		d, ok := v.(decimal.Decimal)
		if ok {
			return wb.setCurrency(sheet, c, d)
		}
	}
	return wb.f.SetCellValue(sheet, c, v)
}

// setCurrency writes the raw numeric value and applies the đồng display
// format, keeping the cell machine readable.
func (wb *workbook) setCurrency(sheet, c string, d decimal.Decimal) error {
	if err := wb.f.SetCellValue(sheet, c, d.InexactFloat64()); err != nil {
		return err
	}
	return wb.f.SetCellStyle(sheet, c, c, wb.currencyStyle)
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func strPtr(s string) *string { return &s }
