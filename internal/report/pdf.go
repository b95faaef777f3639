package report

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
	"github.com/vhoanghac/sellerdash/internal/entity"
)

// renderPDF builds the one-page report: the summary block plus compact
// tables for the requested sections that have rows. The core fonts only
// cover latin glyphs, so labels go through the cp1252 translator and lose
// some diacritics.
func renderPDF(rep *entity.SellerReport, sections []entity.ReportSection) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(fmt.Sprintf("Báo cáo bán hàng: %s", rep.Seller.ShopName)), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("%s (%s - %s)",
		rep.Window.Token,
		rep.Window.From.Format("2006-01-02"),
		rep.Window.To.Format("2006-01-02"),
	), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	summary(pdf, tr, rep)

	for _, sec := range sections {
		switch sec {
		case entity.SectionTopCustomers:
			topCustomersTable(pdf, tr, rep.TopCustomers)
		case entity.SectionStatuses:
			statusesTable(pdf, tr, rep.Statuses)
		case entity.SectionDailyRevenue:
			dailyRevenueTable(pdf, tr, rep.DailyRevenue)
		case entity.SectionOrders:
			ordersTable(pdf, tr, rep.Orders)
		case entity.SectionProducts:
			productsTable(pdf, tr, rep.Products)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf output: %w", err)
	}
	return buf.Bytes(), nil
}

type translator func(string) string

func summary(pdf *fpdf.Fpdf, tr translator, rep *entity.SellerReport) {
	rows := [][2]string{
		{"Doanh thu (đã giao)", money(rep.Revenue)},
		{"Doanh thu gộp", money(rep.GrossRevenue)},
		{"Số đơn hàng", fmt.Sprintf("%d", rep.OrderCount)},
		{"Đơn đã giao", fmt.Sprintf("%d", rep.Delivered)},
		{"Đơn đã hủy", fmt.Sprintf("%d", rep.Cancelled)},
		{"Giá trị đơn trung bình", money(rep.AvgOrderValue)},
	}
	pdf.SetFont("Helvetica", "", 10)
	for _, r := range rows {
		pdf.CellFormat(70, 7, tr(r[0]), "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 7, tr(r[1]), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
}

func sectionTitle(pdf *fpdf.Fpdf, tr translator, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, tr(title), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
}

func ordersTable(pdf *fpdf.Fpdf, tr translator, orders []entity.SellerOrder) {
	if len(orders) == 0 {
		return
	}
	sectionTitle(pdf, tr, "Đơn hàng")
	header(pdf, tr, []col{{"Mã đơn", 45}, {"Ngày", 25}, {"Khách hàng", 45}, {"Trạng thái", 30}, {"Tổng tiền", 40}})
	for _, o := range orders {
		pdf.CellFormat(45, 6, o.UUID, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, o.CreatedAt.Format("2006-01-02"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(45, 6, tr(o.CustomerName.String), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, o.Status.String(), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, tr(money(o.FinalTotal)), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
}

func productsTable(pdf *fpdf.Fpdf, tr translator, products []entity.Product) {
	if len(products) == 0 {
		return
	}
	sectionTitle(pdf, tr, "Sản phẩm")
	header(pdf, tr, []col{{"Sản phẩm", 70}, {"Giá bán", 40}, {"Tồn kho", 25}, {"Đã bán", 25}})
	for _, p := range products {
		pdf.CellFormat(70, 6, tr(p.Name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, tr(money(p.Price)), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%d", p.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%d", p.TotalSold), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
}

func topCustomersTable(pdf *fpdf.Fpdf, tr translator, customers []entity.TopCustomer) {
	if len(customers) == 0 {
		return
	}
	sectionTitle(pdf, tr, "Khách hàng hàng đầu")
	header(pdf, tr, []col{{"Khách hàng", 80}, {"Số đơn", 30}, {"Tổng chi tiêu", 50}})
	for _, c := range customers {
		pdf.CellFormat(80, 6, tr(c.Name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%d", c.OrderCount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(50, 6, tr(money(c.TotalSpend)), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
}

func dailyRevenueTable(pdf *fpdf.Fpdf, tr translator, points []entity.RevenuePoint) {
	if len(points) == 0 {
		return
	}
	sectionTitle(pdf, tr, "Doanh thu theo ngày")
	header(pdf, tr, []col{{"Ngày", 30}, {"Doanh thu", 45}, {"Lợi nhuận ước tính", 45}, {"Số đơn", 25}})
	for _, p := range points {
		pdf.CellFormat(30, 6, p.Date.Format("2006-01-02"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(45, 6, tr(money(p.Revenue)), "1", 0, "R", false, 0, "")
		pdf.CellFormat(45, 6, tr(money(p.Profit)), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%d", p.OrderCount), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
}

func statusesTable(pdf *fpdf.Fpdf, tr translator, statuses []entity.StatusCount) {
	if len(statuses) == 0 {
		return
	}
	sectionTitle(pdf, tr, "Trạng thái đơn hàng")
	header(pdf, tr, []col{{"Trạng thái", 60}, {"Số đơn", 30}})
	for _, s := range statuses {
		pdf.CellFormat(60, 6, s.Status.String(), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%d", s.Count), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
}

type col struct {
	title string
	width float64
}

func header(pdf *fpdf.Fpdf, tr translator, cols []col) {
	pdf.SetFont("Helvetica", "B", 9)
	for i, c := range cols {
		ln := 0
		if i == len(cols)-1 {
			ln = 1
		}
		pdf.CellFormat(c.width, 6, tr(c.title), "1", ln, "L", false, 0, "")
	}
	pdf.SetFont("Helvetica", "", 9)
}

func money(d decimal.Decimal) string {
	return fmt.Sprintf("%s ₫", groupDigits(d.Round(0).String()))
}

// groupDigits inserts thousands separators into a plain integer string.
func groupDigits(s string) string {
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, c)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}
