package documents

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/naruerongk-png/inventory/internal/assets"
	custom_error "github.com/naruerongk-png/inventory/pkg/errors"
	"github.com/naruerongk-png/inventory/pkg/models"

	"github.com/jung-kurt/gofpdf"
	"github.com/skip2/go-qrcode"
	"github.com/xuri/excelize/v2"
)

// Label grid geometry, in mm on an A4 page.
const (
	labelWidth   = 45.0
	labelHeight  = 50.0
	gridMarginX  = 10.0
	gridMarginY  = 10.0
	pageBottom   = 280.0
	pageRightEnd = 200.0
)

type DocumentService struct {
	assetService *assets.AssetService
}

func NewService(assetService *assets.AssetService) *DocumentService {
	return &DocumentService{assetService: assetService}
}

// QRCode renders a single asset label as a PNG. The payload is the tag
// and model on separate lines so a plain scanner shows both.
func (s *DocumentService) QRCode(tag string) ([]byte, error) {
	asset, err := s.assetService.GetByTag(tag)
	if err != nil {
		return nil, err
	}

	return qrcode.Encode(qrPayload(asset), qrcode.Medium, 256)
}

// BulkQRPDF lays printable QR labels out on a grid, one cell per asset,
// with the tag and department printed under each code.
func (s *DocumentService) BulkQRPDF(tags []string) ([]byte, error) {
	if len(tags) == 0 {
		return nil, custom_error.NewValidationError("at least one asset tag is required")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 10)
	pdf.AddPage()
	pdf.SetFont("Arial", "", 10)

	x, y := gridMarginX, gridMarginY
	for i, tag := range tags {
		asset, err := s.assetService.GetByTag(tag)
		if err != nil {
			return nil, err
		}

		png, err := qrcode.Encode(qrPayload(asset), qrcode.Medium, 256)
		if err != nil {
			return nil, fmt.Errorf("unable to render QR for %s: %w", tag, err)
		}

		if y+labelHeight > pageBottom {
			pdf.AddPage()
			x, y = gridMarginX, gridMarginY
		}

		name := "qr-" + strconv.Itoa(i)
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))

		pdf.Rect(x, y, labelWidth, labelHeight, "D")
		pdf.ImageOptions(name, x+2, y+2, 40, 40, false, opts, 0, "")
		pdf.SetXY(x, y+42)
		pdf.MultiCell(labelWidth, 4, fmt.Sprintf("%s\n%s", tag, asset.Department), "", "C", false)

		x += labelWidth + 2
		if x+labelWidth > pageRightEnd {
			x = gridMarginX
			y += labelHeight + 2
		}
	}

	return pdfBytes(pdf)
}

// HandoverPDF builds the signed handover form for a set of borrowed assets.
func (s *DocumentService) HandoverPDF(tags []string, borrower string, note string) ([]byte, error) {
	if len(tags) == 0 {
		return nil, custom_error.NewValidationError("at least one asset tag is required")
	}
	if borrower == "" {
		return nil, custom_error.NewValidationError("borrower name is required")
	}

	items := make([]*models.Asset, 0, len(tags))
	for _, tag := range tags {
		asset, err := s.assetService.GetByTag(tag)
		if err != nil {
			return nil, err
		}
		items = append(items, asset)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "IT Asset Handover Form", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 5, "Official Document", "", 1, "C", false, 0, "")
	pdf.Ln(10)

	pdf.SetFillColor(240, 240, 240)
	pdf.SetDrawColor(200, 200, 200)
	pdf.CellFormat(130, 8, " Borrower Name:  "+borrower, "1", 0, "L", true, 0, "")
	pdf.CellFormat(60, 8, " Date: "+time.Now().Format("2006-01-02"), "1", 1, "L", true, 0, "")
	pdf.CellFormat(190, 8, " Note:  "+note, "1", 1, "L", false, 0, "")
	pdf.Ln(5)

	widths := []float64{15, 35, 50, 90}
	headers := []string{"No.", "Asset Tag", "Model", "Serial / Specs"}
	pdf.SetFillColor(50, 50, 50)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Arial", "B", 10)
	for i, header := range headers {
		pdf.CellFormat(widths[i], 8, header, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Arial", "", 10)
	for i, item := range items {
		details := "SN: " + orDash(item.Serial)
		if item.Specs != "" {
			details += " | " + item.Specs
		}
		if len(details) > 60 {
			details = details[:57] + "..."
		}

		pdf.CellFormat(widths[0], 8, strconv.Itoa(i+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 8, tagOrDash(item.Tag), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 8, orDash(item.Model), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 8, details, "1", 1, "L", false, 0, "")
	}

	pdf.Ln(10)
	pdf.MultiCell(0, 5, "Condition: The borrower acknowledges receipt of the above item(s) in good working condition and agrees to return them upon request.", "", "L", false)
	pdf.Ln(10)

	ySig := pdf.GetY()
	pdf.CellFormat(95, 40, "", "1", 0, "", false, 0, "")
	pdf.CellFormat(95, 40, "", "1", 1, "", false, 0, "")
	pdf.SetXY(10, ySig+32)
	pdf.CellFormat(95, 5, "Signed by: "+borrower+" (Borrower)", "", 0, "C", false, 0, "")
	pdf.CellFormat(95, 5, "Approved by: IT Support", "", 1, "C", false, 0, "")

	return pdfBytes(pdf)
}

// ExcelExport dumps the current asset list into a spreadsheet.
func (s *DocumentService) ExcelExport(filter assets.ListFilter) ([]byte, error) {
	list, err := s.assetService.List(filter)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Assets"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("unable to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("unable to drop default sheet: %w", err)
	}

	headers := []string{
		"Asset Tag", "Category", "Model", "Serial Number", "Status",
		"Assigned To", "Vendor", "Department", "Purchase Date",
		"Warranty Date", "Price", "Last Audit",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("unable to write header: %w", err)
		}
	}

	for rowIdx, asset := range list {
		values := []interface{}{
			tagOrDash(asset.Tag), asset.Category, asset.Model, asset.Serial,
			asset.Status, asset.AssignedTo, asset.Vendor, asset.Department,
			dateOrEmpty(asset.PurchaseDate), dateOrEmpty(asset.WarrantyDate),
			asset.Price, dateOrEmpty(asset.LastAuditDate),
		}
		for colIdx, value := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("unable to write row: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("unable to serialize workbook: %w", err)
	}

	return buf.Bytes(), nil
}

func qrPayload(asset *models.Asset) string {
	return tagOrDash(asset.Tag) + "\n" + asset.Model
}

func pdfBytes(pdf *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("unable to serialize PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func tagOrDash(tag *string) string {
	if tag == nil || *tag == "" {
		return "-"
	}
	return *tag
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}

func dateOrEmpty(date *string) string {
	if date == nil {
		return ""
	}
	return *date
}
