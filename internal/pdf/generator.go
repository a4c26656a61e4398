package pdf

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/decioext/quotes-service/internal/model"
)

type Generator struct {
	companyName string
	logoPath    string
}

func NewGenerator(companyName, logoPath string) *Generator {
	return &Generator{companyName: companyName, logoPath: logoPath}
}

// Generate renders the fixed one-page quote layout. The emission date is the
// quote's own created_at, so re-rendering a stored record reproduces the same
// document.
func (g *Generator) Generate(quote model.Quote) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(quote.CreatedAt)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Arial", "", 12)

	// Missing logo is not an error, the header just collapses.
	if g.logoPath != "" && fileExists(g.logoPath) {
		pdf.ImageOptions(g.logoPath, 80, 10, 50, 0, false, gofpdf.ImageOptions{}, 0, "")
		pdf.Ln(35)
	} else {
		pdf.Ln(45)
	}

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, tr(fmt.Sprintf("ORÇAMENTO - %s", strings.ToUpper(g.companyName))), "", 1, "C", false, 0, "")
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 10, tr(fmt.Sprintf("Cliente: %s", quote.Client.Name)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 10, tr(fmt.Sprintf("Endereço: %s - %s", quote.Client.Address, quote.Client.City)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 10, tr(fmt.Sprintf("CNPJ: %s", quote.Client.TaxID)), "", 1, "L", false, 0, "")
	pdf.Ln(5)

	total := 0.0
	for i, item := range quote.Items {
		subtotal := item.ComputeSubtotal()
		descriptor := fmt.Sprintf("%s - %s", item.Model, item.Capacity)
		if item.Accessory != "" {
			descriptor += fmt.Sprintf(" (%s)", item.Accessory)
		}
		pdf.CellFormat(0, 10, tr(fmt.Sprintf("Item %d: %s", i+1, descriptor)), "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 10, tr(fmt.Sprintf("Preço unitário: R$ %.2f", item.UnitPrice)), "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 10, tr(fmt.Sprintf("Quantidade: %d", item.Quantity)), "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 10, tr(fmt.Sprintf("Subtotal: R$ %.2f", subtotal)), "", 1, "L", false, 0, "")
		pdf.Ln(5)
		total += subtotal
	}

	pdf.CellFormat(0, 10, tr(fmt.Sprintf("Total Geral: R$ %.2f", total)), "", 1, "L", false, 0, "")
	pdf.Ln(10)

	pdf.CellFormat(0, 10, tr(fmt.Sprintf("Data de emissão: %s", formatDateTime(quote.CreatedAt))), "", 1, "L", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "I", 11)
	pdf.MultiCell(0, 10, tr(fmt.Sprintf("Este orçamento tem validade de %d dias a partir da data de emissão.", quote.ValidityDays)), "", "L", false)
	pdf.Ln(5)
	pdf.MultiCell(0, 10, tr("Os extintores quando novos não é cobrado placas e instalação."), "", "L", false)
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 10, tr(fmt.Sprintf("Opção de pagamento: %s", quote.PaymentTerms)), "", 1, "L", false, 0, "")
	pdf.Ln(20)

	pdf.SetTextColor(255, 0, 0)
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, tr(fmt.Sprintf("Att.: %s", g.companyName)), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Format("02/01/2006 15:04")
}
