package excel

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/decioext/quotes-service/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate writes the quote listing to a single-sheet workbook.
func (g *Generator) Generate(quotes []model.Quote) ([]byte, error) {
	file := excelize.NewFile()

	sheet := "Orçamentos"
	file.SetSheetName("Sheet1", sheet)

	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	headers := []string{"Cliente", "Cidade", "CNPJ", "Data", "Itens", "Total (R$)"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		set(cell, header)
	}

	for i, quote := range quotes {
		row := i + 2
		set(fmt.Sprintf("A%d", row), quote.Client.Name)
		set(fmt.Sprintf("B%d", row), quote.Client.City)
		set(fmt.Sprintf("C%d", row), quote.Client.TaxID)
		set(fmt.Sprintf("D%d", row), formatDate(quote.CreatedAt))
		set(fmt.Sprintf("E%d", row), len(quote.Items))
		set(fmt.Sprintf("F%d", row), fmt.Sprintf("%.2f", quote.GrandTotal()))
	}

	_ = file.SetColWidth(sheet, "A", "A", 40)
	_ = file.SetColWidth(sheet, "B", "C", 24)
	_ = file.SetColWidth(sheet, "D", "D", 14)
	_ = file.SetColWidth(sheet, "E", "F", 12)

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}
