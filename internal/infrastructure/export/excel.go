package export

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/xuri/excelize/v2"
)

var ErrGenerateFail = errors.New("génération du fichier Excel échouée")

const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Sheet une feuille : en-têtes puis lignes de données
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]interface{}
	Widths  []float64
}

// BuildWorkbook écrit les feuilles dans l'ordre. L'en-tête est toujours écrit,
// une feuille sans ligne reste donc un classeur valide.
func BuildWorkbook(sheets ...Sheet) (*bytes.Buffer, error) {
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: aucune feuille", ErrGenerateFail)
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#1F3864"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerateFail, err)
	}
	dataStyle, err := f.NewStyle(&excelize.Style{
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerateFail, err)
	}

	for i, sheet := range sheets {
		idx, err := f.NewSheet(sheet.Name)
		if err != nil {
			return nil, fmt.Errorf("%w: feuille %q: %v", ErrGenerateFail, sheet.Name, err)
		}
		if i == 0 {
			f.SetActiveSheet(idx)
		}
		if err := writeSheet(f, sheet, headerStyle, dataStyle); err != nil {
			return nil, fmt.Errorf("%w: feuille %q: %v", ErrGenerateFail, sheet.Name, err)
		}
	}

	// La feuille par défaut n'est supprimée que si aucune feuille ne porte ce nom
	if !hasSheet(sheets, "Sheet1") {
		f.DeleteSheet("Sheet1")
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerateFail, err)
	}
	return buf, nil
}

// ExportToExcel classeur d'une seule feuille
func ExportToExcel(sheetName string, headers []string, rows [][]interface{}) (*bytes.Buffer, error) {
	return BuildWorkbook(Sheet{Name: sheetName, Headers: headers, Rows: rows})
}

func writeSheet(f *excelize.File, sheet Sheet, headerStyle, dataStyle int) error {
	for col, header := range sheet.Headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet.Name, cell, header); err != nil {
			return err
		}
	}
	if len(sheet.Headers) > 0 {
		first, _ := excelize.CoordinatesToCellName(1, 1)
		last, _ := excelize.CoordinatesToCellName(len(sheet.Headers), 1)
		if err := f.SetCellStyle(sheet.Name, first, last, headerStyle); err != nil {
			return err
		}
	}

	maxCols := len(sheet.Headers)
	for r, row := range sheet.Rows {
		for c, value := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheet.Name, cell, value); err != nil {
				return err
			}
		}
		if len(row) > maxCols {
			maxCols = len(row)
		}
	}
	if len(sheet.Rows) > 0 && maxCols > 0 {
		first, _ := excelize.CoordinatesToCellName(1, 2)
		last, _ := excelize.CoordinatesToCellName(maxCols, len(sheet.Rows)+1)
		if err := f.SetCellStyle(sheet.Name, first, last, dataStyle); err != nil {
			return err
		}
	}

	for c := 0; c < maxCols; c++ {
		width := 22.0
		if c < len(sheet.Widths) && sheet.Widths[c] > 0 {
			width = sheet.Widths[c]
		}
		col, _ := excelize.ColumnNumberToName(c + 1)
		if err := f.SetColWidth(sheet.Name, col, col, width); err != nil {
			return err
		}
	}
	return nil
}

func thinBorders() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "#000000", Style: 1},
		{Type: "top", Color: "#000000", Style: 1},
		{Type: "right", Color: "#000000", Style: 1},
		{Type: "bottom", Color: "#000000", Style: 1},
	}
}

func hasSheet(sheets []Sheet, name string) bool {
	for _, s := range sheets {
		if s.Name == name {
			return true
		}
	}
	return false
}

// FormatKey "tauxConformiteMoyen" -> "Taux Conformite Moyen"
func FormatKey(key string) string {
	if key == "" {
		return key
	}
	var b strings.Builder
	runes := []rune(key)
	for i, r := range runes {
		if i == 0 {
			b.WriteRune(unicode.ToUpper(r))
			continue
		}
		if unicode.IsUpper(r) && unicode.IsLower(runes[i-1]) {
			b.WriteRune(' ')
		}
		if r == '_' {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
