package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportToExcelVideProduitUnClasseurAvecEnTete(t *testing.T) {
	buf, err := ExportToExcel("Fiches", []string{"Titre", "Statut"}, nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Fiches"}, f.GetSheetList())
	rows, err := f.GetRows("Fiches")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"Titre", "Statut"}, rows[0])
}

func TestBuildWorkbookPlusieursFeuilles(t *testing.T) {
	buf, err := BuildWorkbook(
		Sheet{Name: "Statistiques Générales", Headers: []string{"Indicateur", "Valeur"}, Rows: [][]interface{}{{"Total", 12}}},
		Sheet{Name: "Métriques Performance", Headers: []string{"Métrique", "Valeur"}},
	)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Statistiques Générales", "Métriques Performance"}, f.GetSheetList())
	v, err := f.GetCellValue("Statistiques Générales", "B2")
	require.NoError(t, err)
	assert.Equal(t, "12", v)
}

func TestBuildWorkbookSansFeuille(t *testing.T) {
	_, err := BuildWorkbook()
	assert.ErrorIs(t, err, ErrGenerateFail)
}

func TestFormatKey(t *testing.T) {
	assert.Equal(t, "Total Fiches Qualite", FormatKey("totalFichesQualite"))
	assert.Equal(t, "Taux Retard", FormatKey("tauxRetard"))
	assert.Equal(t, "EN COURS", FormatKey("EN_COURS"))
	assert.Equal(t, "", FormatKey(""))
}
