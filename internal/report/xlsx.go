package report

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/terracanopy/connectivity-cli/internal/connectivity"
)

// WriteXLSX writes the area statistics as a one-sheet workbook.
func WriteXLSX(stats connectivity.Stats, path string) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Statistics")
	if err != nil {
		return eris.Wrap(err, "report: add sheet")
	}

	header := sheet.AddRow()
	header.AddCell().SetString("Metric")
	header.AddCell().SetString("Value")

	rows := []struct {
		name  string
		value float64
	}{
		{"Core area (ha)", stats.CoreAreaHa},
		{"Edge area (ha)", stats.EdgeAreaHa},
		{"Fragmented area (ha)", stats.FragmentedAreaHa},
		{"Total forest area (ha)", stats.TotalForestHa},
		{"Fragmentation index", stats.FragmentationIndex},
	}
	for _, r := range rows {
		row := sheet.AddRow()
		row.AddCell().SetString(r.name)
		row.AddCell().SetFloat(r.value)
	}

	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "report: save %s", path)
	}
	return nil
}
