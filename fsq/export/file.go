package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/fsq/fsq/fsq/engine"
	qerrors "github.com/fsq/fsq/fsq/errors"
)

// ToFile writes the result set to path in the format selected by its
// extension: .csv, .json, .html, or .xlsx. The target must not exist
// and its parent directory must.
func ToFile(res *engine.Result, path string) error {
	if _, err := os.Stat(path); err == nil {
		return qerrors.Export(fmt.Sprintf("export target %q already exists", path), nil)
	}
	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		return qerrors.Export(fmt.Sprintf("export directory for %q does not exist", path), err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return toCSV(res, path)
	case ".json":
		return toJSON(res, path)
	case ".html":
		return toHTML(res, path)
	case ".xlsx":
		return toXLSX(res, path)
	default:
		return qerrors.Export(fmt.Sprintf("%q is not a supported export format", filepath.Ext(path)), nil)
	}
}

func toCSV(res *engine.Result, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return qerrors.Export("cannot create export file", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(res.Columns); err != nil {
		return qerrors.Export("cannot write export header", err)
	}
	row := make([]string, len(res.Columns))
	for _, vals := range res.Rows {
		for i, v := range vals {
			row[i] = v.Display()
		}
		if err := w.Write(row); err != nil {
			return qerrors.Export("cannot write export row", err)
		}
	}
	w.Flush()
	return w.Error()
}

func toJSON(res *engine.Result, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return qerrors.Export("cannot create export file", err)
	}
	defer f.Close()

	records := make([]map[string]any, 0, len(res.Rows))
	for _, vals := range res.Rows {
		rec := make(map[string]any, len(res.Columns))
		for i, col := range res.Columns {
			rec[col] = vals[i].Native()
		}
		records = append(records, rec)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return qerrors.Export("cannot encode export records", err)
	}
	return nil
}

var htmlTemplate = template.Must(template.New("table").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>fsq export</title></head>
<body>
<table border="1">
<tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr>
{{range .Rows}}<tr>{{range .}}<td>{{.Display}}</td>{{end}}</tr>
{{end}}</table>
</body>
</html>
`))

func toHTML(res *engine.Result, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return qerrors.Export("cannot create export file", err)
	}
	defer f.Close()

	if err := htmlTemplate.Execute(f, res); err != nil {
		return qerrors.Export("cannot render export table", err)
	}
	return nil
}

func toXLSX(res *engine.Result, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	for ci, col := range res.Columns {
		cell, err := excelize.CoordinatesToCellName(ci+1, 1)
		if err != nil {
			return qerrors.Export("cannot address spreadsheet cell", err)
		}
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return qerrors.Export("cannot write spreadsheet header", err)
		}
	}
	for ri, vals := range res.Rows {
		for ci, v := range vals {
			cell, err := excelize.CoordinatesToCellName(ci+1, ri+2)
			if err != nil {
				return qerrors.Export("cannot address spreadsheet cell", err)
			}
			if err := f.SetCellValue(sheet, cell, v.Native()); err != nil {
				return qerrors.Export("cannot write spreadsheet cell", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return qerrors.Export("cannot save spreadsheet", err)
	}
	return nil
}
