// Package sheet decodes uploaded XLSX workbooks into raw lead rows. Only
// the first sheet is read; the header row names the fields and empty cells
// map to nulls, matching the JSON ingestion path.
package sheet

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/fundroom/crm-api/internal/ingest"
)

// recognizedFields maps lowercased header names to canonical field names,
// so sheets with arbitrary header casing still bind correctly.
var recognizedFields = map[string]string{
	"sr":                "sr",
	"sourcedfrom":       "sourcedFrom",
	"sourcedby":         "sourcedBy",
	"dateofconnect":     "dateOfConnect",
	"businessname":      "businessName",
	"contactpersonname": "contactPersonName",
	"mobilenumber":      "mobileNumber",
	"address":           "address",
	"email":             "email",
	"businesssector":    "businessSector",
	"zone":              "zone",
	"landmark":          "landmark",
	"existingwebsite":   "existingWebsite",
	"smmpresence":       "smmPresence",
	"meetingstatus":     "meetingStatus",
	"userid":            "userId",
}

// ReadLeads decodes an XLSX buffer into raw lead rows. The first row is
// the header; recognized columns bind to lead fields, the rest are
// dropped. Fully empty rows are skipped.
func ReadLeads(data []byte) ([]ingest.RawLead, error) {
	f, err := xlsx.OpenBinary(data)
	if err != nil {
		return nil, eris.Wrap(err, "sheet: open workbook")
	}
	if len(f.Sheets) == 0 {
		return nil, eris.New("sheet: workbook has no sheets")
	}

	sheet := f.Sheets[0]
	if len(sheet.Rows) == 0 {
		return nil, eris.New("sheet: first sheet is empty")
	}

	header := headerFields(sheet.Rows[0])

	var rows []ingest.RawLead
	for _, row := range sheet.Rows[1:] {
		raw := make(ingest.RawLead, len(header))
		empty := true
		for j, field := range header {
			if field == "" {
				continue
			}
			var value string
			if j < len(row.Cells) {
				value = strings.TrimSpace(row.Cells[j].String())
			}
			if value == "" {
				raw[field] = nil
				continue
			}
			raw[field] = value
			empty = false
		}
		if !empty {
			rows = append(rows, raw)
		}
	}
	return rows, nil
}

// headerFields resolves each header cell to a canonical field name, or ""
// for unrecognized columns.
func headerFields(row *xlsx.Row) []string {
	fields := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(cell.String()), " ", ""))
		fields[j] = recognizedFields[key]
	}
	return fields
}
