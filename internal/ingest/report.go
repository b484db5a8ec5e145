package ingest

import "github.com/fundroom/crm-api/internal/model"

// Summary holds the batch-level counts. Each row lands in exactly one of
// created/duplicates/invalid, so those three always sum to total.
type Summary struct {
	Total      int `json:"total"`
	Created    int `json:"created"`
	Duplicates int `json:"duplicates"`
	Invalid    int `json:"invalid"`
	NullFields int `json:"nullFields"`
}

// DuplicateDetail reports one rejected duplicate row.
type DuplicateDetail struct {
	Row     int              `json:"row"`
	Reason  string           `json:"reason"`
	RowData *model.LeadInput `json:"rowData"`
}

// FailureDetail reports one row whose insert raised an unexpected error.
type FailureDetail struct {
	Row     int     `json:"row"`
	Error   string  `json:"error"`
	RowData RawLead `json:"rowData"`
}

// NullFieldDetail reports the null recognized fields of one row. Purely
// informational: the row may still have been created.
type NullFieldDetail struct {
	Row        int              `json:"row"`
	NullFields []string         `json:"nullFields"`
	RowData    *model.LeadInput `json:"rowData"`
}

// CreatedDetail reports one persisted row.
type CreatedDetail struct {
	Row     int         `json:"row"`
	RowData *model.Lead `json:"rowData"`
}

// ReportData carries the per-category detail lists.
type ReportData struct {
	Duplicates []DuplicateDetail `json:"duplicates"`
	Invalid    []FailureDetail   `json:"invalid"`
	NullFields []NullFieldDetail `json:"nullFields"`
	Valid      []CreatedDetail   `json:"valid"`
}

// Report is the full result of one ingestion call.
type Report struct {
	Summary Summary    `json:"summary"`
	Data    ReportData `json:"data"`
}

// buildReport aggregates outcomes in submission order.
func buildReport(outcomes []Outcome) *Report {
	r := &Report{
		Data: ReportData{
			Duplicates: []DuplicateDetail{},
			Invalid:    []FailureDetail{},
			NullFields: []NullFieldDetail{},
			Valid:      []CreatedDetail{},
		},
	}
	r.Summary.Total = len(outcomes)

	for _, out := range outcomes {
		if len(out.NullFields) > 0 {
			r.Summary.NullFields++
			r.Data.NullFields = append(r.Data.NullFields, NullFieldDetail{
				Row:        out.Row,
				NullFields: out.NullFields,
				RowData:    out.Payload,
			})
		}

		switch out.Kind {
		case KindCreated:
			r.Summary.Created++
			r.Data.Valid = append(r.Data.Valid, CreatedDetail{Row: out.Row, RowData: out.Record})
		case KindDuplicate:
			r.Summary.Duplicates++
			r.Data.Duplicates = append(r.Data.Duplicates, DuplicateDetail{
				Row:     out.Row,
				Reason:  "Duplicate record",
				RowData: out.Payload,
			})
		case KindFailed:
			r.Summary.Invalid++
			r.Data.Invalid = append(r.Data.Invalid, FailureDetail{
				Row:     out.Row,
				Error:   out.Err,
				RowData: out.Raw,
			})
		}
	}
	return r
}
