// Package ingest implements the lead batch processor: it normalizes raw
// rows, audits null fields, inserts non-duplicates and reports a per-row
// outcome. Duplicate detection is delegated to the store's unique indexes,
// so a conflicting insert can never slip through between a check and a
// write.
package ingest

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fundroom/crm-api/internal/db"
	"github.com/fundroom/crm-api/internal/model"
	"github.com/fundroom/crm-api/internal/store"
)

// ErrNoData is returned when the batch is empty or absent.
var ErrNoData = eris.New("ingest: no data provided")

// RawLead is one semi-structured input row. Values arrive from JSON bodies
// or spreadsheet cells, so types are mixed; unrecognized keys are ignored.
type RawLead map[string]any

// Kind classifies a single row's outcome. Every row gets exactly one.
type Kind string

const (
	KindCreated   Kind = "created"
	KindDuplicate Kind = "duplicate"
	KindFailed    Kind = "failed"
)

// Outcome is the result of one row's ingestion attempt. NullFields is an
// audit, not a classification: it can accompany any Kind.
type Outcome struct {
	Row        int
	Kind       Kind
	Record     *model.Lead      // set when Kind == KindCreated
	Payload    *model.LeadInput // normalized row, set unless normalization itself failed
	Err        string           // set when Kind == KindFailed
	Raw        RawLead          // original input, kept for failure reporting
	NullFields []string
}

// Processor runs lead batches against a store.
type Processor struct {
	store store.Store
	limit int
}

// New creates a Processor. limit bounds row-level concurrency; values
// below 1 mean sequential processing.
func New(s store.Store, limit int) *Processor {
	if limit < 1 {
		limit = 1
	}
	return &Processor{store: s, limit: limit}
}

// Ingest processes all rows and assembles the report. Row failures are
// folded into the report; the only call-level error is an empty batch.
// Rows run concurrently up to the configured limit; classification stays
// correct under concurrency because the duplicate keys are unique indexes.
func (p *Processor) Ingest(ctx context.Context, rows []RawLead, callerUserID *int64) (*Report, error) {
	if len(rows) == 0 {
		return nil, ErrNoData
	}

	outcomes := make([]Outcome, len(rows))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.limit)
	for i, raw := range rows {
		g.Go(func() error {
			outcomes[i] = p.processRow(gctx, i+1, raw, callerUserID)
			return nil
		})
	}
	// Row workers never return errors; Wait only orders the writes above.
	_ = g.Wait()

	return buildReport(outcomes), nil
}

func (p *Processor) processRow(ctx context.Context, row int, raw RawLead, callerUserID *int64) Outcome {
	in := Normalize(raw, callerUserID)
	out := Outcome{
		Row:        row,
		Payload:    in,
		Raw:        raw,
		NullFields: in.NullFields(),
	}

	lead, inserted, err := p.store.InsertLead(ctx, *in)
	switch {
	case err != nil && db.IsUniqueViolation(err):
		out.Kind = KindDuplicate
	case err != nil:
		zap.L().Error("lead row insert failed",
			zap.Int("row", row),
			zap.Error(err),
		)
		out.Kind = KindFailed
		out.Err = err.Error()
	case !inserted:
		out.Kind = KindDuplicate
	default:
		out.Kind = KindCreated
		out.Record = lead
	}
	return out
}

// Normalize builds the canonical payload: every recognized field is
// present, missing input maps to explicit nil, mobile numbers become
// strings, and the owning user falls back to the authenticated caller.
func Normalize(raw RawLead, callerUserID *int64) *model.LeadInput {
	in := &model.LeadInput{
		SR:                model.Int64Value(raw["sr"]),
		SourcedFrom:       model.StringValue(raw["sourcedFrom"]),
		SourcedBy:         model.StringValue(raw["sourcedBy"]),
		DateOfConnect:     model.StringValue(raw["dateOfConnect"]),
		BusinessName:      model.StringValue(raw["businessName"]),
		ContactPersonName: model.StringValue(raw["contactPersonName"]),
		MobileNumber:      model.StringValue(raw["mobileNumber"]),
		Address:           model.StringValue(raw["address"]),
		Email:             model.StringValue(raw["email"]),
		BusinessSector:    model.StringValue(raw["businessSector"]),
		Zone:              model.StringValue(raw["zone"]),
		Landmark:          model.StringValue(raw["landmark"]),
		ExistingWebsite:   model.StringValue(raw["existingWebsite"]),
		SMMPresence:       model.StringValue(raw["smmPresence"]),
		MeetingStatus:     model.StringValue(raw["meetingStatus"]),
		UserID:            model.Int64Value(raw["userId"]),
	}
	if in.UserID == nil {
		in.UserID = callerUserID
	}
	return in
}
