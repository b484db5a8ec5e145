package ingest

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fundroom/crm-api/internal/model"
	"github.com/fundroom/crm-api/internal/store"
)

// fakeLeadStore implements the lead insertion slice of store.Store with an
// in-memory duplicate check keyed the same way as the real unique indexes.
type fakeLeadStore struct {
	store.Store

	mu      sync.Mutex
	nextID  int64
	mobiles map[string]bool
	emails  map[string]bool
	byOwner map[string]bool
	failOn  func(in model.LeadInput) error
	inserts []model.LeadInput
}

func newFakeLeadStore() *fakeLeadStore {
	return &fakeLeadStore{
		mobiles: make(map[string]bool),
		emails:  make(map[string]bool),
		byOwner: make(map[string]bool),
	}
}

func (f *fakeLeadStore) InsertLead(ctx context.Context, in model.LeadInput) (*model.Lead, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failOn != nil {
		if err := f.failOn(in); err != nil {
			return nil, false, err
		}
	}

	if in.MobileNumber != nil && f.mobiles[*in.MobileNumber] {
		return nil, false, nil
	}
	if in.Email != nil && f.emails[*in.Email] {
		return nil, false, nil
	}
	if in.UserID != nil && in.BusinessName != nil {
		key := string(rune(*in.UserID)) + "|" + *in.BusinessName
		if f.byOwner[key] {
			return nil, false, nil
		}
		f.byOwner[key] = true
	}
	if in.MobileNumber != nil {
		f.mobiles[*in.MobileNumber] = true
	}
	if in.Email != nil {
		f.emails[*in.Email] = true
	}

	f.nextID++
	f.inserts = append(f.inserts, in)
	return &model.Lead{
		ID:           f.nextID,
		BusinessName: in.BusinessName,
		MobileNumber: in.MobileNumber,
		Email:        in.Email,
		UserID:       in.UserID,
		IsActive:     true,
	}, true, nil
}

func TestIngest_EmptyBatch(t *testing.T) {
	p := New(newFakeLeadStore(), 4)

	_, err := p.Ingest(context.Background(), nil, nil)
	assert.ErrorIs(t, err, ErrNoData)

	_, err = p.Ingest(context.Background(), []RawLead{}, nil)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestIngest_AcmeDuplicatePair(t *testing.T) {
	// Two rows sharing a mobile number: first creates, second duplicates,
	// and the second's missing email lands in the null-field report.
	p := New(newFakeLeadStore(), 1)

	rows := []RawLead{
		{"businessName": "Acme Corp", "mobileNumber": "9876543210", "email": "a@acme.test"},
		{"businessName": "Acme Corp", "mobileNumber": "9876543210"},
	}

	report, err := p.Ingest(context.Background(), rows, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Summary.Total)
	assert.Equal(t, 1, report.Summary.Created)
	assert.Equal(t, 1, report.Summary.Duplicates)
	assert.Equal(t, 0, report.Summary.Invalid)

	require.Len(t, report.Data.Valid, 1)
	assert.Equal(t, 1, report.Data.Valid[0].Row)

	require.Len(t, report.Data.Duplicates, 1)
	assert.Equal(t, 2, report.Data.Duplicates[0].Row)
	assert.Equal(t, "Duplicate record", report.Data.Duplicates[0].Reason)
	assert.Equal(t, "Acme Corp", *report.Data.Duplicates[0].RowData.BusinessName)
}

func TestIngest_NullBusinessNameStillCreated(t *testing.T) {
	p := New(newFakeLeadStore(), 1)

	rows := []RawLead{
		{"mobileNumber": "9876543210", "contactPersonName": "Ravi"},
	}

	report, err := p.Ingest(context.Background(), rows, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Summary.Created)
	require.Len(t, report.Data.NullFields, 1)
	assert.Equal(t, 1, report.Data.NullFields[0].Row)
	assert.Contains(t, report.Data.NullFields[0].NullFields, "businessName")
	assert.NotContains(t, report.Data.NullFields[0].NullFields, "mobileNumber")
}

func TestIngest_CountIdentity(t *testing.T) {
	fs := newFakeLeadStore()
	fs.failOn = func(in model.LeadInput) error {
		if in.Zone != nil && *in.Zone == "boom" {
			return errors.New("insert exploded")
		}
		return nil
	}
	p := New(fs, 4)

	rows := []RawLead{
		{"mobileNumber": "111"},
		{"mobileNumber": "111"}, // duplicate of row 1
		{"zone": "boom", "mobileNumber": "222"},
		{"email": "x@y.test"},
		{},
	}

	report, err := p.Ingest(context.Background(), rows, nil)
	require.NoError(t, err)

	sum := report.Summary
	assert.Equal(t, 5, sum.Total)
	assert.Equal(t, sum.Total, sum.Created+sum.Duplicates+sum.Invalid)
	assert.Equal(t, 1, sum.Invalid)
}

func TestIngest_FailureIsolatedToItsRow(t *testing.T) {
	fs := newFakeLeadStore()
	fs.failOn = func(in model.LeadInput) error {
		if in.BusinessName != nil && *in.BusinessName == "Bad Row" {
			return errors.New("constraint timeout")
		}
		return nil
	}
	p := New(fs, 1)

	rows := []RawLead{
		{"businessName": "Good Row", "mobileNumber": "111"},
		{"businessName": "Bad Row", "mobileNumber": "222"},
		{"businessName": "Also Good", "mobileNumber": "333"},
	}

	report, err := p.Ingest(context.Background(), rows, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Summary.Created)
	assert.Equal(t, 1, report.Summary.Invalid)
	require.Len(t, report.Data.Invalid, 1)
	assert.Equal(t, 2, report.Data.Invalid[0].Row)
	assert.Contains(t, report.Data.Invalid[0].Error, "constraint timeout")
}

func TestNormalize_MobileNumberCoercedToString(t *testing.T) {
	// JSON numbers decode as float64; the mobile must come out a string.
	in := Normalize(RawLead{"mobileNumber": float64(9876543210)}, nil)
	require.NotNil(t, in.MobileNumber)
	assert.Equal(t, "9876543210", *in.MobileNumber)
}

func TestNormalize_OwnerResolution(t *testing.T) {
	caller := int64(42)

	in := Normalize(RawLead{"userId": float64(7)}, &caller)
	require.NotNil(t, in.UserID)
	assert.Equal(t, int64(7), *in.UserID)

	in = Normalize(RawLead{}, &caller)
	require.NotNil(t, in.UserID)
	assert.Equal(t, int64(42), *in.UserID)

	in = Normalize(RawLead{}, nil)
	assert.Nil(t, in.UserID)
}

func TestNormalize_EmptyStringsBecomeNil(t *testing.T) {
	in := Normalize(RawLead{"businessName": "  ", "zone": ""}, nil)
	assert.Nil(t, in.BusinessName)
	assert.Nil(t, in.Zone)
}

func TestNullFields_ExcludesOwner(t *testing.T) {
	in := Normalize(RawLead{}, nil)
	nulls := in.NullFields()
	assert.Len(t, nulls, 15)
	assert.NotContains(t, nulls, "userId")
}

func TestIngest_ConcurrentRowsAllClassified(t *testing.T) {
	p := New(newFakeLeadStore(), 8)

	rows := make([]RawLead, 40)
	for i := range rows {
		// Every even row repeats the previous mobile, so half duplicate.
		rows[i] = RawLead{"mobileNumber": string(rune('a' + i/2))}
	}

	report, err := p.Ingest(context.Background(), rows, nil)
	require.NoError(t, err)
	assert.Equal(t, 40, report.Summary.Total)
	assert.Equal(t, 20, report.Summary.Created)
	assert.Equal(t, 20, report.Summary.Duplicates)
}
