package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fundroom/crm-api/internal/model"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func intp(n int) *int       { return &n }
func int64p(n int64) *int64 { return &n }

func TestSQLiteStore_InsertLead_RoundTrip(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	lead, inserted, err := s.InsertLead(ctx, model.LeadInput{
		BusinessName:  strp("Acme Corp"),
		MobileNumber:  strp("9876543210"),
		MeetingStatus: strp("C1 Scheduled"),
		DateOfConnect: strp("2026-08-10"),
	})
	require.NoError(t, err)
	assert.True(t, inserted)
	require.NotNil(t, lead)
	assert.NotZero(t, lead.ID)
	assert.True(t, lead.IsActive)

	got, err := s.GetLead(ctx, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", *got.BusinessName)
	assert.Equal(t, "9876543210", *got.MobileNumber)
	assert.Nil(t, got.Email)
}

func TestSQLiteStore_InsertLead_DuplicateMobile(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	_, inserted, err := s.InsertLead(ctx, model.LeadInput{
		BusinessName: strp("Acme Corp"),
		MobileNumber: strp("9876543210"),
	})
	require.NoError(t, err)
	require.True(t, inserted)

	// Same mobile, different business: still a duplicate.
	lead, inserted, err := s.InsertLead(ctx, model.LeadInput{
		BusinessName: strp("Other Traders"),
		MobileNumber: strp("9876543210"),
	})
	require.NoError(t, err)
	assert.False(t, inserted)
	assert.Nil(t, lead)
}

func TestSQLiteStore_InsertLead_NullKeysNeverConflict(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, inserted, err := s.InsertLead(ctx, model.LeadInput{
			ContactPersonName: strp("Walk-in"),
		})
		require.NoError(t, err)
		assert.True(t, inserted)
	}

	leads, err := s.ListLeads(ctx)
	require.NoError(t, err)
	assert.Len(t, leads, 3)
}

func TestSQLiteStore_UpdateLead_PartialLeavesOtherFields(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	lead, _, err := s.InsertLead(ctx, model.LeadInput{
		BusinessName: strp("Acme Corp"),
		Zone:         strp("North"),
	})
	require.NoError(t, err)

	patch := model.NewLeadPatch(map[string]any{"meetingStatus": "C1 Scheduled"})
	updated, err := s.UpdateLead(ctx, lead.ID, patch)
	require.NoError(t, err)
	assert.Equal(t, "C1 Scheduled", *updated.MeetingStatus)
	assert.Equal(t, "North", *updated.Zone)
	assert.Nil(t, updated.C1Status)
}

func TestSQLiteStore_UpdateLead_NotFound(t *testing.T) {
	s := newTestSQLiteStore(t)

	patch := model.NewLeadPatch(map[string]any{"zone": "South"})
	_, err := s.UpdateLead(context.Background(), 999, patch)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteStore_DeleteLead(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	lead, _, err := s.InsertLead(ctx, model.LeadInput{BusinessName: strp("Acme Corp")})
	require.NoError(t, err)

	require.NoError(t, s.DeleteLead(ctx, lead.ID))
	_, err = s.GetLead(ctx, lead.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.DeleteLead(ctx, lead.ID), ErrNotFound)
}

func TestSQLiteStore_ListLeadsBySourcedBy_CaseInsensitive(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	_, _, err := s.InsertLead(ctx, model.LeadInput{
		BusinessName: strp("Acme Corp"),
		SourcedBy:    strp("Asha Rao"),
	})
	require.NoError(t, err)

	leads, err := s.ListLeadsBySourcedBy(ctx, "asha rao")
	require.NoError(t, err)
	assert.Len(t, leads, 1)
}

func TestSQLiteStore_CountLeadsByStatus(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	u, err := s.CreateUser(ctx, model.User{FirstName: "Asha", LastName: "Rao"})
	require.NoError(t, err)

	for i, mobile := range []string{"111", "222", "333"} {
		status := "C1 Scheduled"
		if i == 2 {
			status = "Not Interested"
		}
		_, _, err := s.InsertLead(ctx, model.LeadInput{
			MobileNumber:  strp(mobile),
			MeetingStatus: &status,
			DateOfConnect: strp("2026-08-10"),
			UserID:        int64p(u.ID),
		})
		require.NoError(t, err)
	}

	n, err := s.CountLeadsByStatus(ctx, u.ID, "C1 Scheduled", "2026-08-01", "2026-08-31")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = s.CountLeadsByStatus(ctx, u.ID, "C1 Scheduled", "2026-09-01", "2026-09-30")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestSQLiteStore_UpsertMilestone_CreateThenUpdate(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	lead, _, err := s.InsertLead(ctx, model.LeadInput{BusinessName: strp("Acme Corp")})
	require.NoError(t, err)

	m, created, err := s.UpsertMilestone(ctx, model.MilestoneInput{
		LeadID:         lead.ID,
		RMAssignedName: strp("Vikram"),
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "Vikram", *m.RMAssignedName)

	m2, created, err := s.UpsertMilestone(ctx, model.MilestoneInput{
		LeadID:     lead.ID,
		DomainName: strp("acme.example"),
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, m.ID, m2.ID)

	got, err := s.GetMilestoneByLead(ctx, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, "acme.example", *got.DomainName)
	// Upsert is a full overwrite, not a merge.
	assert.Nil(t, got.RMAssignedName)
}

func TestSQLiteStore_UpdateMilestone_Partial(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	lead, _, err := s.InsertLead(ctx, model.LeadInput{BusinessName: strp("Acme Corp")})
	require.NoError(t, err)
	m, _, err := s.UpsertMilestone(ctx, model.MilestoneInput{
		LeadID:         lead.ID,
		RMAssignedName: strp("Vikram"),
	})
	require.NoError(t, err)

	patch := model.NewMilestonePatch(map[string]any{"renewalStatus": "Due"})
	updated, err := s.UpdateMilestone(ctx, m.ID, patch)
	require.NoError(t, err)
	assert.Equal(t, "Due", *updated.RenewalStatus)
	assert.Equal(t, "Vikram", *updated.RMAssignedName)
}

func TestSQLiteStore_UpsertTarget_MergesFields(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	u, err := s.CreateUser(ctx, model.User{FirstName: "Asha", LastName: "Rao"})
	require.NoError(t, err)

	require.NoError(t, s.UpsertTarget(ctx, model.TargetUpsert{
		UserID:     u.ID,
		TargetDate: "2026-08-15",
		C1Target:   intp(5),
	}))
	// Second upsert touches only c2; c1 must survive.
	require.NoError(t, s.UpsertTarget(ctx, model.TargetUpsert{
		UserID:     u.ID,
		TargetDate: "2026-08-15",
		C2Target:   intp(3),
	}))

	targets, err := s.ListTargets(ctx, u.ID, "2026-08-01", "2026-08-31")
	require.NoError(t, err)
	require.Len(t, targets, 1)
	assert.Equal(t, 5, targets[0].C1Target)
	assert.Equal(t, 3, targets[0].C2Target)
}

func TestSQLiteStore_UserLifecycle(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	g, err := s.CreateGender(ctx, "Female")
	require.NoError(t, err)

	u, err := s.CreateUser(ctx, model.User{
		FirstName: "Asha",
		LastName:  "Rao",
		GenderID:  &g.ID,
		Email:     strp("asha@example.com"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", u.FullName())

	_, err = s.CreateUser(ctx, model.User{
		FirstName: "Other",
		LastName:  "Person",
		Email:     strp("asha@example.com"),
	})
	assert.ErrorIs(t, err, ErrDuplicate)

	u.LastName = "Iyer"
	updated, err := s.UpdateUser(ctx, *u)
	require.NoError(t, err)
	assert.Equal(t, "Iyer", updated.LastName)

	refs, err := s.ListActiveUserRefs(ctx)
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, "Asha Iyer", refs[0].Name)

	require.NoError(t, s.SoftDeleteUser(ctx, u.ID))
	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestSQLiteStore_GenderLifecycle(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	g, err := s.CreateGender(ctx, "Male")
	require.NoError(t, err)

	updated, err := s.UpdateGender(ctx, g.ID, "Other")
	require.NoError(t, err)
	assert.Equal(t, "Other", updated.Name)

	require.NoError(t, s.SoftDeleteGender(ctx, g.ID))
	gs, err := s.ListGenders(ctx)
	require.NoError(t, err)
	assert.Empty(t, gs)

	// Soft-deleted genders stay resolvable by id for historical users.
	_, err = s.GetGender(ctx, g.ID)
	assert.NoError(t, err)
}
