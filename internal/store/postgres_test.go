package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fundroom/crm-api/internal/model"
)

// newMockPostgresStore creates a PostgresStore backed by pgxmock for unit testing.
func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	s := &PostgresStore{pool: mock}
	return s, mock
}

func strp(s string) *string { return &s }

// anyArgs builds n positional placeholders for statements whose bind values
// are not the subject of the test.
func anyArgs(n int) []any {
	args := make([]any, n)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

func TestPostgresStore_InsertLead_Created(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	now := time.Now().UTC()

	args := anyArgs(18)
	args[4] = strp("Acme Corp")
	args[6] = strp("9876543210")
	mock.ExpectQuery(`INSERT INTO leads`).
		WithArgs(args...).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(int64(7), now, now))

	lead, inserted, err := s.InsertLead(context.Background(), model.LeadInput{
		BusinessName: strp("Acme Corp"),
		MobileNumber: strp("9876543210"),
	})
	require.NoError(t, err)
	assert.True(t, inserted)
	assert.Equal(t, int64(7), lead.ID)
	assert.Equal(t, "Acme Corp", *lead.BusinessName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_InsertLead_DuplicateReturnsNoRow(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	args := anyArgs(18)
	args[6] = strp("9876543210")
	mock.ExpectQuery(`INSERT INTO leads`).
		WithArgs(args...).
		WillReturnError(pgx.ErrNoRows)

	lead, inserted, err := s.InsertLead(context.Background(), model.LeadInput{
		MobileNumber: strp("9876543210"),
	})
	require.NoError(t, err)
	assert.False(t, inserted)
	assert.Nil(t, lead)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetLead_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT .+ FROM leads WHERE id = \$1`).
		WithArgs(int64(99)).
		WillReturnError(pgx.ErrNoRows)

	_, err := s.GetLead(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_UpdateLead_SetClauseFollowsPatch(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	now := time.Now().UTC()

	rows := pgxmock.NewRows([]string{
		"id", "sr", "sourced_from", "sourced_by", "date_of_connect", "business_name",
		"contact_person_name", "mobile_number", "address", "email", "business_sector", "zone",
		"landmark", "existing_website", "smm_presence", "meeting_status",
		"date_of_c1_connect", "c1_status", "c1_comment",
		"date_of_c2_clarity", "c2_status", "c2_comment",
		"date_of_c3_clarity", "c3_status", "c3_comment",
		"date_of_c4_customer", "c4_status", "c4_comment",
		"user_id", "is_active", "created_at", "updated_at",
	}).AddRow(
		int64(5), nil, nil, nil, nil, strp("Acme Corp"),
		nil, nil, nil, nil, nil, nil,
		nil, nil, nil, strp("C1 Scheduled"),
		nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil,
		nil, true, now, now,
	)

	mock.ExpectQuery(`UPDATE leads SET meeting_status = \$1, updated_at = \$2 WHERE id = \$3 RETURNING`).
		WithArgs("C1 Scheduled", pgxmock.AnyArg(), int64(5)).
		WillReturnRows(rows)

	patch := model.NewLeadPatch(map[string]any{"meetingStatus": "C1 Scheduled"})
	lead, err := s.UpdateLead(context.Background(), 5, patch)
	require.NoError(t, err)
	assert.Equal(t, "C1 Scheduled", *lead.MeetingStatus)
	assert.Nil(t, lead.C1Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_UpdateLead_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`UPDATE leads SET`).
		WithArgs("North", pgxmock.AnyArg(), int64(404)).
		WillReturnError(pgx.ErrNoRows)

	patch := model.NewLeadPatch(map[string]any{"zone": "North"})
	_, err := s.UpdateLead(context.Background(), 404, patch)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_UpdateLead_UniqueConflict(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`UPDATE leads SET`).
		WithArgs("9876543210", pgxmock.AnyArg(), int64(5)).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	patch := model.NewLeadPatch(map[string]any{"mobileNumber": "9876543210"})
	_, err := s.UpdateLead(context.Background(), 5, patch)
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_DeleteLead_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`DELETE FROM leads WHERE id = \$1`).
		WithArgs(int64(12)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := s.DeleteLead(context.Background(), 12)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_CountLeadsByStatus(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM leads`).
		WithArgs(int64(3), "%C1 Scheduled%", "2026-08-01", "2026-08-31").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(4))

	n, err := s.CountLeadsByStatus(context.Background(), 3, "C1 Scheduled", "2026-08-01", "2026-08-31")
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_UpsertMilestone_CreatedWhenTimestampsEqual(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	now := time.Now().UTC()

	args := anyArgs(13)
	args[0] = int64(10)
	mock.ExpectQuery(`INSERT INTO milestones .+ ON CONFLICT \(lead_id\) DO UPDATE`).
		WithArgs(args...).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(int64(1), now, now))

	m, created, err := s.UpsertMilestone(context.Background(), model.MilestoneInput{LeadID: 10})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, int64(1), m.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_UpsertMilestone_UpdatedWhenTimestampsDiffer(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	created := time.Now().UTC().Add(-time.Hour)

	args := anyArgs(13)
	args[0] = int64(10)
	mock.ExpectQuery(`INSERT INTO milestones .+ ON CONFLICT \(lead_id\) DO UPDATE`).
		WithArgs(args...).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(int64(1), created, time.Now().UTC()))

	_, wasCreated, err := s.UpsertMilestone(context.Background(), model.MilestoneInput{LeadID: 10})
	require.NoError(t, err)
	assert.False(t, wasCreated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_UpsertTarget(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	c1 := 5
	args := anyArgs(9)
	args[0] = int64(3)
	args[1] = "2026-08-15"
	args[2] = &c1
	mock.ExpectExec(`INSERT INTO daily_targets .+ ON CONFLICT \(user_id, target_date\) DO UPDATE`).
		WithArgs(args...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := s.UpsertTarget(context.Background(), model.TargetUpsert{
		UserID:     3,
		TargetDate: "2026-08-15",
		C1Target:   &c1,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_CreateUser_DuplicateEmail(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("Asha", "Rao", pgxmock.AnyArg(), strp("asha@example.com"), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	_, err := s.CreateUser(context.Background(), model.User{
		FirstName: "Asha",
		LastName:  "Rao",
		Email:     strp("asha@example.com"),
	})
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SoftDeleteUser_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`UPDATE users SET is_deleted = TRUE`).
		WithArgs(pgxmock.AnyArg(), int64(42)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := s.SoftDeleteUser(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Migrate(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS genders`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, s.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_QueryError_Wrapped(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	boom := errors.New("connection reset")
	mock.ExpectQuery(`SELECT .+ FROM leads ORDER BY id`).
		WillReturnError(boom)

	_, err := s.ListLeads(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query leads")
	assert.NoError(t, mock.ExpectationsWereMet())
}
