package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/fundroom/crm-api/internal/db"
	"github.com/fundroom/crm-api/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite. It backs local
// development and the import command; production runs on Postgres.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	sdb, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := sdb.Exec(pragma); err != nil {
			sdb.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: sdb}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS genders (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	name       TEXT NOT NULL,
	is_deleted INTEGER NOT NULL DEFAULT 0,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS users (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	first_name     TEXT NOT NULL,
	last_name      TEXT NOT NULL,
	gender_id      INTEGER REFERENCES genders(id),
	email          TEXT UNIQUE,
	phone_number   TEXT UNIQUE,
	last_login_at  TIMESTAMP,
	last_logout_at TIMESTAMP,
	is_deleted     INTEGER NOT NULL DEFAULT 0,
	created_at     TIMESTAMP NOT NULL,
	updated_at     TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS leads (
	id                  INTEGER PRIMARY KEY AUTOINCREMENT,
	sr                  INTEGER,
	sourced_from        TEXT,
	sourced_by          TEXT,
	date_of_connect     TEXT,
	business_name       TEXT,
	contact_person_name TEXT,
	mobile_number       TEXT,
	address             TEXT,
	email               TEXT,
	business_sector     TEXT,
	zone                TEXT,
	landmark            TEXT,
	existing_website    TEXT,
	smm_presence        TEXT,
	meeting_status      TEXT,
	date_of_c1_connect  TEXT,
	c1_status           TEXT,
	c1_comment          TEXT,
	date_of_c2_clarity  TEXT,
	c2_status           TEXT,
	c2_comment          TEXT,
	date_of_c3_clarity  TEXT,
	c3_status           TEXT,
	c3_comment          TEXT,
	date_of_c4_customer TEXT,
	c4_status           TEXT,
	c4_comment          TEXT,
	user_id             INTEGER REFERENCES users(id) ON DELETE SET NULL,
	is_active           INTEGER NOT NULL DEFAULT 1,
	created_at          TIMESTAMP NOT NULL,
	updated_at          TIMESTAMP NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS uq_leads_owner_business
	ON leads(user_id, business_name)
	WHERE user_id IS NOT NULL AND business_name IS NOT NULL;
CREATE UNIQUE INDEX IF NOT EXISTS uq_leads_mobile
	ON leads(mobile_number) WHERE mobile_number IS NOT NULL;
CREATE UNIQUE INDEX IF NOT EXISTS uq_leads_email
	ON leads(email) WHERE email IS NOT NULL;

CREATE INDEX IF NOT EXISTS idx_leads_user_id ON leads(user_id);
CREATE INDEX IF NOT EXISTS idx_leads_meeting_status ON leads(meeting_status);
CREATE INDEX IF NOT EXISTS idx_leads_sourced_by ON leads(sourced_by);

CREATE TABLE IF NOT EXISTS milestones (
	id                           INTEGER PRIMARY KEY AUTOINCREMENT,
	lead_id                      INTEGER UNIQUE REFERENCES leads(id) ON DELETE SET NULL,
	rm_assigned_name             TEXT,
	rm_assigned_contact          TEXT,
	domain_name                  TEXT,
	website_start_date           TEXT,
	website_completion_date      TEXT,
	training_and_handover_status TEXT,
	services_opted               TEXT,
	client_feedback              TEXT,
	renewal_date                 TEXT,
	renewal_status               TEXT,
	is_active                    INTEGER NOT NULL DEFAULT 1,
	created_at                   TIMESTAMP NOT NULL,
	updated_at                   TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS daily_targets (
	id                  INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id             INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	target_date         TEXT NOT NULL,
	c1_target           INTEGER NOT NULL DEFAULT 0,
	c2_target           INTEGER NOT NULL DEFAULT 0,
	c3_target           INTEGER NOT NULL DEFAULT 0,
	c4_target           INTEGER NOT NULL DEFAULT 0,
	subscription_target INTEGER NOT NULL DEFAULT 0,
	token               TEXT,
	created_at          TIMESTAMP NOT NULL,
	updated_at          TIMESTAMP NOT NULL,
	UNIQUE (user_id, target_date)
);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Leads

func (s *SQLiteStore) InsertLead(ctx context.Context, in model.LeadInput) (*model.Lead, bool, error) {
	lead := leadFromInput(in)
	now := time.Now().UTC()

	args := append(leadInsertValues(in), now, now)
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO leads
		 (sr, sourced_from, sourced_by, date_of_connect, business_name,
		  contact_person_name, mobile_number, address, email, business_sector,
		  zone, landmark, existing_website, smm_presence, meeting_status, user_id,
		  created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT DO NOTHING
		 RETURNING id, created_at, updated_at`,
		args...,
	).Scan(&lead.ID, &lead.CreatedAt, &lead.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, eris.Wrap(err, "sqlite: insert lead")
	}
	return lead, true, nil
}

func (s *SQLiteStore) GetLead(ctx context.Context, id int64) (*model.Lead, error) {
	lead, err := scanLead(s.db.QueryRowContext(ctx,
		`SELECT `+leadCols+` FROM leads WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, eris.Wrapf(err, "sqlite: get lead %d", id)
	}
	return lead, nil
}

func (s *SQLiteStore) ListLeads(ctx context.Context) ([]model.Lead, error) {
	return s.queryLeads(ctx, `SELECT `+leadCols+` FROM leads ORDER BY id`)
}

func (s *SQLiteStore) ListLeadsBySourcedBy(ctx context.Context, name string) ([]model.Lead, error) {
	return s.queryLeads(ctx,
		`SELECT `+leadCols+` FROM leads WHERE sourced_by LIKE ? ORDER BY date_of_connect ASC`,
		name)
}

func (s *SQLiteStore) ListLeadsByMeetingStatus(ctx context.Context, status string) ([]model.Lead, error) {
	return s.queryLeads(ctx,
		`SELECT `+leadCols+` FROM leads WHERE meeting_status LIKE ? ORDER BY date_of_connect ASC`,
		"%"+status+"%")
}

func (s *SQLiteStore) queryLeads(ctx context.Context, query string, args ...any) ([]model.Lead, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: query leads")
	}
	defer rows.Close()

	var leads []model.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan lead")
		}
		leads = append(leads, *lead)
	}
	return leads, eris.Wrap(rows.Err(), "sqlite: iterate leads")
}

func (s *SQLiteStore) UpdateLead(ctx context.Context, id int64, patch *model.Patch) (*model.Lead, error) {
	if patch.Len() == 0 {
		return nil, eris.New("sqlite: empty lead patch")
	}

	set := make([]string, 0, patch.Len()+1)
	args := make([]any, 0, patch.Len()+2)
	for _, a := range patch.Assignments() {
		col, ok := leadFieldColumns[a.Field]
		if !ok {
			continue
		}
		set = append(set, fmt.Sprintf("%s = ?", col))
		args = append(args, a.Value)
	}
	set = append(set, "updated_at = ?")
	args = append(args, time.Now().UTC(), id)

	query := fmt.Sprintf(`UPDATE leads SET %s WHERE id = ? RETURNING %s`,
		strings.Join(set, ", "), leadCols)

	lead, err := scanLead(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		if db.IsUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, eris.Wrapf(err, "sqlite: update lead %d", id)
	}
	return lead, nil
}

func (s *SQLiteStore) DeleteLead(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM leads WHERE id = ?`, id)
	if err != nil {
		return eris.Wrapf(err, "sqlite: delete lead %d", id)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "sqlite: delete lead rows affected")
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) CountLeadsByStatus(ctx context.Context, userID int64, status, from, to string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM leads
		 WHERE user_id = ? AND meeting_status LIKE ?
		   AND date_of_connect BETWEEN ? AND ?`,
		userID, "%"+status+"%", from, to,
	).Scan(&count)
	return count, eris.Wrap(err, "sqlite: count leads by status")
}

// Milestones

func (s *SQLiteStore) UpsertMilestone(ctx context.Context, in model.MilestoneInput) (*model.Milestone, bool, error) {
	existing, err := s.GetMilestoneByLead(ctx, in.LeadID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, false, err
	}

	m := milestoneFromInput(in)
	now := time.Now().UTC()

	if existing == nil {
		args := append(milestoneValues(in), now, now)
		err := s.db.QueryRowContext(ctx,
			`INSERT INTO milestones
			 (lead_id, rm_assigned_name, rm_assigned_contact, domain_name,
			  website_start_date, website_completion_date, training_and_handover_status,
			  services_opted, client_feedback, renewal_date, renewal_status,
			  created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			 RETURNING id, created_at, updated_at`,
			args...,
		).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
		if err != nil {
			return nil, false, eris.Wrap(err, "sqlite: insert milestone")
		}
		return m, true, nil
	}

	args := append(milestoneValues(in)[1:], now, existing.ID)
	_, err = s.db.ExecContext(ctx,
		`UPDATE milestones SET
		   rm_assigned_name = ?, rm_assigned_contact = ?, domain_name = ?,
		   website_start_date = ?, website_completion_date = ?,
		   training_and_handover_status = ?, services_opted = ?,
		   client_feedback = ?, renewal_date = ?, renewal_status = ?,
		   updated_at = ?
		 WHERE id = ?`,
		args...)
	if err != nil {
		return nil, false, eris.Wrap(err, "sqlite: update milestone")
	}
	m.ID = existing.ID
	m.CreatedAt = existing.CreatedAt
	m.UpdatedAt = now
	return m, false, nil
}

func (s *SQLiteStore) GetMilestone(ctx context.Context, id int64) (*model.Milestone, error) {
	m, err := scanMilestone(s.db.QueryRowContext(ctx,
		`SELECT `+milestoneCols+` FROM milestones WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, eris.Wrapf(err, "sqlite: get milestone %d", id)
	}
	return m, nil
}

func (s *SQLiteStore) GetMilestoneByLead(ctx context.Context, leadID int64) (*model.Milestone, error) {
	m, err := scanMilestone(s.db.QueryRowContext(ctx,
		`SELECT `+milestoneCols+` FROM milestones WHERE lead_id = ?`, leadID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, eris.Wrapf(err, "sqlite: get milestone for lead %d", leadID)
	}
	return m, nil
}

func (s *SQLiteStore) ListMilestones(ctx context.Context) ([]model.Milestone, error) {
	return s.queryMilestones(ctx, `SELECT `+milestoneCols+` FROM milestones ORDER BY id`)
}

func (s *SQLiteStore) ListMilestonesByUser(ctx context.Context, userID int64) ([]model.Milestone, error) {
	return s.queryMilestones(ctx,
		`SELECT m.id, m.lead_id, m.rm_assigned_name, m.rm_assigned_contact, m.domain_name,
		   m.website_start_date, m.website_completion_date, m.training_and_handover_status,
		   m.services_opted, m.client_feedback, m.renewal_date, m.renewal_status,
		   m.is_active, m.created_at, m.updated_at
		 FROM milestones m JOIN leads l ON l.id = m.lead_id
		 WHERE l.user_id = ? ORDER BY m.id`,
		userID)
}

func (s *SQLiteStore) queryMilestones(ctx context.Context, query string, args ...any) ([]model.Milestone, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: query milestones")
	}
	defer rows.Close()

	var ms []model.Milestone
	for rows.Next() {
		m, err := scanMilestone(rows)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan milestone")
		}
		ms = append(ms, *m)
	}
	return ms, eris.Wrap(rows.Err(), "sqlite: iterate milestones")
}

func (s *SQLiteStore) UpdateMilestone(ctx context.Context, id int64, patch *model.Patch) (*model.Milestone, error) {
	if patch.Len() == 0 {
		return nil, eris.New("sqlite: empty milestone patch")
	}

	set := make([]string, 0, patch.Len()+1)
	args := make([]any, 0, patch.Len()+2)
	for _, a := range patch.Assignments() {
		col, ok := milestoneFieldColumns[a.Field]
		if !ok {
			continue
		}
		set = append(set, fmt.Sprintf("%s = ?", col))
		args = append(args, a.Value)
	}
	set = append(set, "updated_at = ?")
	args = append(args, time.Now().UTC(), id)

	query := fmt.Sprintf(`UPDATE milestones SET %s WHERE id = ? RETURNING %s`,
		strings.Join(set, ", "), milestoneCols)

	m, err := scanMilestone(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, eris.Wrapf(err, "sqlite: update milestone %d", id)
	}
	return m, nil
}

// Daily targets

func (s *SQLiteStore) UpsertTarget(ctx context.Context, t model.TargetUpsert) error {
	existing, err := scanTarget(s.db.QueryRowContext(ctx,
		`SELECT `+targetCols+` FROM daily_targets WHERE user_id = ? AND target_date = ?`,
		t.UserID, t.TargetDate))
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return eris.Wrap(err, "sqlite: find target")
	}

	now := time.Now().UTC()
	if existing == nil {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO daily_targets
			 (user_id, target_date, c1_target, c2_target, c3_target, c4_target,
			  subscription_target, token, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			t.UserID, t.TargetDate,
			intOrZero(t.C1Target), intOrZero(t.C2Target), intOrZero(t.C3Target),
			intOrZero(t.C4Target), intOrZero(t.SubscriptionTarget), t.Token,
			now, now)
		if err != nil {
			if db.IsUniqueViolation(err) {
				return ErrDuplicate
			}
			return eris.Wrap(err, "sqlite: insert target")
		}
		return nil
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE daily_targets SET c1_target = ?, c2_target = ?, c3_target = ?,
		   c4_target = ?, subscription_target = ?, token = ?, updated_at = ?
		 WHERE id = ?`,
		intOr(t.C1Target, existing.C1Target), intOr(t.C2Target, existing.C2Target),
		intOr(t.C3Target, existing.C3Target), intOr(t.C4Target, existing.C4Target),
		intOr(t.SubscriptionTarget, existing.SubscriptionTarget),
		stringOr(t.Token, existing.Token), now, existing.ID)
	return eris.Wrap(err, "sqlite: update target")
}

func (s *SQLiteStore) ListTargets(ctx context.Context, userID int64, from, to string) ([]model.DailyTarget, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+targetCols+` FROM daily_targets
		 WHERE user_id = ? AND target_date BETWEEN ? AND ?
		 ORDER BY target_date ASC`,
		userID, from, to)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list targets")
	}
	defer rows.Close()

	var targets []model.DailyTarget
	for rows.Next() {
		t, err := scanTarget(rows)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan target")
		}
		targets = append(targets, *t)
	}
	return targets, eris.Wrap(rows.Err(), "sqlite: iterate targets")
}

// Users

func (s *SQLiteStore) CreateUser(ctx context.Context, u model.User) (*model.User, error) {
	now := time.Now().UTC()
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO users (first_name, last_name, gender_id, email, phone_number, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 RETURNING id, created_at, updated_at`,
		u.FirstName, u.LastName, u.GenderID, u.Email, u.PhoneNumber, now, now,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, eris.Wrap(err, "sqlite: create user")
	}
	return &u, nil
}

func (s *SQLiteStore) GetUser(ctx context.Context, id int64) (*model.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx,
		`SELECT `+userCols+` FROM users WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, eris.Wrapf(err, "sqlite: get user %d", id)
	}
	return u, nil
}

func (s *SQLiteStore) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+userCols+` FROM users WHERE is_deleted = 0 ORDER BY id`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list users")
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan user")
		}
		users = append(users, *u)
	}
	return users, eris.Wrap(rows.Err(), "sqlite: iterate users")
}

func (s *SQLiteStore) ListActiveUserRefs(ctx context.Context) ([]model.UserRef, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, first_name, last_name, email, first_name || ' ' || last_name AS name
		 FROM users WHERE is_deleted = 0
		 ORDER BY first_name || ' ' || last_name ASC`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list active users")
	}
	defer rows.Close()

	var refs []model.UserRef
	for rows.Next() {
		var r model.UserRef
		if err := rows.Scan(&r.ID, &r.FirstName, &r.LastName, &r.Email, &r.Name); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan user ref")
		}
		refs = append(refs, r)
	}
	return refs, eris.Wrap(rows.Err(), "sqlite: iterate user refs")
}

func (s *SQLiteStore) UpdateUser(ctx context.Context, u model.User) (*model.User, error) {
	updated, err := scanUser(s.db.QueryRowContext(ctx,
		`UPDATE users SET first_name = ?, last_name = ?, gender_id = ?,
		   email = ?, phone_number = ?, updated_at = ?
		 WHERE id = ? AND is_deleted = 0
		 RETURNING `+userCols,
		u.FirstName, u.LastName, u.GenderID, u.Email, u.PhoneNumber,
		time.Now().UTC(), u.ID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		if db.IsUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, eris.Wrapf(err, "sqlite: update user %d", u.ID)
	}
	return updated, nil
}

func (s *SQLiteStore) SoftDeleteUser(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET is_deleted = 1, updated_at = ? WHERE id = ?`,
		time.Now().UTC(), id)
	if err != nil {
		return eris.Wrapf(err, "sqlite: delete user %d", id)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "sqlite: delete user rows affected")
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Genders

func (s *SQLiteStore) CreateGender(ctx context.Context, name string) (*model.Gender, error) {
	var g model.Gender
	g.Name = name
	now := time.Now().UTC()
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO genders (name, created_at, updated_at) VALUES (?, ?, ?)
		 RETURNING id, created_at, updated_at`,
		name, now, now,
	).Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: create gender")
	}
	return &g, nil
}

func (s *SQLiteStore) GetGender(ctx context.Context, id int64) (*model.Gender, error) {
	g, err := scanGender(s.db.QueryRowContext(ctx,
		`SELECT `+genderCols+` FROM genders WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, eris.Wrapf(err, "sqlite: get gender %d", id)
	}
	return g, nil
}

func (s *SQLiteStore) ListGenders(ctx context.Context) ([]model.Gender, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+genderCols+` FROM genders WHERE is_deleted = 0 ORDER BY id`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list genders")
	}
	defer rows.Close()

	var genders []model.Gender
	for rows.Next() {
		g, err := scanGender(rows)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan gender")
		}
		genders = append(genders, *g)
	}
	return genders, eris.Wrap(rows.Err(), "sqlite: iterate genders")
}

func (s *SQLiteStore) UpdateGender(ctx context.Context, id int64, name string) (*model.Gender, error) {
	g, err := scanGender(s.db.QueryRowContext(ctx,
		`UPDATE genders SET name = ?, updated_at = ? WHERE id = ?
		 RETURNING `+genderCols,
		name, time.Now().UTC(), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, eris.Wrapf(err, "sqlite: update gender %d", id)
	}
	return g, nil
}

func (s *SQLiteStore) SoftDeleteGender(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE genders SET is_deleted = 1, updated_at = ? WHERE id = ?`,
		time.Now().UTC(), id)
	if err != nil {
		return eris.Wrapf(err, "sqlite: delete gender %d", id)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "sqlite: delete gender rows affected")
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func intOrZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func intOr(p *int, fallback int) int {
	if p == nil {
		return fallback
	}
	return *p
}

func stringOr(p *string, fallback *string) *string {
	if p == nil {
		return fallback
	}
	return p
}
