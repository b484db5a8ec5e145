package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/fundroom/crm-api/internal/db"
	"github.com/fundroom/crm-api/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

const leadInsertSQL = `INSERT INTO leads
	(sr, sourced_from, sourced_by, date_of_connect, business_name,
	 contact_person_name, mobile_number, address, email, business_sector,
	 zone, landmark, existing_website, smm_presence, meeting_status, user_id,
	 created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	ON CONFLICT DO NOTHING
	RETURNING id, created_at, updated_at`

// preparedStatements lists queries to prepare on each new connection for
// the hottest operations (bulk ingestion inserts and lookups).
var preparedStatements = map[string]string{
	"insert_lead": leadInsertSQL,
	"get_lead":    `SELECT ` + leadCols + ` FROM leads WHERE id = $1`,
	"delete_lead": `DELETE FROM leads WHERE id = $1`,
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pgxCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		for name, sql := range preparedStatements {
			if _, err := conn.Prepare(ctx, name, sql); err != nil {
				return eris.Wrapf(err, "postgres: prepare %s", name)
			}
		}
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS genders (
	id         BIGSERIAL PRIMARY KEY,
	name       TEXT NOT NULL,
	is_deleted BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS users (
	id             BIGSERIAL PRIMARY KEY,
	first_name     TEXT NOT NULL,
	last_name      TEXT NOT NULL,
	gender_id      BIGINT REFERENCES genders(id),
	email          TEXT UNIQUE,
	phone_number   TEXT UNIQUE,
	last_login_at  TIMESTAMPTZ,
	last_logout_at TIMESTAMPTZ,
	is_deleted     BOOLEAN NOT NULL DEFAULT FALSE,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS leads (
	id                  BIGSERIAL PRIMARY KEY,
	sr                  BIGINT,
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
	user_id             BIGINT REFERENCES users(id) ON DELETE SET NULL,
	is_active           BOOLEAN NOT NULL DEFAULT TRUE,
	created_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at          TIMESTAMPTZ NOT NULL DEFAULT now()
);

-- Duplicate policy: same owner + business name, or same mobile, or same
-- email. Enforced here so concurrent ingestion cannot double-insert.
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
CREATE INDEX IF NOT EXISTS idx_leads_date_of_connect ON leads(date_of_connect);

CREATE TABLE IF NOT EXISTS milestones (
	id                           BIGSERIAL PRIMARY KEY,
	lead_id                      BIGINT UNIQUE REFERENCES leads(id) ON DELETE SET NULL,
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
	is_active                    BOOLEAN NOT NULL DEFAULT TRUE,
	created_at                   TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at                   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS daily_targets (
	id                  BIGSERIAL PRIMARY KEY,
	user_id             BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	target_date         TEXT NOT NULL,
	c1_target           INTEGER NOT NULL DEFAULT 0,
	c2_target           INTEGER NOT NULL DEFAULT 0,
	c3_target           INTEGER NOT NULL DEFAULT 0,
	c4_target           INTEGER NOT NULL DEFAULT 0,
	subscription_target INTEGER NOT NULL DEFAULT 0,
	token               TEXT,
	created_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (user_id, target_date)
);

CREATE INDEX IF NOT EXISTS idx_daily_targets_user_date ON daily_targets(user_id, target_date);
`

func (s *PostgresStore) Ping(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, "SELECT 1")
	return eris.Wrap(err, "postgres: ping")
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

// Leads

func (s *PostgresStore) InsertLead(ctx context.Context, in model.LeadInput) (*model.Lead, bool, error) {
	lead := leadFromInput(in)
	now := time.Now().UTC()

	args := append(leadInsertValues(in), now, now)
	err := s.pool.QueryRow(ctx, leadInsertSQL, args...).
		Scan(&lead.ID, &lead.CreatedAt, &lead.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// ON CONFLICT DO NOTHING returned no row: a unique index
			// already holds this duplicate key.
			return nil, false, nil
		}
		return nil, false, eris.Wrap(err, "postgres: insert lead")
	}
	return lead, true, nil
}

func (s *PostgresStore) GetLead(ctx context.Context, id int64) (*model.Lead, error) {
	lead, err := scanLead(s.pool.QueryRow(ctx,
		`SELECT `+leadCols+` FROM leads WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, eris.Wrapf(err, "postgres: get lead %d", id)
	}
	return lead, nil
}

func (s *PostgresStore) ListLeads(ctx context.Context) ([]model.Lead, error) {
	return s.queryLeads(ctx, `SELECT `+leadCols+` FROM leads ORDER BY id`)
}

func (s *PostgresStore) ListLeadsBySourcedBy(ctx context.Context, name string) ([]model.Lead, error) {
	return s.queryLeads(ctx,
		`SELECT `+leadCols+` FROM leads WHERE sourced_by ILIKE $1 ORDER BY date_of_connect ASC`,
		name)
}

func (s *PostgresStore) ListLeadsByMeetingStatus(ctx context.Context, status string) ([]model.Lead, error) {
	return s.queryLeads(ctx,
		`SELECT `+leadCols+` FROM leads WHERE meeting_status ILIKE $1 ORDER BY date_of_connect ASC`,
		"%"+status+"%")
}

func (s *PostgresStore) queryLeads(ctx context.Context, sql string, args ...any) ([]model.Lead, error) {
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: query leads")
	}
	defer rows.Close()

	var leads []model.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan lead")
		}
		leads = append(leads, *lead)
	}
	return leads, eris.Wrap(rows.Err(), "postgres: iterate leads")
}

func (s *PostgresStore) UpdateLead(ctx context.Context, id int64, patch *model.Patch) (*model.Lead, error) {
	if patch.Len() == 0 {
		return nil, eris.New("postgres: empty lead patch")
	}

	set := make([]string, 0, patch.Len()+1)
	args := make([]any, 0, patch.Len()+2)
	argIdx := 1
	for _, a := range patch.Assignments() {
		col, ok := leadFieldColumns[a.Field]
		if !ok {
			continue
		}
		set = append(set, fmt.Sprintf("%s = $%d", col, argIdx))
		args = append(args, a.Value)
		argIdx++
	}
	set = append(set, fmt.Sprintf("updated_at = $%d", argIdx))
	args = append(args, time.Now().UTC())
	argIdx++
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE leads SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(set, ", "), argIdx, leadCols)

	lead, err := scanLead(s.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		if db.IsUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, eris.Wrapf(err, "postgres: update lead %d", id)
	}
	return lead, nil
}

func (s *PostgresStore) DeleteLead(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return eris.Wrapf(err, "postgres: delete lead %d", id)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) CountLeadsByStatus(ctx context.Context, userID int64, status, from, to string) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM leads
		 WHERE user_id = $1 AND meeting_status ILIKE $2
		   AND date_of_connect BETWEEN $3 AND $4`,
		userID, "%"+status+"%", from, to,
	).Scan(&count)
	return count, eris.Wrap(err, "postgres: count leads by status")
}

// Milestones

func (s *PostgresStore) UpsertMilestone(ctx context.Context, in model.MilestoneInput) (*model.Milestone, bool, error) {
	m := milestoneFromInput(in)
	now := time.Now().UTC()

	// The unique index on lead_id makes this atomic: a concurrent insert
	// for the same lead turns into the update arm.
	args := append(milestoneValues(in), now, now)
	err := s.pool.QueryRow(ctx,
		`INSERT INTO milestones
		 (lead_id, rm_assigned_name, rm_assigned_contact, domain_name,
		  website_start_date, website_completion_date, training_and_handover_status,
		  services_opted, client_feedback, renewal_date, renewal_status,
		  created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 ON CONFLICT (lead_id) DO UPDATE SET
		   rm_assigned_name = $2, rm_assigned_contact = $3, domain_name = $4,
		   website_start_date = $5, website_completion_date = $6,
		   training_and_handover_status = $7, services_opted = $8,
		   client_feedback = $9, renewal_date = $10, renewal_status = $11,
		   updated_at = $13
		 RETURNING id, created_at, updated_at`,
		args...,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, false, eris.Wrap(err, "postgres: upsert milestone")
	}
	// On insert both timestamps carry the same value; an update moves
	// updated_at past the original created_at.
	created := m.CreatedAt.Equal(m.UpdatedAt)
	return m, created, nil
}

func (s *PostgresStore) GetMilestone(ctx context.Context, id int64) (*model.Milestone, error) {
	m, err := scanMilestone(s.pool.QueryRow(ctx,
		`SELECT `+milestoneCols+` FROM milestones WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, eris.Wrapf(err, "postgres: get milestone %d", id)
	}
	return m, nil
}

func (s *PostgresStore) GetMilestoneByLead(ctx context.Context, leadID int64) (*model.Milestone, error) {
	m, err := scanMilestone(s.pool.QueryRow(ctx,
		`SELECT `+milestoneCols+` FROM milestones WHERE lead_id = $1`, leadID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, eris.Wrapf(err, "postgres: get milestone for lead %d", leadID)
	}
	return m, nil
}

func (s *PostgresStore) ListMilestones(ctx context.Context) ([]model.Milestone, error) {
	return s.queryMilestones(ctx, `SELECT `+milestoneCols+` FROM milestones ORDER BY id`)
}

func (s *PostgresStore) ListMilestonesByUser(ctx context.Context, userID int64) ([]model.Milestone, error) {
	return s.queryMilestones(ctx,
		`SELECT m.id, m.lead_id, m.rm_assigned_name, m.rm_assigned_contact, m.domain_name,
		   m.website_start_date, m.website_completion_date, m.training_and_handover_status,
		   m.services_opted, m.client_feedback, m.renewal_date, m.renewal_status,
		   m.is_active, m.created_at, m.updated_at
		 FROM milestones m JOIN leads l ON l.id = m.lead_id
		 WHERE l.user_id = $1 ORDER BY m.id`,
		userID)
}

func (s *PostgresStore) queryMilestones(ctx context.Context, sql string, args ...any) ([]model.Milestone, error) {
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: query milestones")
	}
	defer rows.Close()

	var ms []model.Milestone
	for rows.Next() {
		m, err := scanMilestone(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan milestone")
		}
		ms = append(ms, *m)
	}
	return ms, eris.Wrap(rows.Err(), "postgres: iterate milestones")
}

func (s *PostgresStore) UpdateMilestone(ctx context.Context, id int64, patch *model.Patch) (*model.Milestone, error) {
	if patch.Len() == 0 {
		return nil, eris.New("postgres: empty milestone patch")
	}

	set := make([]string, 0, patch.Len()+1)
	args := make([]any, 0, patch.Len()+2)
	argIdx := 1
	for _, a := range patch.Assignments() {
		col, ok := milestoneFieldColumns[a.Field]
		if !ok {
			continue
		}
		set = append(set, fmt.Sprintf("%s = $%d", col, argIdx))
		args = append(args, a.Value)
		argIdx++
	}
	set = append(set, fmt.Sprintf("updated_at = $%d", argIdx))
	args = append(args, time.Now().UTC())
	argIdx++
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE milestones SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(set, ", "), argIdx, milestoneCols)

	m, err := scanMilestone(s.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, eris.Wrapf(err, "postgres: update milestone %d", id)
	}
	return m, nil
}

// Daily targets

func (s *PostgresStore) UpsertTarget(ctx context.Context, t model.TargetUpsert) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO daily_targets
		 (user_id, target_date, c1_target, c2_target, c3_target, c4_target,
		  subscription_target, token, created_at, updated_at)
		 VALUES ($1, $2, COALESCE($3, 0), COALESCE($4, 0), COALESCE($5, 0),
		         COALESCE($6, 0), COALESCE($7, 0), $8, $9, $9)
		 ON CONFLICT (user_id, target_date) DO UPDATE SET
		   c1_target = COALESCE($3, daily_targets.c1_target),
		   c2_target = COALESCE($4, daily_targets.c2_target),
		   c3_target = COALESCE($5, daily_targets.c3_target),
		   c4_target = COALESCE($6, daily_targets.c4_target),
		   subscription_target = COALESCE($7, daily_targets.subscription_target),
		   token = COALESCE($8, daily_targets.token),
		   updated_at = $9`,
		t.UserID, t.TargetDate, t.C1Target, t.C2Target, t.C3Target, t.C4Target,
		t.SubscriptionTarget, t.Token, time.Now().UTC(),
	)
	return eris.Wrap(err, "postgres: upsert target")
}

func (s *PostgresStore) ListTargets(ctx context.Context, userID int64, from, to string) ([]model.DailyTarget, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+targetCols+` FROM daily_targets
		 WHERE user_id = $1 AND target_date BETWEEN $2 AND $3
		 ORDER BY target_date ASC`,
		userID, from, to)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list targets")
	}
	defer rows.Close()

	var targets []model.DailyTarget
	for rows.Next() {
		t, err := scanTarget(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan target")
		}
		targets = append(targets, *t)
	}
	return targets, eris.Wrap(rows.Err(), "postgres: iterate targets")
}

// Users

func (s *PostgresStore) CreateUser(ctx context.Context, u model.User) (*model.User, error) {
	now := time.Now().UTC()
	err := s.pool.QueryRow(ctx,
		`INSERT INTO users (first_name, last_name, gender_id, email, phone_number, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $6)
		 RETURNING id, created_at, updated_at`,
		u.FirstName, u.LastName, u.GenderID, u.Email, u.PhoneNumber, now,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, eris.Wrap(err, "postgres: create user")
	}
	return &u, nil
}

func (s *PostgresStore) GetUser(ctx context.Context, id int64) (*model.User, error) {
	u, err := scanUser(s.pool.QueryRow(ctx,
		`SELECT `+userCols+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, eris.Wrapf(err, "postgres: get user %d", id)
	}
	return u, nil
}

func (s *PostgresStore) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+userCols+` FROM users WHERE is_deleted = FALSE ORDER BY id`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list users")
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan user")
		}
		users = append(users, *u)
	}
	return users, eris.Wrap(rows.Err(), "postgres: iterate users")
}

func (s *PostgresStore) ListActiveUserRefs(ctx context.Context) ([]model.UserRef, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, first_name, last_name, email, first_name || ' ' || last_name AS name
		 FROM users WHERE is_deleted = FALSE
		 ORDER BY first_name || ' ' || last_name ASC`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list active users")
	}
	defer rows.Close()

	var refs []model.UserRef
	for rows.Next() {
		var r model.UserRef
		if err := rows.Scan(&r.ID, &r.FirstName, &r.LastName, &r.Email, &r.Name); err != nil {
			return nil, eris.Wrap(err, "postgres: scan user ref")
		}
		refs = append(refs, r)
	}
	return refs, eris.Wrap(rows.Err(), "postgres: iterate user refs")
}

func (s *PostgresStore) UpdateUser(ctx context.Context, u model.User) (*model.User, error) {
	updated, err := scanUser(s.pool.QueryRow(ctx,
		`UPDATE users SET first_name = $1, last_name = $2, gender_id = $3,
		   email = $4, phone_number = $5, updated_at = $6
		 WHERE id = $7 AND is_deleted = FALSE
		 RETURNING `+userCols,
		u.FirstName, u.LastName, u.GenderID, u.Email, u.PhoneNumber,
		time.Now().UTC(), u.ID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		if db.IsUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, eris.Wrapf(err, "postgres: update user %d", u.ID)
	}
	return updated, nil
}

func (s *PostgresStore) SoftDeleteUser(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE users SET is_deleted = TRUE, updated_at = $1 WHERE id = $2`,
		time.Now().UTC(), id)
	if err != nil {
		return eris.Wrapf(err, "postgres: delete user %d", id)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Genders

func (s *PostgresStore) CreateGender(ctx context.Context, name string) (*model.Gender, error) {
	var g model.Gender
	g.Name = name
	err := s.pool.QueryRow(ctx,
		`INSERT INTO genders (name, created_at, updated_at) VALUES ($1, $2, $2)
		 RETURNING id, created_at, updated_at`,
		name, time.Now().UTC(),
	).Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create gender")
	}
	return &g, nil
}

func (s *PostgresStore) GetGender(ctx context.Context, id int64) (*model.Gender, error) {
	g, err := scanGender(s.pool.QueryRow(ctx,
		`SELECT `+genderCols+` FROM genders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, eris.Wrapf(err, "postgres: get gender %d", id)
	}
	return g, nil
}

func (s *PostgresStore) ListGenders(ctx context.Context) ([]model.Gender, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+genderCols+` FROM genders WHERE is_deleted = FALSE ORDER BY id`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list genders")
	}
	defer rows.Close()

	var genders []model.Gender
	for rows.Next() {
		g, err := scanGender(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan gender")
		}
		genders = append(genders, *g)
	}
	return genders, eris.Wrap(rows.Err(), "postgres: iterate genders")
}

func (s *PostgresStore) UpdateGender(ctx context.Context, id int64, name string) (*model.Gender, error) {
	g, err := scanGender(s.pool.QueryRow(ctx,
		`UPDATE genders SET name = $1, updated_at = $2 WHERE id = $3
		 RETURNING `+genderCols,
		name, time.Now().UTC(), id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, eris.Wrapf(err, "postgres: update gender %d", id)
	}
	return g, nil
}

func (s *PostgresStore) SoftDeleteGender(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE genders SET is_deleted = TRUE, updated_at = $1 WHERE id = $2`,
		time.Now().UTC(), id)
	if err != nil {
		return eris.Wrapf(err, "postgres: delete gender %d", id)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
