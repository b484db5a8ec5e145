package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/fundroom/crm-api/internal/model"
)

// ErrNotFound is returned when a referenced record does not exist.
var ErrNotFound = eris.New("store: record not found")

// ErrDuplicate is returned when an insert or update violates a unique
// constraint outside the lead ingestion path (user email, phone, target day).
var ErrDuplicate = eris.New("store: duplicate record")

// Store defines the persistence interface for the CRM backend.
type Store interface {
	// Leads. InsertLead reports inserted=false when a unique index
	// rejected the row, which ingestion classifies as a duplicate.
	InsertLead(ctx context.Context, in model.LeadInput) (lead *model.Lead, inserted bool, err error)
	GetLead(ctx context.Context, id int64) (*model.Lead, error)
	ListLeads(ctx context.Context) ([]model.Lead, error)
	ListLeadsBySourcedBy(ctx context.Context, name string) ([]model.Lead, error)
	ListLeadsByMeetingStatus(ctx context.Context, status string) ([]model.Lead, error)
	UpdateLead(ctx context.Context, id int64, patch *model.Patch) (*model.Lead, error)
	DeleteLead(ctx context.Context, id int64) error
	CountLeadsByStatus(ctx context.Context, userID int64, status, from, to string) (int, error)

	// Milestones
	UpsertMilestone(ctx context.Context, in model.MilestoneInput) (m *model.Milestone, created bool, err error)
	GetMilestone(ctx context.Context, id int64) (*model.Milestone, error)
	GetMilestoneByLead(ctx context.Context, leadID int64) (*model.Milestone, error)
	ListMilestones(ctx context.Context) ([]model.Milestone, error)
	ListMilestonesByUser(ctx context.Context, userID int64) ([]model.Milestone, error)
	UpdateMilestone(ctx context.Context, id int64, patch *model.Patch) (*model.Milestone, error)

	// Daily targets
	UpsertTarget(ctx context.Context, t model.TargetUpsert) error
	ListTargets(ctx context.Context, userID int64, from, to string) ([]model.DailyTarget, error)

	// Users
	CreateUser(ctx context.Context, u model.User) (*model.User, error)
	GetUser(ctx context.Context, id int64) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	ListActiveUserRefs(ctx context.Context) ([]model.UserRef, error)
	UpdateUser(ctx context.Context, u model.User) (*model.User, error)
	SoftDeleteUser(ctx context.Context, id int64) error

	// Genders
	CreateGender(ctx context.Context, name string) (*model.Gender, error)
	GetGender(ctx context.Context, id int64) (*model.Gender, error)
	ListGenders(ctx context.Context) ([]model.Gender, error)
	UpdateGender(ctx context.Context, id int64, name string) (*model.Gender, error)
	SoftDeleteGender(ctx context.Context, id int64) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
