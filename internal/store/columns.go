package store

import "github.com/fundroom/crm-api/internal/model"

// rowScanner is satisfied by pgx.Row, pgx.Rows, sql.Row and sql.Rows, so
// the scan helpers below serve both backends.
type rowScanner interface {
	Scan(dest ...any) error
}

// leadCols is the canonical lead column list; every lead SELECT uses it so
// scanLead stays in sync.
const leadCols = `id, sr, sourced_from, sourced_by, date_of_connect, business_name,
	contact_person_name, mobile_number, address, email, business_sector, zone,
	landmark, existing_website, smm_presence, meeting_status,
	date_of_c1_connect, c1_status, c1_comment,
	date_of_c2_clarity, c2_status, c2_comment,
	date_of_c3_clarity, c3_status, c3_comment,
	date_of_c4_customer, c4_status, c4_comment,
	user_id, is_active, created_at, updated_at`

const milestoneCols = `id, lead_id, rm_assigned_name, rm_assigned_contact, domain_name,
	website_start_date, website_completion_date, training_and_handover_status,
	services_opted, client_feedback, renewal_date, renewal_status,
	is_active, created_at, updated_at`

const targetCols = `id, user_id, target_date, c1_target, c2_target, c3_target,
	c4_target, subscription_target, token, created_at, updated_at`

const userCols = `id, first_name, last_name, gender_id, email, phone_number,
	last_login_at, last_logout_at, is_deleted, created_at, updated_at`

const genderCols = `id, name, is_deleted, created_at, updated_at`

// leadFieldColumns maps API field names (as accepted in patches) to columns.
var leadFieldColumns = map[string]string{
	"sr":                "sr",
	"sourcedFrom":       "sourced_from",
	"sourcedBy":         "sourced_by",
	"dateOfConnect":     "date_of_connect",
	"businessName":      "business_name",
	"contactPersonName": "contact_person_name",
	"mobileNumber":      "mobile_number",
	"address":           "address",
	"email":             "email",
	"businessSector":    "business_sector",
	"zone":              "zone",
	"landmark":          "landmark",
	"existingWebsite":   "existing_website",
	"smmPresence":       "smm_presence",
	"meetingStatus":     "meeting_status",
	"dateOfC1Connect":   "date_of_c1_connect",
	"c1Status":          "c1_status",
	"c1Comment":         "c1_comment",
	"dateOfC2Clarity":   "date_of_c2_clarity",
	"c2Status":          "c2_status",
	"c2Comment":         "c2_comment",
	"dateOfC3Clarity":   "date_of_c3_clarity",
	"c3Status":          "c3_status",
	"c3Comment":         "c3_comment",
	"dateOfC4Customer":  "date_of_c4_customer",
	"c4Status":          "c4_status",
	"c4Comment":         "c4_comment",
	"userId":            "user_id",
}

var milestoneFieldColumns = map[string]string{
	"leadId":                    "lead_id",
	"rmAssignedName":            "rm_assigned_name",
	"rmAssignedContact":         "rm_assigned_contact",
	"domainName":                "domain_name",
	"websiteStartDate":          "website_start_date",
	"websiteCompletionDate":     "website_completion_date",
	"trainingAndHandoverStatus": "training_and_handover_status",
	"servicesOpted":             "services_opted",
	"clientFeedback":            "client_feedback",
	"renewalDate":               "renewal_date",
	"renewalStatus":             "renewal_status",
}

func scanLead(row rowScanner) (*model.Lead, error) {
	var l model.Lead
	err := row.Scan(
		&l.ID, &l.SR, &l.SourcedFrom, &l.SourcedBy, &l.DateOfConnect, &l.BusinessName,
		&l.ContactPersonName, &l.MobileNumber, &l.Address, &l.Email, &l.BusinessSector, &l.Zone,
		&l.Landmark, &l.ExistingWebsite, &l.SMMPresence, &l.MeetingStatus,
		&l.DateOfC1Connect, &l.C1Status, &l.C1Comment,
		&l.DateOfC2Clarity, &l.C2Status, &l.C2Comment,
		&l.DateOfC3Clarity, &l.C3Status, &l.C3Comment,
		&l.DateOfC4Customer, &l.C4Status, &l.C4Comment,
		&l.UserID, &l.IsActive, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func scanMilestone(row rowScanner) (*model.Milestone, error) {
	var m model.Milestone
	err := row.Scan(
		&m.ID, &m.LeadID, &m.RMAssignedName, &m.RMAssignedContact, &m.DomainName,
		&m.WebsiteStartDate, &m.WebsiteCompletionDate, &m.TrainingAndHandoverStatus,
		&m.ServicesOpted, &m.ClientFeedback, &m.RenewalDate, &m.RenewalStatus,
		&m.IsActive, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func scanTarget(row rowScanner) (*model.DailyTarget, error) {
	var t model.DailyTarget
	err := row.Scan(
		&t.ID, &t.UserID, &t.TargetDate, &t.C1Target, &t.C2Target, &t.C3Target,
		&t.C4Target, &t.SubscriptionTarget, &t.Token, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func scanUser(row rowScanner) (*model.User, error) {
	var u model.User
	err := row.Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.GenderID, &u.Email, &u.PhoneNumber,
		&u.LastLoginAt, &u.LastLogoutAt, &u.IsDeleted, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func scanGender(row rowScanner) (*model.Gender, error) {
	var g model.Gender
	err := row.Scan(&g.ID, &g.Name, &g.IsDeleted, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// leadInsertValues flattens a normalized lead payload in insert column order.
func leadInsertValues(in model.LeadInput) []any {
	return []any{
		in.SR, in.SourcedFrom, in.SourcedBy, in.DateOfConnect, in.BusinessName,
		in.ContactPersonName, in.MobileNumber, in.Address, in.Email,
		in.BusinessSector, in.Zone, in.Landmark, in.ExistingWebsite,
		in.SMMPresence, in.MeetingStatus, in.UserID,
	}
}

// leadFromInput copies a normalized payload into a Lead, ready to carry the
// backend-assigned id and timestamps.
func leadFromInput(in model.LeadInput) *model.Lead {
	return &model.Lead{
		SR:                in.SR,
		SourcedFrom:       in.SourcedFrom,
		SourcedBy:         in.SourcedBy,
		DateOfConnect:     in.DateOfConnect,
		BusinessName:      in.BusinessName,
		ContactPersonName: in.ContactPersonName,
		MobileNumber:      in.MobileNumber,
		Address:           in.Address,
		Email:             in.Email,
		BusinessSector:    in.BusinessSector,
		Zone:              in.Zone,
		Landmark:          in.Landmark,
		ExistingWebsite:   in.ExistingWebsite,
		SMMPresence:       in.SMMPresence,
		MeetingStatus:     in.MeetingStatus,
		UserID:            in.UserID,
		IsActive:          true,
	}
}

// milestoneFromInput copies an upsert payload into a Milestone.
func milestoneFromInput(in model.MilestoneInput) *model.Milestone {
	leadID := in.LeadID
	return &model.Milestone{
		LeadID:                    &leadID,
		RMAssignedName:            in.RMAssignedName,
		RMAssignedContact:         in.RMAssignedContact,
		DomainName:                in.DomainName,
		WebsiteStartDate:          in.WebsiteStartDate,
		WebsiteCompletionDate:     in.WebsiteCompletionDate,
		TrainingAndHandoverStatus: in.TrainingAndHandoverStatus,
		ServicesOpted:             in.ServicesOpted,
		ClientFeedback:            in.ClientFeedback,
		RenewalDate:               in.RenewalDate,
		RenewalStatus:             in.RenewalStatus,
		IsActive:                  true,
	}
}

// milestoneValues flattens a milestone payload in column order, lead id first.
func milestoneValues(in model.MilestoneInput) []any {
	return []any{
		in.LeadID, in.RMAssignedName, in.RMAssignedContact, in.DomainName,
		in.WebsiteStartDate, in.WebsiteCompletionDate, in.TrainingAndHandoverStatus,
		in.ServicesOpted, in.ClientFeedback, in.RenewalDate, in.RenewalStatus,
	}
}
