package model

import "time"

// Milestone tracks post-conversion delivery for a lead ("M sheet" row):
// relationship manager assignment, website build dates, training handover
// and renewal state. At most one milestone exists per lead.
type Milestone struct {
	ID                        int64   `json:"id"`
	LeadID                    *int64  `json:"aSheetId"`
	RMAssignedName            *string `json:"rmAssignedName"`
	RMAssignedContact         *string `json:"rmAssignedContact"`
	DomainName                *string `json:"domainName"`
	WebsiteStartDate          *string `json:"websiteStartDate"`
	WebsiteCompletionDate     *string `json:"websiteCompletionDate"`
	TrainingAndHandoverStatus *string `json:"trainingAndHandoverStatus"`
	ServicesOpted             *string `json:"servicesOpted"`
	ClientFeedback            *string `json:"clientFeedback"`
	RenewalDate               *string `json:"renewalDate"`
	RenewalStatus             *string `json:"renewalStatus"`
	IsActive                  bool    `json:"isActive"`
	CreatedAt                 time.Time `json:"createdAt"`
	UpdatedAt                 time.Time `json:"updatedAt"`
}

// MilestoneInput is the payload for a milestone upsert. The lead id is
// mandatory; everything else defaults to null.
type MilestoneInput struct {
	LeadID                    int64   `json:"aSheetId"`
	RMAssignedName            *string `json:"rmAssignedName"`
	RMAssignedContact         *string `json:"rmAssignedContact"`
	DomainName                *string `json:"domainName"`
	WebsiteStartDate          *string `json:"websiteStartDate"`
	WebsiteCompletionDate     *string `json:"websiteCompletionDate"`
	TrainingAndHandoverStatus *string `json:"trainingAndHandoverStatus"`
	ServicesOpted             *string `json:"servicesOpted"`
	ClientFeedback            *string `json:"clientFeedback"`
	RenewalDate               *string `json:"renewalDate"`
	RenewalStatus             *string `json:"renewalStatus"`
}
