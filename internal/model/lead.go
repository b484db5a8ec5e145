package model

import "time"

// Lead represents one prospective business contact ("A sheet" row).
// All business fields are nullable; the sheet tolerates partially filled
// rows and reports the gaps instead of rejecting them.
type Lead struct {
	ID                int64   `json:"id"`
	SR                *int64  `json:"sr"`
	SourcedFrom       *string `json:"sourcedFrom"`
	SourcedBy         *string `json:"sourcedBy"`
	DateOfConnect     *string `json:"dateOfConnect"`
	BusinessName      *string `json:"businessName"`
	ContactPersonName *string `json:"contactPersonName"`
	MobileNumber      *string `json:"mobileNumber"`
	Address           *string `json:"address"`
	Email             *string `json:"email"`
	BusinessSector    *string `json:"businessSector"`
	Zone              *string `json:"zone"`
	Landmark          *string `json:"landmark"`
	ExistingWebsite   *string `json:"existingWebsite"`
	SMMPresence       *string `json:"smmPresence"`
	MeetingStatus     *string `json:"meetingStatus"`

	// C1..C4 follow-up stages, each with its own date, status and comment.
	DateOfC1Connect  *string `json:"dateOfC1Connect"`
	C1Status         *string `json:"c1Status"`
	C1Comment        *string `json:"c1Comment"`
	DateOfC2Clarity  *string `json:"dateOfC2Clarity"`
	C2Status         *string `json:"c2Status"`
	C2Comment        *string `json:"c2Comment"`
	DateOfC3Clarity  *string `json:"dateOfC3Clarity"`
	C3Status         *string `json:"c3Status"`
	C3Comment        *string `json:"c3Comment"`
	DateOfC4Customer *string `json:"dateOfC4Customer"`
	C4Status         *string `json:"c4Status"`
	C4Comment        *string `json:"c4Comment"`

	UserID    *int64    `json:"userId"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LeadInput is the normalized payload for a single lead insertion attempt.
// Every recognized field is present; missing input maps to an explicit nil.
type LeadInput struct {
	SR                *int64  `json:"sr"`
	SourcedFrom       *string `json:"sourcedFrom"`
	SourcedBy         *string `json:"sourcedBy"`
	DateOfConnect     *string `json:"dateOfConnect"`
	BusinessName      *string `json:"businessName"`
	ContactPersonName *string `json:"contactPersonName"`
	MobileNumber      *string `json:"mobileNumber"`
	Address           *string `json:"address"`
	Email             *string `json:"email"`
	BusinessSector    *string `json:"businessSector"`
	Zone              *string `json:"zone"`
	Landmark          *string `json:"landmark"`
	ExistingWebsite   *string `json:"existingWebsite"`
	SMMPresence       *string `json:"smmPresence"`
	MeetingStatus     *string `json:"meetingStatus"`
	UserID            *int64  `json:"userId"`
}

// NullFields returns the names of all nil fields except the owning user,
// in declaration order. Used for the ingestion null-field audit.
func (in *LeadInput) NullFields() []string {
	var nulls []string
	add := func(name string, isNil bool) {
		if isNil {
			nulls = append(nulls, name)
		}
	}
	add("sr", in.SR == nil)
	add("sourcedFrom", in.SourcedFrom == nil)
	add("sourcedBy", in.SourcedBy == nil)
	add("dateOfConnect", in.DateOfConnect == nil)
	add("businessName", in.BusinessName == nil)
	add("contactPersonName", in.ContactPersonName == nil)
	add("mobileNumber", in.MobileNumber == nil)
	add("address", in.Address == nil)
	add("email", in.Email == nil)
	add("businessSector", in.BusinessSector == nil)
	add("zone", in.Zone == nil)
	add("landmark", in.Landmark == nil)
	add("existingWebsite", in.ExistingWebsite == nil)
	add("smmPresence", in.SMMPresence == nil)
	add("meetingStatus", in.MeetingStatus == nil)
	return nulls
}
