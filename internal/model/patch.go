package model

// Patch is a typed partial update: an ordered set of field assignments
// restricted to an allow-list. Unknown keys from the caller never make it
// into a Patch, so a persistence write can trust its contents.
type Patch struct {
	assignments []Assignment
	seen        map[string]bool
}

// Assignment is a single field-to-value binding inside a Patch.
type Assignment struct {
	Field string
	Value any
}

// leadUpdatableFields is the allow-list for partial lead updates.
var leadUpdatableFields = []string{
	"sr", "sourcedFrom", "sourcedBy", "dateOfConnect", "businessName",
	"contactPersonName", "mobileNumber", "address", "email",
	"businessSector", "zone", "landmark", "existingWebsite",
	"smmPresence", "meetingStatus",
	"dateOfC1Connect", "c1Status", "c1Comment",
	"dateOfC2Clarity", "c2Status", "c2Comment",
	"dateOfC3Clarity", "c3Status", "c3Comment",
	"dateOfC4Customer", "c4Status", "c4Comment",
	"userId",
}

// milestoneUpdatableFields is the allow-list for partial milestone updates.
var milestoneUpdatableFields = []string{
	"leadId", "rmAssignedName", "rmAssignedContact", "domainName",
	"websiteStartDate", "websiteCompletionDate", "trainingAndHandoverStatus",
	"servicesOpted", "clientFeedback", "renewalDate", "renewalStatus",
}

// NewLeadPatch builds a Patch from a raw request body, keeping only
// recognized lead fields in allow-list order. A mobileNumber value is
// coerced to its string form so numeric input never loses formatting.
func NewLeadPatch(raw map[string]any) *Patch {
	p := newPatch()
	for _, f := range leadUpdatableFields {
		v, ok := raw[f]
		if !ok {
			continue
		}
		if f == "mobileNumber" {
			v = coerceString(v)
		}
		p.set(f, v)
	}
	return p
}

// NewMilestonePatch builds a Patch from a raw request body, keeping only
// recognized milestone fields.
func NewMilestonePatch(raw map[string]any) *Patch {
	p := newPatch()
	for _, f := range milestoneUpdatableFields {
		if v, ok := raw[f]; ok {
			p.set(f, v)
		}
	}
	return p
}

func newPatch() *Patch {
	return &Patch{seen: make(map[string]bool)}
}

func (p *Patch) set(field string, value any) {
	if p.seen[field] {
		return
	}
	p.seen[field] = true
	p.assignments = append(p.assignments, Assignment{Field: field, Value: value})
}

// Len reports the number of assignments in the patch.
func (p *Patch) Len() int { return len(p.assignments) }

// Assignments returns the field assignments in allow-list order.
func (p *Patch) Assignments() []Assignment { return p.assignments }
