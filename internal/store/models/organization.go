package models

// Record type discriminator values stored in the "type" attribute.
const (
	TypeOrganization = "ORGANIZATION"
	TypeUser         = "USER"
	TypeLead         = "LEAD"
)

// Organization is a tenant's metadata record. Written exactly once, at
// signup, conditioned on non-existence.
type Organization struct {
	PK        string `dynamodbav:"PK" json:"-"`
	SK        string `dynamodbav:"SK" json:"-"`
	Type      string `dynamodbav:"type" json:"-"`
	ID        string `dynamodbav:"orgId" json:"orgId"`
	Name      string `dynamodbav:"name" json:"name"`
	CreatedAt string `dynamodbav:"createdAt" json:"createdAt"`
}

// EmailLock is the single cross-tenant record. Exactly one exists per
// normalized email and it is what makes a login identity globally unique.
// It carries only a back-reference to the owning org, never profile data.
type EmailLock struct {
	PK        string `dynamodbav:"PK" json:"-"`
	SK        string `dynamodbav:"SK" json:"-"`
	OrgID     string `dynamodbav:"orgId" json:"orgId"`
	CreatedAt string `dynamodbav:"createdAt" json:"createdAt"`
}
