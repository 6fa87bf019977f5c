package models

// User roles. The creator of an organization is always ADMIN, a joiner is
// always MEMBER.
const (
	RoleAdmin  = "ADMIN"
	RoleMember = "MEMBER"
)

// User is an organization member. The sort key is derived from the
// normalized email, making the email unique within the org.
type User struct {
	PK        string `dynamodbav:"PK" json:"-"`
	SK        string `dynamodbav:"SK" json:"-"`
	Type      string `dynamodbav:"type" json:"-"`
	UserID    string `dynamodbav:"userId" json:"userId"`
	Name      string `dynamodbav:"name" json:"name"`
	Email     string `dynamodbav:"email" json:"email"`
	Password  string `dynamodbav:"password" json:"-"`
	Role      string `dynamodbav:"role" json:"role"`
	CreatedAt string `dynamodbav:"createdAt" json:"createdAt"`
}
