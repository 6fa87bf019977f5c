package models

import "encoding/json"

// Note is one append-only entry in a lead's notes list.
type Note struct {
	Content   string `dynamodbav:"content" json:"content"`
	CreatedAt string `dynamodbav:"createdAt" json:"createdAt"`
}

// Lead is a lead record: a fixed core schema plus an open map of
// caller-supplied scalar extension attributes. Custom attributes are stored
// flat on the item, alongside the core attributes, and are never checked
// against the org's field schema (the schema is display-only).
type Lead struct {
	PK        string  `dynamodbav:"PK" json:"-"`
	SK        string  `dynamodbav:"SK" json:"-"`
	Type      string  `dynamodbav:"type" json:"-"`
	ID        string  `dynamodbav:"id" json:"id"`
	Name      string  `dynamodbav:"name,omitempty" json:"name,omitempty"`
	Email     string  `dynamodbav:"email,omitempty" json:"email,omitempty"`
	Status    string  `dynamodbav:"status,omitempty" json:"status,omitempty"`
	Value     float64 `dynamodbav:"value,omitempty" json:"value,omitempty"`
	Notes     []Note  `dynamodbav:"notes" json:"notes"`
	CreatedAt string  `dynamodbav:"createdAt" json:"createdAt"`

	// Custom holds the free-form extension attributes. Persisted flat on
	// the item by the repository, not through dynamodbav.
	Custom map[string]interface{} `dynamodbav:"-" json:"-"`
}

// leadCoreAttrs are the item attributes owned by the fixed schema. Anything
// else on a stored item belongs to Custom.
var leadCoreAttrs = map[string]bool{
	"PK": true, "SK": true, "type": true,
	"id": true, "name": true, "email": true, "status": true,
	"value": true, "notes": true, "createdAt": true,
}

// IsCoreLeadAttr reports whether name is part of the fixed lead schema.
func IsCoreLeadAttr(name string) bool {
	return leadCoreAttrs[name]
}

// MarshalJSON flattens custom attributes onto the core fields, matching the
// wire shape clients expect.
func (l Lead) MarshalJSON() ([]byte, error) {
	type alias Lead
	raw, err := json.Marshal(alias(l))
	if err != nil {
		return nil, err
	}

	if len(l.Custom) == 0 {
		return raw, nil
	}

	flat := make(map[string]interface{})
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, err
	}
	for k, v := range l.Custom {
		if _, taken := flat[k]; !taken {
			flat[k] = v
		}
	}
	return json.Marshal(flat)
}
