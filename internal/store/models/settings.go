package models

// Field is one entry in an organization's custom field schema.
type Field struct {
	Label string `dynamodbav:"label" json:"label"`
	Type  string `dynamodbav:"type" json:"type"`
}

// FieldSchema is the single per-org settings record. Saving replaces the
// whole field list, it is never merged.
type FieldSchema struct {
	PK     string  `dynamodbav:"PK" json:"-"`
	SK     string  `dynamodbav:"SK" json:"-"`
	Fields []Field `dynamodbav:"fields" json:"fields"`
}
