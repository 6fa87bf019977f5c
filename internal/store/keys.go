package store

import "strings"

// Key prefixes for the single-table layout. Every tenant-owned record lives
// under its organization partition; the email lock is the only global record.
const (
	PrefixOrg       = "ORG#"
	PrefixUser      = "USER#"
	PrefixLead      = "LEAD#"
	PrefixEmailLock = "EMAIL#"

	SKMetadata       = "METADATA"
	SKSettingsFields = "SETTINGS#FIELDS"
)

// Key is a composite partition/sort key addressing one record.
type Key struct {
	PK string `dynamodbav:"PK"`
	SK string `dynamodbav:"SK"`
}

// NormalizeEmail lowercases and trims an email so that key derivation is
// stable across cosmetic variants of the same address. Idempotent.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// OrgKey addresses an organization's metadata record.
func OrgKey(orgID string) Key {
	return Key{PK: PrefixOrg + orgID, SK: SKMetadata}
}

// UserKey addresses a user within an organization partition.
func UserKey(orgID, email string) Key {
	return Key{PK: PrefixOrg + orgID, SK: PrefixUser + NormalizeEmail(email)}
}

// LeadKey addresses a lead within an organization partition.
func LeadKey(orgID, leadID string) Key {
	return Key{PK: PrefixOrg + orgID, SK: PrefixLead + leadID}
}

// EmailLockKey addresses the global uniqueness lock for an email address.
func EmailLockKey(email string) Key {
	return Key{PK: PrefixEmailLock + NormalizeEmail(email), SK: SKMetadata}
}

// SettingsKey addresses an organization's custom field schema record.
func SettingsKey(orgID string) Key {
	return Key{PK: PrefixOrg + orgID, SK: SKSettingsFields}
}

// OrgPartition returns the partition key shared by all records of an org.
func OrgPartition(orgID string) string {
	return PrefixOrg + orgID
}
