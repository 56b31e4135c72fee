package models

// Record is one channel's session: token plus profile, or nothing.
type Record struct {
	Role    Role
	Token   string
	Profile *Profile

	// LastError holds the message of the last failed login on this channel.
	// It is display state only and is never persisted.
	LastError string
}

// EmptyRecord is the unauthenticated record for role.
func EmptyRecord(role Role) Record {
	return Record{Role: role}
}

// IsAuthenticated is derived from the token so the two can never disagree.
func (r Record) IsAuthenticated() bool {
	return r.Token != ""
}
