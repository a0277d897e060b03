package domain

// AclEntry is the access-control row loaded alongside a payload record. Only
// Email is used as the shared secret; the rest is carried for reporting.
type AclEntry struct {
	Email string
}

// Record is one input to a batch run: the shared secret and the subject the
// resulting proof is bound to.
type Record struct {
	Secret    string
	SubjectID string
	Acl       AclEntry
}
