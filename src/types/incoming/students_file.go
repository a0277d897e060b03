package incoming

// AclFileJson mirrors acl.json.
type AclFileJson struct {
	Students []AclStudentJson `json:"students"`
}

type AclStudentJson struct {
	Email string `json:"email"`
}

// PayloadFileJson mirrors batch_verification_payload.json.
type PayloadFileJson struct {
	Students []PayloadStudentJson `json:"students"`
}

type PayloadStudentJson struct {
	Email      string `json:"email"`
	StudentDid string `json:"student_did"`
}
