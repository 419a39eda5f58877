package shared

// Asynq task types
const (
	TypeSendEmail          = "email:send"
	TypeCleanupOrphanCover = "book:cleanup_orphan_covers"
)

// Roles carried in the JWT and stored on users.role
const (
	RoleReader    = "reader"
	RoleLibrarian = "librarian"
	RoleAdmin     = "admin"
)

// SendEmailPayload is the body of a TypeSendEmail task.
type SendEmailPayload struct {
	To        string `json:"to"`
	Subject   string `json:"subject"`
	PlainBody string `json:"plain_body"`
	HTMLBody  string `json:"html_body"`
}
