package entity

// SessionGrant is the transient value returned from a successful login.
// It is never persisted; the embedded account is a public view with the
// password digest stripped.
type SessionGrant struct {
	Token   string   // Signed bearer token, already prefixed with the scheme label.
	Account *Account // Public projection of the authenticated account.
}
