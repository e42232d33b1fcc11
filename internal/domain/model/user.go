package model

// User is a row from the externally managed cpanel_users table.
// PasswordHash is a bcrypt hash ($2y$/$2a$/$2b$ prefixes are all accepted).
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         Role
}

// Principal is the identity established by a successful credential check.
type Principal struct {
	UserID   int64
	Username string
	Role     Role
}
