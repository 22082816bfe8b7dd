package accounts

import "time"

// Role identifies which principal class an account belongs to. The two
// classes are stored in disjoint tables and signed with distinct secrets.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Table returns the Postgres table backing this role's accounts.
func (r Role) Table() string {
	if r == RoleAdmin {
		return "admin_accounts"
	}
	return "user_accounts"
}

// Account represents a registered principal.
type Account struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile is the caller-facing view of an account. The password hash is
// deliberately absent.
type Profile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	CreatedAt time.Time `json:"createdAt"`
}

// Profile builds the sanitized view of the account.
func (a *Account) Profile() Profile {
	return Profile{
		ID:        a.ID,
		Email:     a.Email,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		CreatedAt: a.CreatedAt,
	}
}
