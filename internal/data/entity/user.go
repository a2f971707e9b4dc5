package entity

type UserRole string

const (
	RoleClient  UserRole = "client"
	RoleArtisan UserRole = "artisan"
)

func (r UserRole) Valid() bool {
	return r == RoleClient || r == RoleArtisan
}

// User is an account. Role never changes after creation.
type User struct {
	Base
	FullName     string   `db:"full_name"`
	Email        string   `db:"email"`
	PhoneNumber  string   `db:"phone_number"`
	PasswordHash string   `db:"password_hash"`
	Role         UserRole `db:"role"`
	Location     string   `db:"location"`
}
