package model

const DefaultAvatar = "/default-avatar.png"

// User is the public view of a users row. The password hash never leaves
// the repository layer through this type.
type User struct {
	Username     string `json:"username" db:"username"`
	FirstName    string `json:"firstName" db:"first_name"`
	LastName     string `json:"lastName" db:"last_name"`
	Email        string `json:"email" db:"email"`
	Avatar       string `json:"avatar" db:"avatar"`
	NumPomodoros int    `json:"numPomodoros" db:"num_pomodoros"`
	IsAdmin      bool   `json:"isAdmin" db:"is_admin"`
}

// UserCredentials is a users row including the password hash.
type UserCredentials struct {
	User
	Password string `db:"password"`
}

type NewUser struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Email     string
	Avatar    string
	IsAdmin   bool
}

// UserPatch holds the optional fields of a user update. Nil means unchanged.
type UserPatch struct {
	Password  *string
	FirstName *string
	LastName  *string
	Email     *string
	Avatar    *string
	IsAdmin   *bool
}
