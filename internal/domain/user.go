package domain

// User is an account created by signup. Email is the identity key.
//
// Password holds a bcrypt hash unless password hashing was disabled in config.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
