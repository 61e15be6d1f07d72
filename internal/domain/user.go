package domain

// User is the identity the service resolved for the current session.
type User struct {
	ID         int
	Username   string
	BasePath   string
	Role       int
	Disabled   bool
	Permission int
}
