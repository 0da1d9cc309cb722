package domain

import "time"

// UserRole tags an account as a client or a support agent.
type UserRole string

const (
	UserRoleClient  UserRole = "Client"
	UserRoleSupport UserRole = "Support"
)

// User holds the account fields shared by clients and support agents.
// Accounts are owned by the user-management service; this module only reads them.
type User struct {
	ID        string
	Name      string
	Email     string
	Role      UserRole
	CreatedAt time.Time
}

// Client is an end-user who opens tickets.
type Client struct {
	User
}

// Support is an agent who answers tickets.
type Support struct {
	User
}
