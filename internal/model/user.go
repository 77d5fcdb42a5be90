package model

import "time"

// User represents an application user record as stored in the
// `users` table. Each field corresponds to a column. The password
// is never stored in the clear; only its bcrypt hash. RoleID
// references the roles table (1=Admin, 2=Employee, 3=Client);
// conversion to a typed role happens in the auth package so that
// nothing outside the storage edge compares raw integers.
//
// Fields:
//  ID           – primary key identifier of the user.
//  LastName     – family name.
//  FirstName    – given name.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  RoleID       – foreign key into the roles table (tinyint).
//  RegisteredAt – timestamp of account creation.
type User struct {
	ID           uint64    // users.id
	LastName     string    // users.last_name
	FirstName    string    // users.first_name
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	RoleID       uint8     // users.role_id (references roles.id)
	RegisteredAt time.Time // users.registered_at
}

// RoleRecord represents a row in the `roles` table, mapping a small
// integer ID to a role name.
type RoleRecord struct {
	ID   uint8  // roles.id
	Name string // roles.name
}

// RefreshToken models an entry in the `refresh_tokens` table. Each
// refresh token belongs to a user and carries metadata for expiry
// and revocation. The plain token is not stored; only its SHA-256
// hash.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
