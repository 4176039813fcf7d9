package entity

import "time"

// User roles
const (
	RoleUser      = "user"
	RoleModerator = "mod"
	RoleAdmin     = "admin"
)

// User is an authenticated principal. Accounts reference users through
// holder_type/holder_id; the ledger trusts the verified user id supplied
// by the authentication layer.
type User struct {
	ID              uint64
	UUID            string
	Username        string
	Email           string
	PasswordHash    string
	DiscordID       string
	AvatarURL       string
	Role            string
	IsBanned        bool
	IsVerified      bool
	LastSalaryClaim *time.Time
	CreatedAt       time.Time
}

// IsPrivileged reports whether the user may call administrative operations.
func (u *User) IsPrivileged() bool {
	return u.Role == RoleAdmin || u.Role == RoleModerator
}

// CanClaimSalary reports whether the cooldown window has elapsed.
func (u *User) CanClaimSalary(now time.Time, cooldown time.Duration) bool {
	if u.LastSalaryClaim == nil {
		return true
	}
	return !now.Before(u.LastSalaryClaim.Add(cooldown))
}

// NextSalaryClaim returns the instant at which the next claim is allowed.
func (u *User) NextSalaryClaim(cooldown time.Duration) time.Time {
	if u.LastSalaryClaim == nil {
		return time.Time{}
	}
	return u.LastSalaryClaim.Add(cooldown)
}
