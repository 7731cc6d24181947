package users

import "time"

// User is a registered account. The password hash never leaves the package
// through JSON.
type User struct {
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"`
	Birthday     *time.Time `json:"birthday"`
	CreateTime   time.Time  `json:"create_time"`
	LastLogin    *time.Time `json:"last_login"`
}

// Patch lists the user fields a partial update may change. Nil fields leave
// the stored value untouched.
type Patch struct {
	Password *string
	Birthday *time.Time
}
