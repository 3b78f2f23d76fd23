package userrole

import "time"

// UserRole represents one user holding one role, timestamped at
// assignment time. Duplicate (user, role) pairs are permitted.
type UserRole struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	RoleID     int64     `json:"role_id"`
	AssignedAt time.Time `json:"assigned_at"`
}

// UserRoleDetail is the denormalized joined view of an assignment,
// carrying the human-readable user and role names.
type UserRoleDetail struct {
	AssignmentID int64     `json:"assignment_id"`
	UserID       int64     `json:"user_id"`
	UserName     string    `json:"user_name"`
	RoleID       int64     `json:"role_id"`
	RoleName     string    `json:"role_name"`
	AssignedAt   time.Time `json:"assigned_at"`
}
