package user

// User represents a user in the system
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Age   *int32 `json:"age"`
}

// CreateUserParams contains parameters for creating a new user
type CreateUserParams struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Age   *int32 `json:"age"`
}

// UpdateUserParams contains parameters for updating a user.
// All mutable fields are overwritten unconditionally.
type UpdateUserParams struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Age   *int32 `json:"age"`
}
