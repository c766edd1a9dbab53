package models

type User struct {
	ID           int    `json:"id" db:"id"`
	Username     string `json:"username" db:"username"`
	Fullname     string `json:"fullname" db:"fullname"`
	PasswordHash string `json:"-" db:"password_hash"`
	Role         string `json:"role" db:"role"`
}

type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Fullname string `json:"fullname"`
	Role     string `json:"role" binding:"required"`
}

type UpdateUserRequest struct {
	Password *string `json:"password"`
	Fullname *string `json:"fullname"`
	Role     *string `json:"role"`
}

// UserChanges carries only the columns that should actually change.
type UserChanges struct {
	PasswordHash *string
	Fullname     *string
	Role         *string
}
