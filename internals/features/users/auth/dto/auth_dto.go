// file: internals/features/users/auth/dto/auth_dto.go
package dto

type LoginRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Password  string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

type UpdateMeRequest struct {
	Phone *string `json:"phone"`
}
