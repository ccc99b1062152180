// file: internals/features/users/users/dto/user_dto.go
package dto

import (
	"github.com/google/uuid"

	userModel "shkola_backend/internals/features/users/users/model"
)

// TeacherResponse is the lightweight shape used by directory pickers.
type TeacherResponse struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
}

func FromTeacherModel(m userModel.UserModel) TeacherResponse {
	return TeacherResponse{
		ID:        m.UserID,
		FirstName: m.UserFirstName,
		LastName:  m.UserLastName,
	}
}

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Roles     []string  `json:"roles"`

	MustChangePassword bool `json:"must_change_password"`
}

func FromUserModel(m userModel.UserModel) UserResponse {
	return UserResponse{
		ID:                 m.UserID,
		Username:           m.UserUsername,
		FirstName:          m.UserFirstName,
		LastName:           m.UserLastName,
		Email:              m.UserEmail,
		Phone:              m.UserPhone,
		Roles:              m.Roles(),
		MustChangePassword: m.UserMustChangePassword,
	}
}
