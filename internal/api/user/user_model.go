package user

import (
	"time"

	"github.com/FACorreiaa/go-user-directory/internal/types"
)

// birthdayLayout is the wire format for birthdays.
const birthdayLayout = time.DateOnly

// CreateUserRequest is the body of POST /users.
type CreateUserRequest struct {
	Login    string `json:"login" validate:"required" example:"ivan"`
	Password string `json:"password" validate:"required" example:"secret1"`
	Name     string `json:"name" validate:"required" example:"Иван"`
	Gender   *int   `json:"gender" validate:"required" example:"1"` // 0 unspecified, 1 male, 2 female
	Birthday string `json:"birthday,omitempty" validate:"omitempty,datetime=2006-01-02" example:"1990-05-17"`
	IsAdmin  bool   `json:"is_admin" example:"false"`
}

// Params converts the validated request into directory params.
func (r CreateUserRequest) Params() (types.CreateUserParams, error) {
	p := types.CreateUserParams{
		Login:    r.Login,
		Password: r.Password,
		Name:     r.Name,
		IsAdmin:  r.IsAdmin,
	}
	if r.Gender != nil {
		p.Gender = types.Gender(*r.Gender)
	}
	if r.Birthday != "" {
		b, err := parseBirthday(r.Birthday)
		if err != nil {
			return types.CreateUserParams{}, err
		}
		p.Birthday = &b
	}
	return p, nil
}

type UpdateNameRequest struct {
	Name string `json:"name" validate:"required" example:"Ivan"`
}

type UpdatePasswordRequest struct {
	Password string `json:"password" validate:"required" example:"newSecret2"`
}

type UpdateLoginRequest struct {
	Login string `json:"login" validate:"required" example:"ivan2"`
}

type UpdateGenderRequest struct {
	Gender *int `json:"gender" validate:"required" example:"2"`
}

type UpdateBirthdayRequest struct {
	Birthday string `json:"birthday" validate:"required,datetime=2006-01-02" example:"1990-05-17"`
}

// OwnUserRequest re-confirms the caller's credentials before returning their record.
type OwnUserRequest struct {
	Login    string `json:"login" validate:"required" example:"ivan"`
	Password string `json:"password" validate:"required" example:"secret1"`
}

func parseBirthday(s string) (time.Time, error) {
	b, err := time.Parse(birthdayLayout, s)
	if err != nil {
		return time.Time{}, &types.ValidationError{Field: "birthday", Reason: "must be a date in format 2006-01-02"}
	}
	return b, nil
}
