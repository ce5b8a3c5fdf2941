package command

import "notes-service/internal/application/common"

type RegisterUserCommand struct {
	Username string
	Email    string
	Password string
}

type RegisterUserCommandResult struct {
	Result *common.UserResult
}

type LoginUserCommand struct {
	Username string
	Password string
}

type LoginUserCommandResult struct {
	AccessToken string `json:"access_token"`
}

type LogoutUserCommand struct {
	Token string
}

type UpdateProfileCommand struct {
	UserId         uint
	FullName       string
	ProfilePicture *string
	Bio            *string
}
