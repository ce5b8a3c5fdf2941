package mapper

import (
	"notes-service/internal/application/common"
	"notes-service/internal/domain/entities"
)

func NewUserResultFromEntity(user *entities.User) *common.UserResult {
	return &common.UserResult{
		Id:        user.Id,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

func NewUserSummaryFromEntity(user *entities.User) *common.UserSummary {
	if user == nil {
		return nil
	}
	return &common.UserSummary{
		Id:       user.Id,
		Username: user.Username,
		Email:    user.Email,
	}
}

func NewProfileResultFromEntity(user *entities.User) *common.ProfileResult {
	return &common.ProfileResult{
		Username:       user.Username,
		Email:          user.Email,
		FullName:       user.FullName,
		ProfilePicture: user.ProfilePicture,
		Bio:            user.Bio,
	}
}
