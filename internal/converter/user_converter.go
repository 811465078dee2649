package converter

import (
	"hospitron/internal/delivery/dto"
	"hospitron/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	return &dto.UserResponse{
		ID:      user.ID,
		Email:   user.Email,
		Name:    user.Name,
		Role:    string(user.Role),
		Initial: user.Initial(),
	}
}
