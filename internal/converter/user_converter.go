package converter

import (
	"preventive-care-tracker/internal/delivery/dto"
	"preventive-care-tracker/internal/domain/entity"
)

// UserToResponse converts a User entity (with optional profile) to UserResponse DTO
func UserToResponse(user *entity.User, profile *entity.UserProfile) *dto.UserResponse {
	if user == nil {
		return nil
	}

	response := &dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}

	if user.Role.ID != 0 {
		response.Role = user.Role.RoleName
	}

	if profile != nil {
		response.DateOfBirth = profile.DateOfBirth.Format(dateLayout)
		response.Gender = profile.Gender
	}

	return response
}
