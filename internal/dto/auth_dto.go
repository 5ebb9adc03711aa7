package dto

import "github.com/google/uuid"

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}

// AdminIdentity is the JSON carried in the admin-auth header.
type AdminIdentity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type CreateProfileRequest struct {
	Email         string `json:"email" validate:"required,email"`
	FullName      string `json:"full_name" validate:"required,notblank"`
	Gender        string `json:"gender" validate:"omitempty,oneof=male female"`
	DateOfBirth   string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	City          string `json:"city"`
	Profession    string `json:"profession"`
	MaritalStatus string `json:"marital_status"`
	Education     string `json:"education"`
	Religion      string `json:"religion"`
	Phone         string `json:"phone"`
	About         string `json:"about"`
	IsPublished   bool   `json:"is_published"`
}

type CreateProfileResponse struct {
	UserID    uuid.UUID `json:"user_id"`
	ProfileID uuid.UUID `json:"profile_id"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
}

type UpdateProfileRequest struct {
	FullName      *string `json:"full_name" validate:"omitempty,notblank,max=150"`
	Gender        *string `json:"gender" validate:"omitempty,oneof=male female"`
	DateOfBirth   *string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	City          *string `json:"city" validate:"omitempty,max=100"`
	Profession    *string `json:"profession" validate:"omitempty,max=100"`
	MaritalStatus *string `json:"marital_status" validate:"omitempty,max=30"`
	Education     *string `json:"education" validate:"omitempty,max=150"`
	Religion      *string `json:"religion" validate:"omitempty,max=50"`
	Phone         *string `json:"phone" validate:"omitempty,max=30"`
	About         *string `json:"about" validate:"omitempty,max=2000"`
	IsPublished   *bool   `json:"is_published"`
}

// DeleteUserResult tallies each cascade step. Steps run independently.
type DeleteUserResult struct {
	UserID    uuid.UUID         `json:"userId"`
	Deleted   map[string]bool   `json:"deleted"`
	Errors    map[string]string `json:"errors,omitempty"`
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
}
