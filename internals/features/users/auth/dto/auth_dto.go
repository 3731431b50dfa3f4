// file: internals/features/users/auth/dto/auth_dto.go
package dto

type RegisterRequest struct {
	UserName     string `json:"user_name"     validate:"required,max=60"`
	UserEmail    string `json:"user_email"    validate:"required,email,max=120"`
	UserPassword string `json:"user_password" validate:"required,min=8"`
}

type LoginRequest struct {
	UserEmail    string `json:"user_email"    validate:"required,email"`
	UserPassword string `json:"user_password" validate:"required"`
}

type AuthResponse struct {
	UserID      string `json:"user_id"`
	UserName    string `json:"user_name"`
	UserEmail   string `json:"user_email"`
	AccessToken string `json:"access_token"`
}
