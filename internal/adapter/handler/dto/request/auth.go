package request

// RegisterRequest carries the sign-up form. Presence and value checks run in
// the auth service so every endpoint reports the same messages.
type RegisterRequest struct {
	Name        string `json:"name" example:"Ada Lovelace"`
	Email       string `json:"email" example:"ada@example.com"`
	Password    string `json:"password" example:"S3cure!pass"`
	PhoneNumber string `json:"phoneNumber" example:"5551234567"`
	Gender      string `json:"gender" enums:"Male,Female,Other" example:"Female"`
	Date        string `json:"date" example:"2024-01-15"`
}

type SignInRequest struct {
	Email    string `json:"email" example:"ada@example.com"`
	Password string `json:"password" example:"S3cure!pass"`
}
