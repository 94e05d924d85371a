package model

type AccessToken struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type LoginRequest struct {
	Name string `json:"name"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

type RegisterRequest struct {
	Name string `json:"name"`

	// InviteCode optionally credits the referring user.
	InviteCode string `json:"invite_code"`
}

type RegisterResponse struct {
	ID         string `json:"id"`
	InviteCode string `json:"invite_code"`
}
