package model

type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type GetMeRequest struct{}

type GetMeResponse User
