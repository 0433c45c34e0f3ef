package dto

import "time"

type LoginRequest struct {
	Email    string `json:"email" validate:"notblank,email"`
	Password string `json:"password" validate:"notblank"`
}

type UserData struct {
	ID     string `json:"id"`
	Nom    string `json:"nom"`
	Prenom string `json:"prenom,omitempty"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	Type      string    `json:"type"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      UserData  `json:"user"`
}

type MeResponse struct {
	User      UserData  `json:"user"`
	ExpiresAt time.Time `json:"expiresAt"`
}
