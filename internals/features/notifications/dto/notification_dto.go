package dto

import "strings"

// POST /device-tokens
type RegisterDeviceTokenRequest struct {
	Token    string `json:"token" validate:"required,min=10,max=4096"`
	Platform string `json:"platform" validate:"omitempty,oneof=android ios web"`
}

func (r *RegisterDeviceTokenRequest) Normalize() {
	r.Token = strings.TrimSpace(r.Token)
	r.Platform = strings.ToLower(strings.TrimSpace(r.Platform))
	if r.Platform == "" {
		r.Platform = "android"
	}
}

// DELETE /device-tokens
type UnregisterDeviceTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

type UnreadCountResponse struct {
	Unread int64 `json:"unread"`
}

type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}
