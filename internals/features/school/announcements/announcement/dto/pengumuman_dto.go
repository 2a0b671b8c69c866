package dto

import (
	"strings"

	"github.com/google/uuid"
)

// POST /api/u/pengumuman
type CreatePengumumanRequest struct {
	Judul       string     `json:"judul" validate:"required,min=3,max=200"`
	Isi         string     `json:"isi" validate:"required,min=3"`
	KelasID     *uuid.UUID `json:"kelasId" validate:"omitempty"` // kosong = umum (hanya admin)
	TargetRoles []string   `json:"targetRoles" validate:"omitempty,dive,oneof=guru siswa super_admin"`
}

func (r *CreatePengumumanRequest) Normalize() {
	r.Judul = strings.TrimSpace(r.Judul)
	r.Isi = strings.TrimSpace(r.Isi)
	for i := range r.TargetRoles {
		r.TargetRoles[i] = strings.ToLower(strings.TrimSpace(r.TargetRoles[i]))
	}
}
