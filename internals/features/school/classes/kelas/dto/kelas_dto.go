package dto

import (
	"strings"

	"github.com/google/uuid"

	"sekolahku_backend/internals/features/school/classes/kelas/model"
)

type CreateKelasRequest struct {
	Nama        string     `json:"nama" validate:"required,min=1,max=80"`
	Tingkat     int        `json:"tingkat" validate:"required,min=1,max=12"`
	WaliKelasID *uuid.UUID `json:"waliKelasId" validate:"omitempty"`
	TahunAjaran string     `json:"tahunAjaran" validate:"required,len=9"` // "2025/2026"
}

func (r CreateKelasRequest) ToModel() *model.KelasModel {
	return &model.KelasModel{
		Nama:        strings.TrimSpace(r.Nama),
		Tingkat:     r.Tingkat,
		WaliKelasID: r.WaliKelasID,
		TahunAjaran: strings.TrimSpace(r.TahunAjaran),
	}
}

type ListKelasQuery struct {
	TahunAjaran string `query:"tahunAjaran"`
	Tingkat     int    `query:"tingkat"`
}
