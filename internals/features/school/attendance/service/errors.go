package service

import helper "sekolahku_backend/internals/helpers"

// Kode error yang dikirim ke klien (field error_code)
const (
	CodeInvalidSession   = "INVALID_SESSION"
	CodeDuplicateCheckIn = "DUPLICATE_CHECK_IN"
	CodeLeaveConflict    = "LEAVE_CONFLICT"
	CodeOutOfRange       = "OUT_OF_RANGE"
	CodeNotInClass       = "NOT_IN_CLASS"
	CodeDuplicateAbsensi = "DUPLICATE_ABSENSI"
	CodeAlreadyReviewed  = "PENGAJUAN_ALREADY_REVIEWED"
	CodeNotWaliKelas     = "NOT_WALI_KELAS"
)

// selalu instance baru: AppError.With memodifikasi Data

func errJadwalNotFound() *helper.AppError {
	return helper.NewNotFound("JADWAL_NOT_FOUND", "Jadwal tidak ditemukan")
}

func errSessionNotFound() *helper.AppError {
	return helper.NewNotFound("SESSION_NOT_FOUND", "Sesi tidak ditemukan atau sudah berakhir")
}

func errInvalidSession() *helper.AppError {
	return helper.NewValidation(CodeInvalidSession, "Kode sesi tidak valid atau sudah kedaluwarsa")
}

func errNotInClass() *helper.AppError {
	return helper.NewForbidden(CodeNotInClass, "Anda tidak terdaftar di kelas untuk sesi ini")
}

func errDuplicateCheckIn() *helper.AppError {
	return helper.NewConflict(CodeDuplicateCheckIn, "Anda sudah melakukan presensi untuk jadwal ini hari ini")
}

func errLeaveConflict() *helper.AppError {
	return helper.NewConflict(CodeLeaveConflict, "Anda sudah tercatat izin/sakit hari ini")
}

func errPengajuanNotFound() *helper.AppError {
	return helper.NewNotFound("PENGAJUAN_NOT_FOUND", "Pengajuan tidak ditemukan")
}

func errUserNotFound() *helper.AppError {
	return helper.NewNotFound("USER_NOT_FOUND", "User tidak ditemukan")
}
