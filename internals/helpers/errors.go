package helper

import (
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
)

// Kind adalah taksonomi error domain → HTTP status.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindForbidden
	KindNotFound
	KindConflict
	KindServer
)

func (k Kind) Status() int {
	switch k {
	case KindValidation:
		return fiber.StatusBadRequest
	case KindForbidden:
		return fiber.StatusForbidden
	case KindNotFound:
		return fiber.StatusNotFound
	case KindConflict:
		// Conflict dilaporkan sebagai 400 (bukan 409) supaya selaras dengan klien lama
		return fiber.StatusBadRequest
	case KindServer:
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusInternalServerError
	}
}

// AppError dipakai service → controller. Code opsional (mis. "OUT_OF_RANGE").
type AppError struct {
	Kind    Kind
	Code    string
	Message string
	Data    map[string]any
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// With menambah payload (mis. jarak terukur) ke respons error.
func (e *AppError) With(key string, val any) *AppError {
	if e.Data == nil {
		e.Data = map[string]any{}
	}
	e.Data[key] = val
	return e
}

func NewValidation(code, msg string) *AppError {
	return &AppError{Kind: KindValidation, Code: code, Message: msg}
}

func NewForbidden(code, msg string) *AppError {
	return &AppError{Kind: KindForbidden, Code: code, Message: msg}
}

func NewNotFound(code, msg string) *AppError {
	return &AppError{Kind: KindNotFound, Code: code, Message: msg}
}

func NewConflict(code, msg string) *AppError {
	return &AppError{Kind: KindConflict, Code: code, Message: msg}
}

// NewServer membungkus error tak terduga; pesan asli hanya masuk log.
func NewServer(msg string, err error) *AppError {
	return &AppError{Kind: KindServer, Code: "INTERNAL_ERROR", Message: msg, Err: err}
}

// AsAppError mengambil *AppError dari chain error (nil kalau bukan).
func AsAppError(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// IsKind cek cepat untuk test & controller.
func IsKind(err error, k Kind) bool {
	ae := AsAppError(err)
	return ae != nil && ae.Kind == k
}

// HasCode cek kode spesifik (mis. "DUPLICATE_CHECK_IN").
func HasCode(err error, code string) bool {
	ae := AsAppError(err)
	return ae != nil && ae.Code == code
}

// JsonAppError memetakan error apa pun ke bentuk ErrorResponse standar.
// ServerError dicatat lengkap, ke klien hanya pesan generik.
func JsonAppError(c *fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}
	if ae := AsAppError(err); ae != nil {
		status := ae.Kind.Status()
		msg := ae.Message
		if ae.Kind == KindServer {
			log.Printf("[ERROR] reqid=%v %s %s: %v", c.Locals("reqid"), c.Method(), c.OriginalURL(), ae)
			msg = "Terjadi kesalahan pada server"
		}
		code := ae.Code
		if code == "" {
			code = statusToErrorCode(status)
		}
		resp := ErrorResponse{
			Success:   false,
			Message:   msg,
			ErrorCode: code,
		}
		if len(ae.Data) > 0 {
			resp.Data = ae.Data
		}
		return c.Status(status).JSON(resp)
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}

	log.Printf("[ERROR] reqid=%v %s %s: %v", c.Locals("reqid"), c.Method(), c.OriginalURL(), err)
	return JsonError(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
}

// FiberErrorHandler dipasang di fiber.Config.ErrorHandler.
func FiberErrorHandler(c *fiber.Ctx, err error) error {
	return JsonAppError(c, err)
}
