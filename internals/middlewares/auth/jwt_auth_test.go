package auth

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	helperAuth "sekolahku_backend/internals/helpers/auth"
)

const testSecret = "rahasia-test"

func sign(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return raw
}

func newJWTApp(opts AuthJWTOpts) *fiber.App {
	if opts.Secret == "" {
		opts.Secret = testSecret
	}
	app := fiber.New()
	app.Get("/me", AuthJWT(opts), func(c *fiber.Ctx) error {
		actor, err := helperAuth.GetActor(c)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"id": actor.UserID.String(), "role": string(actor.Role)})
	})
	return app
}

func get(t *testing.T, app *fiber.App, header, cookie string) int {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodGet, "/me", nil)
	if header != "" {
		req.Header.Set(fiber.HeaderAuthorization, header)
	}
	if cookie != "" {
		req.Header.Set(fiber.HeaderCookie, "access_token="+cookie)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	return resp.StatusCode
}

func TestAuthJWT_UserIDClaimFallbacks(t *testing.T) {
	app := newJWTApp(AuthJWTOpts{})
	exp := time.Now().Add(time.Hour).Unix()

	for _, key := range []string{"id", "sub", "user_id"} {
		t.Run(key, func(t *testing.T) {
			tok := sign(t, jwt.MapClaims{key: uuid.NewString(), "role": "siswa", "exp": exp})
			assert.Equal(t, fiber.StatusOK, get(t, app, "Bearer "+tok, ""))
		})
	}
}

func TestAuthJWT_Rejections(t *testing.T) {
	app := newJWTApp(AuthJWTOpts{})
	uid := uuid.NewString()
	exp := time.Now().Add(time.Hour).Unix()

	noneTok, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"id": uid, "role": "guru", "exp": exp}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	otherSecret, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"id": uid, "role": "guru", "exp": exp}).
		SignedString([]byte("secret-lain"))
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"tanpa token", "", fiber.StatusUnauthorized},
		{"bukan bearer", "Basic abc", fiber.StatusUnauthorized},
		{"alg none", "Bearer " + noneTok, fiber.StatusUnauthorized},
		{"secret beda", "Bearer " + otherSecret, fiber.StatusUnauthorized},
		{"kedaluwarsa", "Bearer " + sign(t, jwt.MapClaims{"id": uid, "role": "guru", "exp": time.Now().Add(-time.Minute).Unix()}), fiber.StatusUnauthorized},
		{"id bukan uuid", "Bearer " + sign(t, jwt.MapClaims{"id": "123", "role": "guru", "exp": exp}), fiber.StatusUnauthorized},
		{"role tidak dikenal", "Bearer " + sign(t, jwt.MapClaims{"id": uid, "role": "dkm", "exp": exp}), fiber.StatusForbidden},
		{"tanpa role", "Bearer " + sign(t, jwt.MapClaims{"id": uid, "exp": exp}), fiber.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, get(t, app, tc.header, ""))
		})
	}
}

func TestAuthJWT_CookieFallback(t *testing.T) {
	tok := sign(t, jwt.MapClaims{"id": uuid.NewString(), "role": "guru", "exp": time.Now().Add(time.Hour).Unix()})

	assert.Equal(t, fiber.StatusUnauthorized, get(t, newJWTApp(AuthJWTOpts{}), "", tok))
	assert.Equal(t, fiber.StatusOK, get(t, newJWTApp(AuthJWTOpts{AllowCookieFallback: true}), "", tok))
}

func TestAuthJWT_UserActiveCheck(t *testing.T) {
	aktif, nonaktif, hilang := uuid.New(), uuid.New(), uuid.New()
	app := newJWTApp(AuthJWTOpts{
		UserActive: func(_ context.Context, id uuid.UUID) (bool, error) {
			switch id {
			case aktif:
				return true, nil
			case nonaktif:
				return false, nil
			default:
				return false, errors.New("record not found")
			}
		},
	})
	exp := time.Now().Add(time.Hour).Unix()
	bearer := func(id uuid.UUID) string {
		return "Bearer " + sign(t, jwt.MapClaims{"id": id.String(), "role": "siswa", "exp": exp})
	}

	assert.Equal(t, fiber.StatusOK, get(t, app, bearer(aktif), ""))
	assert.Equal(t, fiber.StatusForbidden, get(t, app, bearer(nonaktif), ""))
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, bearer(hilang), ""))
}

func TestAuthJWT_EmptySecretPanics(t *testing.T) {
	assert.Panics(t, func() { AuthJWT(AuthJWTOpts{Secret: "  "}) })
}
