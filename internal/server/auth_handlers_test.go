package server

import (
	"context"
	"net/http"
	"strconv"
	"testing"

	"github.com/mahmedraza1/Learn-LMS-sub000/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignup(t *testing.T) {
	s, app, _ := newTestServer(t, nil)

	tests := []struct {
		name           string
		body           fiber.Map
		expectedStatus int
	}{
		{
			name: "Success",
			body: fiber.Map{
				"username": "newstudent",
				"email":    "newstudent@example.com",
				"password": "SecurePass12!@",
				"batch":    "Batch A",
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Short Form Batch",
			body: fiber.Map{
				"username": "otherstudent",
				"email":    "otherstudent@example.com",
				"password": "SecurePass12!@",
				"batch":    "b",
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Missing Batch",
			body: fiber.Map{
				"username": "nobatch",
				"email":    "nobatch@example.com",
				"password": "SecurePass12!@",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Weak Password",
			body: fiber.Map{
				"username": "weakpass",
				"email":    "weakpass@example.com",
				"password": "short",
				"batch":    "Batch A",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Invalid Email",
			body: fiber.Map{
				"username": "bademail",
				"email":    "not-an-email",
				"password": "SecurePass12!@",
				"batch":    "Batch A",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Duplicate Email",
			body: fiber.Map{
				"username": "duplicate",
				"email":    "newstudent@example.com",
				"password": "SecurePass12!@",
				"batch":    "Batch A",
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doRequest(t, app, http.MethodPost, "/api/auth/signup", "", tt.body)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedStatus == http.StatusCreated {
				var body struct {
					Token string      `json:"token"`
					User  models.User `json:"user"`
				}
				decodeBody(t, resp, &body)
				assert.NotEmpty(t, body.Token)
				assert.Equal(t, models.RoleStudent, body.User.Role)
				assert.Equal(t, models.AdmissionPending, body.User.AdmissionStatus)
			}
		})
	}

	// new accounts are always students regardless of what was posted
	resp := doRequest(t, app, http.MethodPost, "/api/auth/signup", "", fiber.Map{
		"username": "sneaky",
		"email":    "sneaky@example.com",
		"password": "SecurePass12!@",
		"batch":    "Batch A",
		"role":     "admin",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	user, err := s.userRepo.GetByUsername(context.Background(), "sneaky")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, models.RoleStudent, user.Role)
}

func TestLogin(t *testing.T) {
	s, app, _ := newTestServer(t, nil)
	user, _ := createTestUser(t, s, models.RoleStudent)

	t.Run("Success", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
			"email":    user.Email,
			"password": testPassword,
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Token string      `json:"token"`
			User  models.User `json:"user"`
		}
		decodeBody(t, resp, &body)
		assert.NotEmpty(t, body.Token)
		assert.Equal(t, user.ID, body.User.ID)
	})

	t.Run("Wrong Password", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
			"email":    user.Email,
			"password": "WrongPass12!@",
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Unknown Email", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
			"email":    "nobody@example.com",
			"password": testPassword,
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestGeneratedTokenClaims(t *testing.T) {
	s, _, _ := newTestServer(t, nil)

	tokenString, err := s.generateToken(42, "claimcheck")
	require.NoError(t, err)

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		return []byte(s.config.JWTSecret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "42", claims["sub"])
	assert.Equal(t, "learnlms-api", claims["iss"])
	assert.Equal(t, "learnlms-client", claims["aud"])
	assert.NotEmpty(t, claims["jti"])
}

func TestAuthRequired_RejectsBadTokens(t *testing.T) {
	s, app, _ := newTestServer(t, nil)

	// wrong secret
	other := *s.config
	other.JWTSecret = "another-secret-another-secret-pad"
	forged := &Server{config: &other}
	badToken, err := forged.generateToken(1, "forged")
	require.NoError(t, err)

	resp := doRequest(t, app, http.MethodGet, "/api/users/me", badToken, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// wrong issuer
	claims := jwt.MapClaims{
		"sub": "1",
		"iss": "someone-else",
		"aud": tokenAudience,
	}
	wrongIss, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(s.config.JWTSecret))
	require.NoError(t, err)

	resp = doRequest(t, app, http.MethodGet, "/api/users/me", wrongIss, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestWSTicketFlow(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	s, app, _ := newTestServer(t, rdb)
	user, token := createTestUser(t, s, models.RoleStudent)

	resp := doRequest(t, app, http.MethodPost, "/api/ws/ticket", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Ticket    string `json:"ticket"`
		ExpiresIn int    `json:"expires_in"`
	}
	decodeBody(t, resp, &body)
	require.NotEmpty(t, body.Ticket)
	assert.Equal(t, 30, body.ExpiresIn)

	// the ticket maps back to the issuing user
	stored, err := rdb.Get(context.Background(), "ws_ticket:"+body.Ticket).Result()
	require.NoError(t, err)
	assert.Equal(t, strconv.FormatUint(uint64(user.ID), 10), stored)

	// a ticket authenticates exactly once on a ws path; the second attempt
	// must fail because the ticket is consumed on first use
	resp = doRequest(t, app, http.MethodPost, "/api/ws/ticket?ticket="+body.Ticket, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	exists, err := rdb.Exists(context.Background(), "ws_ticket:"+body.Ticket).Result()
	require.NoError(t, err)
	assert.Zero(t, exists)
}

func TestWSTicket_UnavailableWithoutRedis(t *testing.T) {
	s, app, _ := newTestServer(t, nil)
	_, token := createTestUser(t, s, models.RoleStudent)

	resp := doRequest(t, app, http.MethodPost, "/api/ws/ticket", token, nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestAuthRequired_InvalidTicketOnWSPath(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	_, app, _ := newTestServer(t, rdb)

	resp := doRequest(t, app, http.MethodPost, "/api/ws/ticket?ticket=bogus", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
