package integration_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"geticard_backend/test/helpers"
)

func TestAuthFlow(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)

	registerBody := map[string]interface{}{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "super_password123",
	}
	regRes, regBodyStr := ts.SendRequest(t, "POST", "/register", "", registerBody)
	assert.Equal(t, http.StatusCreated, regRes.StatusCode)
	assert.Contains(t, regBodyStr, "User created successfully")

	token, cardID := helpers.LoginUser(t, ts, "alice@example.com", "super_password123")
	assert.NotEmpty(t, token)
	assert.Nil(t, cardID, "A fresh account has no card")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)
	helpers.RegisterUser(t, ts, "Alice", "alice@example.com", "super_password123")

	registerBody := map[string]interface{}{
		"name":     "Impostor",
		"email":    "alice@example.com",
		"password": "another_password",
	}
	res, bodyStr := ts.SendRequest(t, "POST", "/register", "", registerBody)
	assert.Equal(t, http.StatusConflict, res.StatusCode)
	assert.Contains(t, bodyStr, "already exists")
}

func TestRegister_InvalidPayload(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)

	cases := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing email", map[string]interface{}{"name": "Alice", "password": "super_password123"}},
		{"malformed email", map[string]interface{}{"name": "Alice", "email": "not-an-email", "password": "super_password123"}},
		{"missing password", map[string]interface{}{"name": "Alice", "email": "alice@example.com"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, _ := ts.SendRequest(t, "POST", "/register", "", tc.body)
			assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		})
	}
}

// TestRegister_ShortPassword checks that no length policy is imposed on
// passwords; presence is the only requirement.
func TestRegister_ShortPassword(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)

	registerBody := map[string]interface{}{
		"name":     "Alice",
		"email":    "alice@x.com",
		"password": "pw1",
	}
	res, bodyStr := ts.SendRequest(t, "POST", "/register", "", registerBody)
	assert.Equal(t, http.StatusCreated, res.StatusCode, "Response: "+bodyStr)

	token, _ := helpers.LoginUser(t, ts, "alice@x.com", "pw1")
	assert.NotEmpty(t, token)
}

func TestLogin_WrongCredentials(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)
	helpers.RegisterUser(t, ts, "Alice", "alice@example.com", "super_password123")

	// Wrong password and unknown account are indistinguishable.
	res, _ := ts.SendRequest(t, "POST", "/login", "", map[string]interface{}{
		"email":    "alice@example.com",
		"password": "wrong_password",
	})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res, _ = ts.SendRequest(t, "POST", "/login", "", map[string]interface{}{
		"email":    "nobody@example.com",
		"password": "super_password123",
	})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestLogin_ReturnsCardID(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)
	helpers.RegisterUser(t, ts, "Alice", "alice@example.com", "super_password123")
	cardID := helpers.CreateCard(t, ts, "alice@example.com", map[string]interface{}{"name": "Alice"})

	_, loginCardID := helpers.LoginUser(t, ts, "alice@example.com", "super_password123")
	if assert.NotNil(t, loginCardID) {
		assert.Equal(t, cardID, *loginCardID)
	}
}

func TestMe_RequiresToken(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)

	res, _ := ts.SendRequest(t, "GET", "/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res, _ = ts.SendRequest(t, "GET", "/me", "not-a-jwt", nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	token := helpers.RegisterAndLogin(t, ts, "Alice", "alice@example.com", "super_password123")
	res, bodyStr := ts.SendRequest(t, "GET", "/me", token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "alice@example.com")
}
