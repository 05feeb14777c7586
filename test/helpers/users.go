package helpers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RegisterUser registers an account through the API.
func RegisterUser(t *testing.T, ts *TestServer, name, email, password string) {
	t.Helper()

	body := map[string]interface{}{
		"name":     name,
		"email":    email,
		"password": password,
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/register", "", body)
	require.Equal(t, http.StatusCreated, res.StatusCode, "Registration should succeed. Response: "+bodyStr)
}

// LoginUser logs in and returns the access token and the account's card id
// (nil when the account has no card yet).
func LoginUser(t *testing.T, ts *TestServer, email, password string) (string, *string) {
	t.Helper()

	body := map[string]interface{}{
		"email":    email,
		"password": password,
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/login", "", body)
	require.Equal(t, http.StatusOK, res.StatusCode, "Login should succeed. Response: "+bodyStr)

	var loginResponse struct {
		Token  string  `json:"access_token"`
		CardID *string `json:"card_id"`
	}
	err := json.Unmarshal([]byte(bodyStr), &loginResponse)
	require.NoError(t, err, "Login response should be valid JSON")
	assert.NotEmpty(t, loginResponse.Token, "Token should not be empty")

	return loginResponse.Token, loginResponse.CardID
}

// RegisterAndLogin registers an account and logs it in.
func RegisterAndLogin(t *testing.T, ts *TestServer, name, email, password string) string {
	t.Helper()

	RegisterUser(t, ts, name, email, password)
	token, _ := LoginUser(t, ts, email, password)
	return token
}

// CreateCard creates a card through the JSON API and returns its id.
func CreateCard(t *testing.T, ts *TestServer, contactEmail string, fields map[string]interface{}) string {
	t.Helper()

	body := map[string]interface{}{"contact_email": contactEmail}
	for k, v := range fields {
		body[k] = v
	}

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/card", "", body)
	require.Equal(t, http.StatusCreated, res.StatusCode, "Card creation should succeed. Response: "+bodyStr)

	var created struct {
		CardID string `json:"card_id"`
	}
	err := json.Unmarshal([]byte(bodyStr), &created)
	require.NoError(t, err, "Create response should be valid JSON")
	require.NotEmpty(t, created.CardID, "card_id should not be empty")

	return created.CardID
}
