package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geticard_backend/test/helpers"
)

type cardResponse struct {
	CardID       string   `json:"card_id"`
	ContactEmail string   `json:"contact_email"`
	Name         string   `json:"name"`
	Bio          string   `json:"bio"`
	Company      string   `json:"company"`
	Avatar       string   `json:"avatar"`
	Gallery      []string `json:"gallery"`
}

func getCard(t *testing.T, ts *helpers.TestServer, cardID string) cardResponse {
	t.Helper()
	res, bodyStr := ts.SendRequest(t, "GET", "/card/"+cardID, "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "Card fetch should succeed. Response: "+bodyStr)
	var card cardResponse
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &card))
	return card
}

// TestCardLifecycle walks the whole flow: register, login, create, read,
// update, foreign delete rejected, owner delete, read gone.
func TestCardLifecycle(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)

	aliceToken := helpers.RegisterAndLogin(t, ts, "Alice", "alice@example.com", "super_password123")
	bobToken := helpers.RegisterAndLogin(t, ts, "Bob", "bob@example.com", "super_password123")

	cardID := helpers.CreateCard(t, ts, "alice@example.com", map[string]interface{}{
		"name":    "Alice",
		"bio":     "Hello",
		"company": "Acme",
	})

	card := getCard(t, ts, cardID)
	assert.Equal(t, "alice@example.com", card.ContactEmail)
	assert.Equal(t, "Alice", card.Name)
	assert.Equal(t, "Acme", card.Company)

	// Owner update changes named fields only.
	res, _ := ts.SendRequest(t, "PUT", "/card/"+cardID, aliceToken, map[string]interface{}{
		"bio": "Updated bio",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)

	card = getCard(t, ts, cardID)
	assert.Equal(t, "Updated bio", card.Bio)
	assert.Equal(t, "Alice", card.Name)

	// Another authenticated user is not the owner.
	res, _ = ts.SendRequest(t, "DELETE", "/card/"+cardID, bobToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res, _ = ts.SendRequest(t, "DELETE", "/card/"+cardID, aliceToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, _ = ts.SendRequest(t, "GET", "/card/"+cardID, "", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestCreateCard_IdempotentByEmail(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)

	cardID := helpers.CreateCard(t, ts, "alice@example.com", nil)

	res, bodyStr := ts.SendRequest(t, "POST", "/card", "", map[string]interface{}{
		"contact_email": "alice@example.com",
		"name":          "Second attempt",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, cardID)
	assert.Contains(t, bodyStr, "already exists")
}

func TestCreateCard_MissingEmail(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)

	res, _ := ts.SendRequest(t, "POST", "/card", "", map[string]interface{}{"name": "No Email"})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestCreateCard_MultipartWithImages(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)

	res, bodyStr := ts.SendMultipart(t, "POST", "/card", "",
		map[string]string{
			"contact_email": "alice@example.com",
			"name":          "Alice",
		},
		[]helpers.FormFile{
			{Field: "avatar", Filename: "me.png", ContentType: "image/png", Content: []byte("avatar bytes")},
			{Field: "gallery", Filename: "one.png", ContentType: "image/png", Content: []byte("gallery one")},
			{Field: "gallery", Filename: "two.png", ContentType: "image/png", Content: []byte("gallery two")},
		})
	require.Equal(t, http.StatusCreated, res.StatusCode, "Response: "+bodyStr)

	var created struct {
		CardID string `json:"card_id"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &created))

	card := getCard(t, ts, created.CardID)
	assert.Contains(t, card.Avatar, "http")
	require.Len(t, card.Gallery, 2)

	// Served back through the upload route.
	res, fileBody := ts.SendRequest(t, "GET", "/uploads/cards/"+created.CardID+"/avatar/"+pathTail(card.Avatar), "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "avatar bytes", fileBody)
}

func TestCreateCard_RejectsUnsupportedType(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)

	res, _ := ts.SendMultipart(t, "POST", "/card", "",
		map[string]string{"contact_email": "alice@example.com"},
		[]helpers.FormFile{
			{Field: "avatar", Filename: "note.txt", ContentType: "text/plain", Content: []byte("hi")},
		})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestUpdateCard_GalleryAppendAndReplace(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)
	token := helpers.RegisterAndLogin(t, ts, "Alice", "alice@example.com", "super_password123")

	res, bodyStr := ts.SendMultipart(t, "POST", "/card", "",
		map[string]string{"contact_email": "alice@example.com"},
		[]helpers.FormFile{
			{Field: "gallery", Filename: "one.png", ContentType: "image/png", Content: []byte("one")},
		})
	require.Equal(t, http.StatusCreated, res.StatusCode, "Response: "+bodyStr)

	var created struct {
		CardID string `json:"card_id"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &created))

	// Default: new payloads append.
	res, _ = ts.SendMultipart(t, "PUT", "/card/"+created.CardID, token,
		nil,
		[]helpers.FormFile{
			{Field: "gallery", Filename: "two.png", ContentType: "image/png", Content: []byte("two")},
		})
	require.Equal(t, http.StatusOK, res.StatusCode)

	card := getCard(t, ts, created.CardID)
	assert.Len(t, card.Gallery, 2)

	// replace_gallery swaps the whole sequence.
	res, _ = ts.SendMultipart(t, "PUT", "/card/"+created.CardID, token,
		map[string]string{"replace_gallery": "true"},
		[]helpers.FormFile{
			{Field: "gallery", Filename: "three.png", ContentType: "image/png", Content: []byte("three")},
		})
	require.Equal(t, http.StatusOK, res.StatusCode)

	card = getCard(t, ts, created.CardID)
	require.Len(t, card.Gallery, 1)
	assert.Contains(t, card.Gallery[0], "three")
}

func TestUpdateCard_AuthAndOwnership(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)
	helpers.RegisterUser(t, ts, "Bob", "bob@example.com", "super_password123")
	bobToken, _ := helpers.LoginUser(t, ts, "bob@example.com", "super_password123")

	cardID := helpers.CreateCard(t, ts, "alice@example.com", nil)

	// No token at all.
	res, _ := ts.SendRequest(t, "PUT", "/card/"+cardID, "", map[string]interface{}{"bio": "x"})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	// Garbage token.
	res, _ = ts.SendRequest(t, "PUT", "/card/"+cardID, "garbage", map[string]interface{}{"bio": "x"})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	// Valid token, wrong owner.
	res, _ = ts.SendRequest(t, "PUT", "/card/"+cardID, bobToken, map[string]interface{}{"bio": "x"})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

func TestGetCard_NotFound(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)

	res, _ := ts.SendRequest(t, "GET", "/card/card-deadbeef", "", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestHealth(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)

	res, bodyStr := ts.SendRequest(t, "GET", "/health", "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "ok")
}

// pathTail returns the final segment of a URL or path.
func pathTail(ref string) string {
	for i := len(ref) - 1; i >= 0; i-- {
		if ref[i] == '/' {
			return ref[i+1:]
		}
	}
	return ref
}
