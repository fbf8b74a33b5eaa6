package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TravelPlanner_WebProject/internal/models"
)

func roundTrip(t *testing.T, store *Store, sess *Session) (*Session, *http.Cookie) {
	t.Helper()

	rec := httptest.NewRecorder()
	require.NoError(t, store.Save(rec, sess))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	return store.Load(req), cookies[0]
}

func TestSaveAndLoad(t *testing.T) {
	store := NewStore("test-secret")
	sess := &Session{}
	sess.Login(&models.User{ID: "u-1", Name: "Asha", Email: "asha@example.com"})
	sess.AddFlash(FlashSuccess, "Login successful!")

	loaded, cookie := roundTrip(t, store, sess)

	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, "u-1", loaded.UserID)
	assert.Equal(t, "Asha", loaded.UserName)
	assert.Equal(t, "asha@example.com", loaded.UserEmail)
	assert.Equal(t, sess.ID, loaded.ID)
	assert.True(t, loaded.Authenticated())
	assert.Equal(t, []Flash{{Category: FlashSuccess, Message: "Login successful!"}}, loaded.PopFlashes())
	assert.Empty(t, loaded.Flashes)
}

func TestLoadWithoutCookie(t *testing.T) {
	store := NewStore("test-secret")

	sess := store.Load(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, sess.Authenticated())
}

func TestTamperedCookieIsIgnored(t *testing.T) {
	store := NewStore("test-secret")
	sess := &Session{UserID: "u-1"}

	token, err := store.Encode(sess)
	require.NoError(t, err)

	other := NewStore("another-secret")
	_, err = other.Decode(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: DefaultCookieName, Value: token + "x"})
	assert.False(t, store.Load(req).Authenticated())
}

func TestExpiredCookieIsIgnored(t *testing.T) {
	store := NewStore("test-secret", WithMaxAge(time.Minute))
	store.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := store.Encode(&Session{UserID: "u-1"})
	require.NoError(t, err)

	_, err = NewStore("test-secret").Decode(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSaveEmptySessionExpiresCookie(t *testing.T) {
	store := NewStore("test-secret")
	sess := &Session{UserID: "u-1", UserName: "Asha"}
	sess.Clear()

	rec := httptest.NewRecorder()
	require.NoError(t, store.Save(rec, sess))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
	assert.Empty(t, cookies[0].Value)
}

func TestClearThenFlashKeepsOnlyNotice(t *testing.T) {
	store := NewStore("test-secret")
	sess := &Session{UserID: "u-1", UserName: "Asha", UserEmail: "asha@example.com"}
	sess.Clear()
	sess.AddFlash(FlashInfo, "You have been logged out.")

	loaded, _ := roundTrip(t, store, sess)
	assert.False(t, loaded.Authenticated())
	assert.Empty(t, loaded.UserName)
	assert.Len(t, loaded.Flashes, 1)
}

func TestSecureOption(t *testing.T) {
	store := NewStore("test-secret", WithSecure(true), WithCookieName("sid"))

	rec := httptest.NewRecorder()
	require.NoError(t, store.Save(rec, &Session{UserID: "u-1"}))

	cookie := rec.Result().Cookies()[0]
	assert.Equal(t, "sid", cookie.Name)
	assert.True(t, cookie.Secure)
}

func TestGinMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := NewStore("test-secret")

	token, err := store.Encode(&Session{UserID: "u-9", UserName: "Ravi"})
	require.NoError(t, err)

	router := gin.New()
	router.Use(Middleware(store))
	router.GET("/", func(c *gin.Context) {
		sess := From(c)
		sess.AddFlash(FlashInfo, "seen "+sess.UserName)
		require.NoError(t, Save(c))
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: DefaultCookieName, Value: token})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	saved, err := store.Decode(cookies[0].Value)
	require.NoError(t, err)
	assert.Equal(t, "u-9", saved.UserID)
	assert.Equal(t, []Flash{{Category: FlashInfo, Message: "seen Ravi"}}, saved.Flashes)
}

func TestLoginRotatesID(t *testing.T) {
	store := NewStore("test-secret")
	sess := &Session{}
	sess.AddFlash(FlashInfo, "Please login to access this page.")
	anonymous, _ := roundTrip(t, store, sess)
	require.NotEmpty(t, anonymous.ID)

	anonymous.Login(&models.User{ID: "u-1", Name: "Asha", Email: "asha@example.com"})
	loggedIn, _ := roundTrip(t, store, anonymous)

	assert.NotEmpty(t, loggedIn.ID)
	assert.NotEqual(t, sess.ID, loggedIn.ID)
}
