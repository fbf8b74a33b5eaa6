package session

import (
	"github.com/gin-gonic/gin"
)

const (
	sessionKey = "session"
	storeKey   = "session_store"
)

// Middleware loads the session for every request and keeps it on the gin
// context for the rest of the chain.
func Middleware(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(storeKey, store)
		c.Set(sessionKey, store.Load(c.Request))
		c.Next()
	}
}

// From returns the request's session. It never returns nil.
func From(c *gin.Context) *Session {
	if v, ok := c.Get(sessionKey); ok {
		if sess, ok := v.(*Session); ok {
			return sess
		}
	}
	sess := &Session{}
	c.Set(sessionKey, sess)
	return sess
}

// Save writes the request's session cookie. It must run before the response
// body is written.
func Save(c *gin.Context) error {
	v, ok := c.Get(storeKey)
	if !ok {
		return nil
	}
	return v.(*Store).Save(c.Writer, From(c))
}
