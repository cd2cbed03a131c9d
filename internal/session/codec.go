package session

import (
	"crypto/rand"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
)

// CookieName is the session cookie carrying the signed session id.
const CookieName = "DDC_SESSION"

// Codec signs session ids into cookie values and back.
type Codec struct {
	sc     *securecookie.SecureCookie
	secure bool
	maxAge time.Duration
}

// NewCodec builds a codec. An empty hashKey generates an ephemeral one, which
// only makes sense in development since cookies will not survive a restart.
// blockKey is optional and enables encryption.
func NewCodec(hashKey, blockKey []byte, secure bool, maxAge time.Duration) (*Codec, error) {
	if len(hashKey) == 0 {
		hashKey = securecookie.GenerateRandomKey(32)
		if hashKey == nil {
			hashKey = make([]byte, 32)
			if _, err := rand.Read(hashKey); err != nil {
				return nil, fmt.Errorf("session: generate hash key: %w", err)
			}
		}
	}
	if len(blockKey) == 0 {
		blockKey = nil
	}
	sc := securecookie.New(hashKey, blockKey)
	if maxAge > 0 {
		sc.MaxAge(int(maxAge / time.Second))
	}
	return &Codec{sc: sc, secure: secure, maxAge: maxAge}, nil
}

// Read returns the session id from r, or "" when missing, tampered or older
// than maxAge.
func (c *Codec) Read(r *http.Request) string {
	ck, err := r.Cookie(CookieName)
	if err != nil || ck.Value == "" {
		return ""
	}
	var id string
	if err := c.sc.Decode(CookieName, ck.Value, &id); err != nil {
		return ""
	}
	return id
}

// Write sets the signed cookie for id on w. Each call stamps a fresh signing
// time, so callers re-issue it to keep an active session from expiring.
func (c *Codec) Write(w http.ResponseWriter, id string) error {
	val, err := c.sc.Encode(CookieName, id)
	if err != nil {
		return fmt.Errorf("session: encode cookie: %w", err)
	}
	ck := &http.Cookie{
		Name:     CookieName,
		Value:    val,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	}
	if c.maxAge > 0 {
		ck.MaxAge = int(c.maxAge / time.Second)
	}
	http.SetCookie(w, ck)
	return nil
}
