// Package session stores the signed-in staff member and one-shot flash messages in
// the cookie session, and carries the per-request Principal through the gin context.
package session

import (
	"encoding/gob"
	"strings"

	"github.com/officeportal/portal/database/model"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	Name = "portal"

	loginUserId  = "LOGIN_USER_ID"
	principalKey = "principal"
)

// Principal is the authenticated identity of the current request. It is loaded
// from the database on every protected request, so role changes apply at once.
type Principal struct {
	Id       int
	Username string
	FullName string
	Role     model.Role
}

func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == model.RoleAdmin
}

// Flash is a message shown once on the next rendered page.
type Flash struct {
	Category string // success | info | warning | danger
	Message  string
}

func init() {
	gob.Register(Flash{})
}

func SetLoginUser(c *gin.Context, user *model.AdminUser) error {
	s := sessions.Default(c)
	s.Set(loginUserId, user.Id)
	return s.Save()
}

// GetLoginUserId returns the id stored at login, or 0 without a session.
func GetLoginUserId(c *gin.Context) int {
	s := sessions.Default(c)
	if id, ok := s.Get(loginUserId).(int); ok {
		return id
	}
	return 0
}

func SetMaxAge(c *gin.Context, maxAge int) error {
	s := sessions.Default(c)
	s.Options(sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
	})
	return s.Save()
}

// ClearSession drops the login but keeps pending flashes so the next page can
// still show them.
func ClearSession(c *gin.Context) error {
	s := sessions.Default(c)
	flashes := s.Flashes()
	s.Clear()
	for _, f := range flashes {
		s.AddFlash(f)
	}
	return s.Save()
}

func SetPrincipal(c *gin.Context, user *model.AdminUser) *Principal {
	p := &Principal{
		Id:       user.Id,
		Username: user.Username,
		FullName: user.FullName,
		Role:     user.Role,
	}
	c.Set(principalKey, p)
	return p
}

// GetPrincipal returns the identity placed on the context by the login check,
// or nil on public routes.
func GetPrincipal(c *gin.Context) *Principal {
	if v, ok := c.Get(principalKey); ok {
		if p, ok := v.(*Principal); ok {
			return p
		}
	}
	return nil
}

func AddFlash(c *gin.Context, category, message string) {
	s := sessions.Default(c)
	s.AddFlash(Flash{Category: category, Message: message})
	_ = s.Save()
}

// Flashes pops the pending flash messages.
func Flashes(c *gin.Context) []Flash {
	s := sessions.Default(c)
	raw := s.Flashes()
	if len(raw) == 0 {
		return nil
	}
	_ = s.Save()
	out := make([]Flash, 0, len(raw))
	for _, v := range raw {
		if f, ok := v.(Flash); ok {
			out = append(out, f)
		}
	}
	return out
}

// SafeNext returns next when it is a local absolute path, fallback otherwise.
func SafeNext(next, fallback string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, "\\") {
		return fallback
	}
	return next
}
