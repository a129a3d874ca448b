package services

import (
	"database/sql"
	"time"

	"github.com/golang-jwt/jwt/v5"

	intdb "alhudha-backend/internal/db"
	"alhudha-backend/internal/domain"
	"alhudha-backend/internal/domain/models"
	"alhudha-backend/internal/repositories"
	"alhudha-backend/internal/session"
	"alhudha-backend/internal/utils"
)

// AuthService handles admin login and logout. Credentials never leave this
// layer; failures are reported as a single generic message so usernames
// cannot be probed.
type AuthService struct {
	Users      repositories.UserRepository
	Sessions   *session.Store
	SecretKey  string
	SessionTTL time.Duration
	RequestID  string
}

// LoginResult carries what the handler needs to answer a successful login.
type LoginResult struct {
	User    models.AdminUser
	Token   string // signed JWT for Authorization: Bearer clients
	Session *session.Session
}

// Login verifies the credentials, opens a session and signs a JWT whose sid
// claim points at it. The token is useless once the session is revoked.
func (s AuthService) Login(username, password, ip, userAgent string) (LoginResult, error) {
	username = utils.TrimOrEmpty(username)
	if username == "" || password == "" {
		return LoginResult{}, domain.UnauthorizedError{Msg: "Invalid credentials"}
	}

	user, hash, err := s.Users.GetActiveByUsername(username)
	if err == sql.ErrNoRows {
		return LoginResult{}, domain.UnauthorizedError{Msg: "Invalid credentials"}
	}
	if err != nil {
		return LoginResult{}, intdb.ClassifyError(err)
	}
	if !utils.VerifyPassword(password, hash) {
		return LoginResult{}, domain.UnauthorizedError{Msg: "Invalid credentials"}
	}

	sess := &session.Session{
		Token:         utils.NewSessionToken(),
		Kind:          session.KindAdmin,
		AdminUserID:   user.ID,
		AdminUsername: user.Username,
		AdminName:     user.FullName,
	}
	s.Sessions.Put(sess)

	token, err := s.signToken(sess)
	if err != nil {
		s.Sessions.Delete(sess.Token)
		return LoginResult{}, domain.InternalError{Err: err}
	}

	// best-effort bookkeeping, login already succeeded
	if err := s.Users.TouchLastLogin(user.ID); err != nil {
		utils.LogEvent(s.RequestID, "auth", "touch_last_login", err.Error())
	}
	if err := s.Users.InsertLoginLog(user.ID, ip, userAgent); err != nil {
		utils.LogEvent(s.RequestID, "auth", "login_log", err.Error())
	}

	utils.LogEvent(s.RequestID, "auth", "login", user.Username)
	return LoginResult{User: user, Token: token, Session: sess}, nil
}

// Logout drops the server-side session. Unknown tokens are a no-op so the
// endpoint is idempotent.
func (s AuthService) Logout(token string) {
	if token == "" {
		return
	}
	s.Sessions.Delete(token)
	utils.LogEvent(s.RequestID, "auth", "logout", "")
}

// ResolveBearer maps a presented JWT back to its live session.
func (s AuthService) ResolveBearer(tokenString string) (*session.Session, bool) {
	claims := jwt.MapClaims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.SecretKey), nil
	})
	if err != nil || !tok.Valid {
		return nil, false
	}
	sid, _ := claims["sid"].(string)
	return s.Sessions.Get(sid, session.KindAdmin)
}

func (s AuthService) signToken(sess *session.Session) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sid": sess.Token,
		"sub": sess.AdminUsername,
		"iat": now.Unix(),
		"exp": now.Add(s.SessionTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.SecretKey))
}
