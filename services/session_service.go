package services

import (
	"context"
	"log"
	"strconv"

	"perfume-store/models"
	"perfume-store/repositories"
)

// SessionService holds the auth triple (token, user id, admin flag) for each
// browser session. Login writes the whole record in one Save and Logout
// clears everything, so no caller ever observes a half-logged-in session.
type SessionService struct {
	storage repositories.SessionStorage
}

func NewSessionService(storage repositories.SessionStorage) *SessionService {
	return &SessionService{storage: storage}
}

func (s *SessionService) Login(ctx context.Context, sessionID, token string, user models.User) error {
	return s.storage.Save(ctx, sessionID, map[string]string{
		repositories.SessionKeyToken:   token,
		repositories.SessionKeyUserID:  user.ID,
		repositories.SessionKeyIsAdmin: strconv.FormatBool(user.IsAdmin),
	})
}

func (s *SessionService) Logout(ctx context.Context, sessionID string) error {
	return s.storage.Clear(ctx, sessionID)
}

// Current returns the session, or nil when logged out. Reads defensively:
// partial state without a token counts as logged out no matter what the
// other keys hold.
func (s *SessionService) Current(ctx context.Context, sessionID string) *models.Session {
	values, err := s.storage.Load(ctx, sessionID)
	if err != nil {
		log.Printf("session %s: failed to load, treating as logged out: %v", sessionID, err)
		return nil
	}

	token := values[repositories.SessionKeyToken]
	if token == "" {
		return nil
	}

	isAdmin, _ := strconv.ParseBool(values[repositories.SessionKeyIsAdmin])
	return &models.Session{
		Token:   token,
		UserID:  values[repositories.SessionKeyUserID],
		IsAdmin: isAdmin,
	}
}
