package services

import (
	"time"

	"github.com/theopenshift/openshift-web/internal/availability"
	"github.com/theopenshift/openshift-web/internal/lifecycle"
	"github.com/theopenshift/openshift-web/internal/session"
	"github.com/theopenshift/openshift-web/internal/timer"
	"github.com/theopenshift/openshift-web/internal/utils"
)

// SessionService answers the browser's session lookups and tears down all
// per-user in-memory state on logout.
type SessionService struct {
	hub *session.Hub
}

func NewSessionService(hub *session.Hub) *SessionService {
	return &SessionService{hub: hub}
}

// State describes the identity attached to the current request. A nil
// identity yields a signed-out state rather than an error.
func (s *SessionService) State(id *session.Identity) session.State {
	if id == nil {
		return session.State{Error: "not_signed_in"}
	}
	st := session.State{User: id, Token: id.AccessToken}
	if !id.ExpiresAt.IsZero() {
		st.ExpiresAt = id.ExpiresAt.UTC().Format(time.RFC3339)
	}
	return st
}

func (s *SessionService) Logout(userID string) {
	s.hub.Logout(userID)
}

// RegisterTeardown subscribes the per-user stores to logout events and
// returns the unsubscribe func.
func RegisterTeardown(
	hub *session.Hub,
	timers *timer.Registry,
	drafts *availability.Drafts,
	overlay *lifecycle.Overlay,
	snapshots *lifecycle.SnapshotStore,
) func() {
	return hub.Subscribe(func(e session.Event) {
		if e.Type != session.EventLogout {
			return
		}
		n := timers.DropUser(e.UserID)
		drafts.Drop(e.UserID)
		overlay.DropUser(e.UserID)
		snapshots.DropUser(e.UserID)
		utils.Logger.WithField("user_id", e.UserID).Infof("Session state cleared (%d timers)", n)
	})
}
