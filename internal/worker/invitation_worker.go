package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"levscore/internal/infra"
)

const invitationMaxAttempts = 3

// InvitationPayload carries everything needed to send an invitation
// email without going back to the database.
type InvitationPayload struct {
	Email       string `json:"email"`
	OrgName     string `json:"org_name"`
	InviterName string `json:"inviter_name"`
	Role        string `json:"role"`
	Token       string `json:"token"`
}

// InvitationWorker delivers invitation emails enqueued by the
// membership service.
type InvitationWorker struct {
	mailer  *infra.Mailer
	baseURL string
}

func NewInvitationWorker(mailer *infra.Mailer, baseURL string) *InvitationWorker {
	return &InvitationWorker{mailer: mailer, baseURL: baseURL}
}

func (w *InvitationWorker) Process(ctx context.Context, rdb *redis.Client, payload json.RawMessage) {
	var p InvitationPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		log.Error().Err(err).Msg("invalid invitation payload")
		return
	}

	var lastErr error
	for attempt := 1; attempt <= invitationMaxAttempts; attempt++ {
		lastErr = w.send(p)
		if lastErr == nil {
			log.Info().Str("email", p.Email).Str("org", p.OrgName).Msg("invitation email sent")
			return
		}
		log.Warn().Err(lastErr).Str("email", p.Email).Int("attempt", attempt).Msg("invitation email failed")
		time.Sleep(time.Duration(attempt) * time.Second)
	}
	pushDeadLetter(ctx, rdb, QueueInvitation, payload, invitationMaxAttempts, lastErr)
}

func (w *InvitationWorker) send(p InvitationPayload) error {
	acceptURL := fmt.Sprintf("%s/invitations/accept?token=%s", w.baseURL, p.Token)
	subject := fmt.Sprintf("You have been invited to %s", p.OrgName)
	body := fmt.Sprintf(
		"Hi,\n\n%s has invited you to join %s as %s.\n\nAccept the invitation here: %s\n\nThe invitation expires in 72 hours.\n",
		p.InviterName, p.OrgName, p.Role, acceptURL,
	)
	return w.mailer.Send(p.Email, subject, body, "")
}
