package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	slackapi "github.com/slack-go/slack"
	"gorm.io/gorm"

	"cfptracker/internal/model"
	"cfptracker/internal/repository"
	"cfptracker/internal/slack"
)

const digestDateFormat = "2006-01-02"

// NotificationOutcome describes the result of one dispatch attempt. It is
// never persisted. SkippedIDs lists requested CFP ids that did not resolve
// to a record and were left out of the digest.
type NotificationOutcome struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	SentTo     string `json:"sent_to"`
	SkippedIDs []uint `json:"skipped_ids,omitempty"`
}

// NotifyService dispatches CFP digests to Slack.
type NotifyService interface {
	Send(ctx context.Context, cfpIDs []uint, channelOverride string) (*NotificationOutcome, error)
}

type notifyService struct {
	cfpRepo        repository.CFPRepository
	poster         slack.MessagePoster
	defaultChannel string
	timeout        time.Duration
}

// NewNotifyService creates a notification dispatcher. defaultChannel may be
// empty, in which case every dispatch needs an explicit channel override.
func NewNotifyService(cfpRepo repository.CFPRepository, poster slack.MessagePoster, defaultChannel string, timeout time.Duration) NotifyService {
	return &notifyService{
		cfpRepo:        cfpRepo,
		poster:         poster,
		defaultChannel: defaultChannel,
		timeout:        timeout,
	}
}

// Send posts a single digest message for the given CFPs to Slack. Slack and
// transport failures (timeouts included) are reported in the returned
// outcome, not as an error; at most one post is attempted, with no retry.
// The returned error is reserved for store failures while resolving ids.
func (s *notifyService) Send(ctx context.Context, cfpIDs []uint, channelOverride string) (*NotificationOutcome, error) {
	channel := channelOverride
	if channel == "" {
		channel = s.defaultChannel
	}
	if channel == "" {
		return &NotificationOutcome{
			Success: false,
			Message: "No Slack channel specified",
			SentTo:  "",
		}, nil
	}

	cfps := make([]model.CFP, 0, len(cfpIDs))
	var skipped []uint
	for _, id := range cfpIDs {
		cfp, err := s.cfpRepo.FindByID(ctx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			skipped = append(skipped, id)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("resolve cfp %d: %w", id, err)
		}
		cfps = append(cfps, *cfp)
	}

	if len(cfps) == 0 {
		return &NotificationOutcome{
			Success:    false,
			Message:    "No CFPs found",
			SentTo:     channel,
			SkippedIDs: skipped,
		}, nil
	}

	message := renderDigest(cfps)

	postCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, _, err := s.poster.PostMessageContext(postCtx, channel,
		slackapi.MsgOptionText(message, false),
		slackapi.MsgOptionBlocks(
			slackapi.NewSectionBlock(
				slackapi.NewTextBlockObject(slackapi.MarkdownType, message, false, false),
				nil, nil,
			),
		),
	)
	if err != nil {
		return &NotificationOutcome{
			Success:    false,
			Message:    fmt.Sprintf("Error sending notification: %v", err),
			SentTo:     channel,
			SkippedIDs: skipped,
		}, nil
	}

	return &NotificationOutcome{
		Success:    true,
		Message:    "Notifications sent successfully",
		SentTo:     channel,
		SkippedIDs: skipped,
	}, nil
}

// renderDigest builds one text block summarizing the CFPs in input order.
func renderDigest(cfps []model.CFP) string {
	var b strings.Builder
	b.WriteString("🎯 New CFP Notifications:\n\n")
	for _, cfp := range cfps {
		fmt.Fprintf(&b, "*%s*\n", cfp.Title)
		fmt.Fprintf(&b, "Event: %s\n", cfp.EventName)
		fmt.Fprintf(&b, "Date: %s\n", cfp.EventDate.Format(digestDateFormat))
		fmt.Fprintf(&b, "Closing: %s\n", cfp.ClosingDate.Format(digestDateFormat))
		fmt.Fprintf(&b, "Location: %s\n", cfp.Location)
		fmt.Fprintf(&b, "Target Audience: %s\n", cfp.TargetAudience)
		fmt.Fprintf(&b, "Event URL: %s\n", cfp.EventURL)
		fmt.Fprintf(&b, "CFP URL: %s\n\n", cfp.CFPURL)
	}
	return b.String()
}
