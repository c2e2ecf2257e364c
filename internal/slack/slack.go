package slack

import (
	"context"

	"github.com/slack-go/slack"
)

// MessagePoster is the slice of the Slack Web API the notification
// dispatcher needs. *slack.Client satisfies it.
type MessagePoster interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

// New creates a Slack Web API client for the given bot token.
func New(botToken string) MessagePoster {
	return slack.New(botToken)
}
