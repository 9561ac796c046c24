package client

import (
	"context"
	"errors"

	apperrors "github.com/kbukum/promptserve/errors"
)

// Notification messages shown to the user.
const (
	MsgMalformed = "Unexpected response format from the server."
	msgTransport = "API request failed: "
)

// Notifier receives user-facing error messages.
type Notifier interface {
	Error(msg string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(msg string)

// Error calls f(msg).
func (f NotifierFunc) Error(msg string) { f(msg) }

// Call invokes path and returns the display text with ok == true, even when
// the text is empty. On failure it sends exactly one notification and
// returns ("", false).
func Call(ctx context.Context, c Invoker, n Notifier, path string, input any) (string, bool) {
	out, err := c.Invoke(ctx, path, input)
	if err != nil {
		n.Error(Message(err))
		return "", false
	}
	return out.Text(), true
}

// Message returns the notification text for an Invoke error. Malformed
// responses get a fixed message; transport failures name their cause.
func Message(err error) string {
	if errors.Is(err, ErrMalformedResponse) {
		return MsgMalformed
	}
	reason := err.Error()
	if appErr, ok := apperrors.AsAppError(err); ok && appErr.Cause != nil {
		reason = appErr.Cause.Error()
	}
	return msgTransport + reason
}
