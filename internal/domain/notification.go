package domain

import "fmt"

// NotificationKind selects the toast style used by the browser.
type NotificationKind string

const (
	NotificationWarning NotificationKind = "warning"
	NotificationFailure NotificationKind = "failure"
	NotificationSuccess NotificationKind = "success"
)

// Notification is a fire-and-forget user message. No history is retained.
type Notification struct {
	Kind    NotificationKind `json:"kind"`
	Message string           `json:"message"`
}

// User-facing messages.
const (
	MsgEmptyQuery   = "Please enter a search term."
	MsgNoResults    = "Sorry, there are no images matching your search query. Please try again."
	MsgEndOfResults = "We're sorry, but you've reached the end of search results."
	MsgFetchFailed  = "Failed to fetch images. Please try again."
)

// Warning builds a warning notification.
func Warning(msg string) Notification {
	return Notification{Kind: NotificationWarning, Message: msg}
}

// Failure builds a failure notification.
func Failure(msg string) Notification {
	return Notification{Kind: NotificationFailure, Message: msg}
}

// FoundImages builds the success notification shown after the first page.
func FoundImages(total int) Notification {
	return Notification{Kind: NotificationSuccess, Message: fmt.Sprintf("Hooray! We found %d images.", total)}
}
