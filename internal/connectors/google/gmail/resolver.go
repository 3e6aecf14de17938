package gmail

// WebURL returns the Gmail web URL for a message ID.
// Returns an empty string for an empty ID.
func WebURL(messageID string) string {
	if messageID == "" {
		return ""
	}
	return "https://mail.google.com/mail/u/0/#all/" + messageID
}
