package domain

// NoSubject is the subject used when a message has no Subject header.
const NoSubject = "(No Subject)"

// EmailRecord is a decoded message.
// Values are copied on assignment; treat a record as immutable once built.
type EmailRecord struct {
	// ID is the provider-assigned message identifier.
	ID string
	// From is the raw From header.
	From string
	// Subject is the raw Subject header, or NoSubject.
	Subject string
	// Date is the raw Date header text. It is not parsed.
	Date string
	// Content is the whitespace-normalised, possibly truncated plain-text body.
	Content string
}

// Row projects the record onto the spreadsheet column order:
// from, subject, date, content.
func (r EmailRecord) Row() []string {
	return []string{r.From, r.Subject, r.Date, r.Content}
}
