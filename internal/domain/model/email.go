package model

// Email is a fully rendered message ready for an SMTP transport.
type Email struct {
	From       string
	Recipients []string
	Subject    string
	HTMLBody   string
}
