package domain

// NotificationMessage is what the API publishes to the notification queue.
// The notifier worker turns it into an email; delivery is fire-and-forget
// from the API's perspective.
type NotificationMessage struct {
	UserID          int64  `json:"userID"`
	Email           string `json:"email"`
	FullName        string `json:"fullName"`
	Title           string `json:"title"`
	Message         string `json:"message"`
	Type            string `json:"type"` // shift | shift_swap | account
	RelatedEntityID int64  `json:"relatedEntityID"`
}

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type CreateUserMailData struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type ResetPasswordMailData struct {
	FullName   string `json:"fullName"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}

type ChangeEmailMailData struct {
	FullName   string `json:"fullName"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}
