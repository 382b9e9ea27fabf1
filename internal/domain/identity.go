package domain

// Identity is the normalized user record produced at login and embedded in
// the session credential. Immutable for the credential's lifetime.
type Identity struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture,omitempty"`
}
