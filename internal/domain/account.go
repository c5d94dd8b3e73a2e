package domain

// DefaultAccountName is stored when sign-up omits a display name.
const DefaultAccountName = "Anonymous"

// Account is the profile document persisted at sign-up.
type Account struct {
	ID    string
	Name  string
	Email string
}

// Attributes returns the persisted fields, leaving out unset values.
func (a Account) Attributes() map[string]any {
	attrs := make(map[string]any, 2)
	if a.Name != "" {
		attrs["name"] = a.Name
	}
	if a.Email != "" {
		attrs["email"] = a.Email
	}
	return attrs
}

// Principal is the authenticated user for the current request.
// It is rebuilt from the session cookie and a fresh account read every time.
type Principal struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// NewPrincipal merges the account attributes with its identifier.
func NewPrincipal(id string, account *Account) *Principal {
	return &Principal{
		ID:    id,
		Name:  account.Name,
		Email: account.Email,
	}
}

// IdentityRecord is the identity provider's view of an account.
type IdentityRecord struct {
	UID         string
	Email       string
	DisplayName string
}
