package auth

// TokenResponse is the body returned by POST /auth/token.
type TokenResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	Username    string      `json:"username"`
	Person      *PersonInfo `json:"person"` // nil when the account has no linked person
}

// PersonInfo is the subset of the linked person returned on login.
type PersonInfo struct {
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	FatherName *string `json:"father_name"`
}
