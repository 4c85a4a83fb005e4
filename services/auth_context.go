package services

// AuthContext is the signed-in user as resolved by the auth middleware.
// Handlers pass it explicitly into services.
type AuthContext struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	ImageURL    string `json:"imageUrl"`
	SessionID   string `json:"-"`
}

func (a *AuthContext) signedIn() bool {
	return a != nil && a.UserID != ""
}
