package entity

// Session is the reactive view of "is this visitor allowed past the gate".
// It is rebuilt per request from the identity token and the client-supplied
// wallet address; nothing here is persisted.
type Session struct {
	IdentityID      string `json:"identity_id"`
	Email           string `json:"email,omitempty"`
	WalletAddress   string `json:"wallet_address"`
	WalletConnected bool   `json:"wallet_connected"`
}

func (s *Session) Authenticated() bool {
	return s != nil && s.IdentityID != "" && s.WalletConnected
}
