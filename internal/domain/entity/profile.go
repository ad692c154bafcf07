package entity

// UserProfile is the typed projection of the contract's getUserProfile view.
// It is read-only and never cached beyond the request that fetched it.
type UserProfile struct {
	Name            string `json:"name"`
	Institution     string `json:"institution"`
	Registered      bool   `json:"registered"`
	HasActiveLoan   bool   `json:"has_active_loan"`
	ReputationScore uint64 `json:"reputation_score"`
	CredentialCount uint64 `json:"credential_count"`
}

// InvestorInfo amounts are in investment-token base units (18 decimals).
type InvestorInfo struct {
	Contribution string `json:"contribution"`
	VotingWeight uint64 `json:"voting_weight"`
	VotingRights bool   `json:"voting_rights"`
}

// PoolInfo amounts are in investment-token base units (18 decimals).
type PoolInfo struct {
	TotalPool      string `json:"total_pool"`
	InsurancePool  string `json:"insurance_pool"`
	AllocatedFunds string `json:"allocated_funds"`
	AvailableFunds string `json:"available_funds"`
}
