package usecase

import (
	"context"

	"luminafi/internal/domain/entity"
)

type IdentityClient interface {
	VerifyToken(ctx context.Context, token string) (*IdentityToken, error)
}

type IdentityToken struct {
	UID   string
	Email string
}

// ContractReader is the read half of the binding layer as the use cases see
// it. Implemented by chain.Reader; faked in tests.
type ContractReader interface {
	GetUserProfile(ctx context.Context, userAddr string) (*entity.UserProfile, error)
	GetInvestorInfo(ctx context.Context, investorAddr string) (*entity.InvestorInfo, error)
	GetInvestmentPoolInfo(ctx context.Context) (*entity.PoolInfo, error)
	GetLoanSummary(ctx context.Context, loanID uint64) (*entity.LoanSummary, error)
	GetLoanIDsByStatus(ctx context.Context, status entity.LoanStatus) ([]uint64, error)
	HasRole(ctx context.Context, role, userAddr string) (bool, error)
	HasVotingRights(ctx context.Context, investorAddr string) (bool, error)
	HasVotedOnLoan(ctx context.Context, loanID uint64, investorAddr string) (bool, error)
}
