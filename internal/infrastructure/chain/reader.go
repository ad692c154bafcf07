package chain

import (
	"context"
	"fmt"

	"luminafi/internal/domain/entity"
)

// Role identifiers the LuminaFi contract grants through its access control.
var (
	BorrowerRole = RoleHash("BORROWER_ROLE")
	InvestorRole = RoleHash("INVESTOR_ROLE")
	VerifierRole = RoleHash("VERIFIER_ROLE")
)

// Reader adapts the contract's view functions to typed response structs.
// One struct per view, decoded at this boundary; nothing downstream touches
// raw return words.
type Reader struct {
	client   *Client
	contract string
}

func NewReader(client *Client, contractAddr string) (*Reader, error) {
	if !IsAddress(contractAddr) {
		return nil, fmt.Errorf("invalid LUMINAFI_CONTRACT_ADDRESS")
	}
	return &Reader{client: client, contract: contractAddr}, nil
}

func (r *Reader) call(ctx context.Context, signature string, args ...Arg) (*ReturnData, error) {
	data, err := EncodeCall(signature, args...)
	if err != nil {
		return nil, err
	}
	raw, err := r.client.EthCall(ctx, r.contract, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", signature, err)
	}
	return NewReturnData(raw), nil
}

func (r *Reader) GetUserProfile(ctx context.Context, userAddr string) (*entity.UserProfile, error) {
	ret, err := r.call(ctx, "getUserProfile(address)", Address(userAddr))
	if err != nil {
		return nil, err
	}

	name, err := ret.StringAt(0)
	if err != nil {
		return nil, err
	}
	institution, err := ret.StringAt(1)
	if err != nil {
		return nil, err
	}
	registered, err := ret.Bool(2)
	if err != nil {
		return nil, err
	}
	hasActiveLoan, err := ret.Bool(3)
	if err != nil {
		return nil, err
	}
	reputation, err := ret.Uint64(4)
	if err != nil {
		return nil, err
	}
	credentials, err := ret.Uint64(5)
	if err != nil {
		return nil, err
	}

	return &entity.UserProfile{
		Name:            name,
		Institution:     institution,
		Registered:      registered,
		HasActiveLoan:   hasActiveLoan,
		ReputationScore: reputation,
		CredentialCount: credentials,
	}, nil
}

func (r *Reader) GetInvestorInfo(ctx context.Context, investorAddr string) (*entity.InvestorInfo, error) {
	ret, err := r.call(ctx, "getInvestorInfo(address)", Address(investorAddr))
	if err != nil {
		return nil, err
	}

	contribution, err := ret.Uint256(0)
	if err != nil {
		return nil, err
	}
	weight, err := ret.Uint64(1)
	if err != nil {
		return nil, err
	}
	rights, err := ret.Bool(2)
	if err != nil {
		return nil, err
	}

	return &entity.InvestorInfo{
		Contribution: contribution.String(),
		VotingWeight: weight,
		VotingRights: rights,
	}, nil
}

func (r *Reader) GetInvestmentPoolInfo(ctx context.Context) (*entity.PoolInfo, error) {
	ret, err := r.call(ctx, "getInvestmentPoolInfo()")
	if err != nil {
		return nil, err
	}

	info := &entity.PoolInfo{}
	for slot, target := range []*string{
		&info.TotalPool, &info.InsurancePool, &info.AllocatedFunds, &info.AvailableFunds,
	} {
		v, err := ret.Uint256(slot)
		if err != nil {
			return nil, err
		}
		*target = v.String()
	}
	return info, nil
}

func (r *Reader) GetLoanSummary(ctx context.Context, loanID uint64) (*entity.LoanSummary, error) {
	ret, err := r.call(ctx, "getLoanSummary(uint256)", Uint64Arg(loanID))
	if err != nil {
		return nil, err
	}

	id, err := ret.Uint64(0)
	if err != nil {
		return nil, err
	}
	borrower, err := ret.AddressAt(1)
	if err != nil {
		return nil, err
	}
	amount, err := ret.Uint256(2)
	if err != nil {
		return nil, err
	}
	termMonths, err := ret.Uint64(3)
	if err != nil {
		return nil, err
	}
	profitShare, err := ret.Uint64(4)
	if err != nil {
		return nil, err
	}
	statusRaw, err := ret.Uint64(5)
	if err != nil {
		return nil, err
	}
	votes, err := ret.Uint64(6)
	if err != nil {
		return nil, err
	}
	totalVoters, err := ret.Uint64(7)
	if err != nil {
		return nil, err
	}
	paid, err := ret.Uint256(8)
	if err != nil {
		return nil, err
	}
	nextDue, err := ret.Uint64(9)
	if err != nil {
		return nil, err
	}

	status := entity.LoanStatus(statusRaw)
	if !status.Valid() {
		return nil, fmt.Errorf("unknown loan status %d for loan %d", statusRaw, loanID)
	}

	return &entity.LoanSummary{
		ID:               id,
		Borrower:         borrower,
		AmountStablecoin: amount.String(),
		TermMonths:       termMonths,
		ProfitShareBps:   profitShare,
		Status:           status,
		StatusName:       status.String(),
		Votes:            votes,
		TotalVoters:      totalVoters,
		PaidAmount:       paid.String(),
		NextPaymentDue:   nextDue,
	}, nil
}

func (r *Reader) GetLoanIDsByStatus(ctx context.Context, status entity.LoanStatus) ([]uint64, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("invalid loan status %d", status)
	}
	ret, err := r.call(ctx, "getLoanIdsByStatus(uint8)", Uint8Arg(uint8(status)))
	if err != nil {
		return nil, err
	}

	raw, err := ret.Uint256SliceAt(0)
	if err != nil {
		return nil, err
	}
	ids := make([]uint64, 0, len(raw))
	for _, v := range raw {
		if !v.IsUint64() {
			return nil, fmt.Errorf("loan id overflows uint64")
		}
		ids = append(ids, v.Uint64())
	}
	return ids, nil
}

func (r *Reader) HasRole(ctx context.Context, role, userAddr string) (bool, error) {
	ret, err := r.call(ctx, "hasRole(bytes32,address)", Bytes32Hex(role), Address(userAddr))
	if err != nil {
		return false, err
	}
	return ret.Bool(0)
}

func (r *Reader) HasVotingRights(ctx context.Context, investorAddr string) (bool, error) {
	ret, err := r.call(ctx, "hasVotingRights(address)", Address(investorAddr))
	if err != nil {
		return false, err
	}
	return ret.Bool(0)
}

func (r *Reader) HasVotedOnLoan(ctx context.Context, loanID uint64, investorAddr string) (bool, error) {
	ret, err := r.call(ctx, "hasVotedOnLoan(uint256,address)", Uint64Arg(loanID), Address(investorAddr))
	if err != nil {
		return false, err
	}
	return ret.Bool(0)
}
