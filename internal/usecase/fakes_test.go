package usecase

import (
	"context"
	"fmt"
	"sync"

	"luminafi/internal/domain/entity"
	"luminafi/internal/infrastructure/chain"
)

// In-memory repository fakes shared by the use case tests.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s not found", id)
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) findBy(match func(*entity.User) bool) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if match(user) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("user not found")
}

func (r *fakeUserRepo) GetByUserID(_ context.Context, userID string) (*entity.User, error) {
	return r.findBy(func(u *entity.User) bool { return u.UserID == userID })
}

func (r *fakeUserRepo) GetByUserName(_ context.Context, userName string) (*entity.User, error) {
	return r.findBy(func(u *entity.User) bool { return u.UserName == userName })
}

func (r *fakeUserRepo) GetByWalletAddress(_ context.Context, walletAddress string) (*entity.User, error) {
	return r.findBy(func(u *entity.User) bool { return u.WalletAddress == walletAddress })
}

func (r *fakeUserRepo) List(_ context.Context) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.User, 0, len(r.users))
	for _, user := range r.users {
		copied := *user
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return fmt.Errorf("user %s not found", user.ID)
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

type fakeLenderRepo struct {
	mu      sync.Mutex
	lenders map[string]*entity.Lender
}

func newFakeLenderRepo() *fakeLenderRepo {
	return &fakeLenderRepo{lenders: map[string]*entity.Lender{}}
}

func (r *fakeLenderRepo) Create(_ context.Context, lender *entity.Lender) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *lender
	r.lenders[lender.ID] = &copied
	return nil
}

func (r *fakeLenderRepo) GetByID(_ context.Context, id string) (*entity.Lender, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lender, ok := r.lenders[id]
	if !ok {
		return nil, fmt.Errorf("lender %s not found", id)
	}
	copied := *lender
	return &copied, nil
}

func (r *fakeLenderRepo) Update(_ context.Context, lender *entity.Lender) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.lenders[lender.ID]; !ok {
		return fmt.Errorf("lender %s not found", lender.ID)
	}
	copied := *lender
	r.lenders[lender.ID] = &copied
	return nil
}

func (r *fakeLenderRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.lenders, id)
	return nil
}

type fakeCredentialRepo struct {
	mu          sync.Mutex
	credentials []entity.Credential
}

func (r *fakeCredentialRepo) Create(_ context.Context, credential *entity.Credential) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.credentials = append(r.credentials, *credential)
	return nil
}

func (r *fakeCredentialRepo) GetByID(_ context.Context, id string) (*entity.Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.credentials {
		if c.ID == id {
			copied := c
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("credential %s not found", id)
}

func (r *fakeCredentialRepo) ListByLender(_ context.Context, lenderID string) ([]entity.Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []entity.Credential{}
	for _, c := range r.credentials {
		if c.LenderID == lenderID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCredentialRepo) Update(_ context.Context, credential *entity.Credential) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, c := range r.credentials {
		if c.ID == credential.ID {
			r.credentials[i] = *credential
			return nil
		}
	}
	return fmt.Errorf("credential %s not found", credential.ID)
}

type fakeLoanRecordRepo struct {
	mu      sync.Mutex
	records []entity.LoanRecord
}

func (r *fakeLoanRecordRepo) Create(_ context.Context, loan *entity.LoanRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, *loan)
	return nil
}

func (r *fakeLoanRecordRepo) ListByLender(_ context.Context, lenderID string) ([]entity.LoanRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []entity.LoanRecord{}
	for _, rec := range r.records {
		if rec.LenderID == lenderID {
			out = append(out, rec)
		}
	}
	return out, nil
}

// fakeReader answers contract views from canned values.
type fakeReader struct {
	profile      *entity.UserProfile
	profileErr   error
	investor     *entity.InvestorInfo
	investorErr  error
	pool         *entity.PoolInfo
	poolErr      error
	summaries    map[uint64]*entity.LoanSummary
	summaryErr   error
	loanIDs      []uint64
	loanIDsErr   error
	roles        map[string]bool
	votingRights bool
	voted        bool
	votedErr     error
}

func (r *fakeReader) GetUserProfile(context.Context, string) (*entity.UserProfile, error) {
	return r.profile, r.profileErr
}

func (r *fakeReader) GetInvestorInfo(context.Context, string) (*entity.InvestorInfo, error) {
	return r.investor, r.investorErr
}

func (r *fakeReader) GetInvestmentPoolInfo(context.Context) (*entity.PoolInfo, error) {
	return r.pool, r.poolErr
}

func (r *fakeReader) GetLoanSummary(_ context.Context, loanID uint64) (*entity.LoanSummary, error) {
	if r.summaryErr != nil {
		return nil, r.summaryErr
	}
	summary, ok := r.summaries[loanID]
	if !ok {
		return nil, fmt.Errorf("loan %d not found", loanID)
	}
	return summary, nil
}

func (r *fakeReader) GetLoanIDsByStatus(context.Context, entity.LoanStatus) ([]uint64, error) {
	return r.loanIDs, r.loanIDsErr
}

func (r *fakeReader) HasRole(_ context.Context, role, _ string) (bool, error) {
	return r.roles[role], nil
}

func (r *fakeReader) HasVotingRights(context.Context, string) (bool, error) {
	return r.votingRights, nil
}

func (r *fakeReader) HasVotedOnLoan(context.Context, uint64, string) (bool, error) {
	return r.voted, r.votedErr
}

// fakeWriter records write calls and returns a fixed outcome.
type fakeWriter struct {
	mu      sync.Mutex
	calls   []string
	outcome chain.TxOutcome
}

func okWriter() *fakeWriter {
	return &fakeWriter{outcome: chain.TxOutcome{Hash: "0xhash", Success: true}}
}

func (w *fakeWriter) record(call string) chain.TxOutcome {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.calls = append(w.calls, call)
	return w.outcome
}

func (w *fakeWriter) RegisterAsBorrower(_ context.Context, name, institution string) chain.TxOutcome {
	return w.record("registerAsBorrower:" + name + ":" + institution)
}

func (w *fakeWriter) RegisterAsInvestor(_ context.Context, name, institution string) chain.TxOutcome {
	return w.record("registerAsInvestor:" + name + ":" + institution)
}

func (w *fakeWriter) InvestInLuminaFi(_ context.Context, amount string) chain.TxOutcome {
	return w.record("invest:" + amount)
}

func (w *fakeWriter) WithdrawInvestment(_ context.Context, amount string) chain.TxOutcome {
	return w.record("withdraw:" + amount)
}

func (w *fakeWriter) RequestLoan(_ context.Context, amount string, termYears int, profitShareBps uint64, reason, _ string) chain.TxOutcome {
	return w.record(fmt.Sprintf("requestLoan:%s:%d:%d:%s", amount, termYears, profitShareBps, reason))
}

func (w *fakeWriter) VoteForLoan(_ context.Context, loanID uint64) chain.TxOutcome {
	return w.record(fmt.Sprintf("vote:%d", loanID))
}

func (w *fakeWriter) MakePayment(_ context.Context, loanID uint64, amount string) chain.TxOutcome {
	return w.record(fmt.Sprintf("payment:%d:%s", loanID, amount))
}

func (w *fakeWriter) DefaultLoan(_ context.Context, loanID uint64) chain.TxOutcome {
	return w.record(fmt.Sprintf("default:%d", loanID))
}

func (w *fakeWriter) AddCredential(_ context.Context, credentialHash string) chain.TxOutcome {
	return w.record("addCredential:" + credentialHash)
}

func (w *fakeWriter) VerifyCredential(_ context.Context, userAddr string, index uint64) chain.TxOutcome {
	return w.record(fmt.Sprintf("verifyCredential:%s:%d", userAddr, index))
}

func (w *fakeWriter) ApproveSpend(_ context.Context, amount string) chain.TxOutcome {
	return w.record("approve:" + amount)
}

func (w *fakeWriter) callCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.calls)
}

type fakeIdentity struct {
	tokens map[string]*IdentityToken
}

func (f *fakeIdentity) VerifyToken(_ context.Context, token string) (*IdentityToken, error) {
	if t, ok := f.tokens[token]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("invalid token")
}
