package usecase

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"luminafi/internal/domain/entity"
	"luminafi/internal/domain/repository"
	"luminafi/internal/infrastructure/chain"
	"luminafi/pkg/errors"
)

// ContractWriter is the write half of the binding layer. Every method
// returns a non-throwing TxOutcome; failures are strings for display.
type ContractWriter interface {
	RegisterAsBorrower(ctx context.Context, name, institution string) chain.TxOutcome
	RegisterAsInvestor(ctx context.Context, name, institution string) chain.TxOutcome
	InvestInLuminaFi(ctx context.Context, amount string) chain.TxOutcome
	WithdrawInvestment(ctx context.Context, amount string) chain.TxOutcome
	RequestLoan(ctx context.Context, amount string, termYears int, profitShareBps uint64, reason, documentsHash string) chain.TxOutcome
	VoteForLoan(ctx context.Context, loanID uint64) chain.TxOutcome
	MakePayment(ctx context.Context, loanID uint64, amount string) chain.TxOutcome
	DefaultLoan(ctx context.Context, loanID uint64) chain.TxOutcome
	AddCredential(ctx context.Context, credentialHash string) chain.TxOutcome
	VerifyCredential(ctx context.Context, userAddr string, index uint64) chain.TxOutcome
	ApproveSpend(ctx context.Context, amount string) chain.TxOutcome
}

type LoanUseCase struct {
	reader   ContractReader
	writer   ContractWriter
	userRepo repository.UserRepository
	loanRepo repository.LoanRecordRepository
	notify   func(wallet, event string, payload any)
}

func NewLoanUseCase(reader ContractReader, writer ContractWriter, userRepo repository.UserRepository, loanRepo repository.LoanRecordRepository, notify func(wallet, event string, payload any)) *LoanUseCase {
	if notify == nil {
		notify = func(string, string, any) {}
	}
	return &LoanUseCase{
		reader:   reader,
		writer:   writer,
		userRepo: userRepo,
		loanRepo: loanRepo,
		notify:   notify,
	}
}

type RequestLoanInput struct {
	Amount        string
	TermYears     int
	ProfitShare   float64
	Reason        string
	DocumentsHash string
}

// RequestLoan converts the user-facing profit share (0-100 slider) to basis
// points, submits the transaction and, on success, mirrors the application
// into a loan record for the dashboard joins.
func (uc *LoanUseCase) RequestLoan(ctx context.Context, session *entity.Session, input RequestLoanInput) (chain.TxOutcome, error) {
	bps, err := chain.PercentToBasisPoints(input.ProfitShare)
	if err != nil {
		return chain.TxOutcome{Err: err.Error()}, nil
	}

	outcome := uc.writer.RequestLoan(ctx, input.Amount, input.TermYears, bps, input.Reason, input.DocumentsHash)
	if !outcome.Success {
		return outcome, nil
	}

	uc.notify(session.WalletAddress, "loan_requested", outcome)

	user, err := uc.userRepo.GetByWalletAddress(ctx, session.WalletAddress)
	if err != nil || user == nil || user.RoleID == "" {
		// On-chain submission stands on its own; the mirror record is
		// best-effort for accounts created outside the document flow.
		return outcome, nil
	}

	months, _ := chain.YearsToMonths(input.TermYears)
	// The writer already validated the amount string, so the parse here
	// cannot fail for a submitted transaction.
	amount, _ := strconv.ParseFloat(input.Amount, 64)
	record := &entity.LoanRecord{
		ID:         uuid.NewString(),
		LenderID:   user.RoleID,
		Amount:     amount,
		TermMonths: int(months),
		Reason:     input.Reason,
		TxHash:     outcome.Hash,
		CreatedAt:  time.Now(),
	}
	if err := uc.loanRepo.Create(ctx, record); err != nil {
		return outcome, errors.Internal("Failed to record loan application", err)
	}
	return outcome, nil
}

func (uc *LoanUseCase) RegisterBorrower(ctx context.Context, session *entity.Session, name, institution string) chain.TxOutcome {
	outcome := uc.writer.RegisterAsBorrower(ctx, name, institution)
	if outcome.Success {
		uc.notify(session.WalletAddress, "borrower_registered", outcome)
	}
	return outcome
}

func (uc *LoanUseCase) Vote(ctx context.Context, session *entity.Session, loanID uint64) chain.TxOutcome {
	voted, err := uc.reader.HasVotedOnLoan(ctx, loanID, session.WalletAddress)
	if err != nil {
		return chain.TxOutcome{Err: "could not check existing vote: " + err.Error()}
	}
	if voted {
		return chain.TxOutcome{Err: "already voted on this loan"}
	}

	rights, err := uc.reader.HasVotingRights(ctx, session.WalletAddress)
	if err != nil {
		return chain.TxOutcome{Err: "could not check voting rights: " + err.Error()}
	}
	if !rights {
		return chain.TxOutcome{Err: "no voting rights for this wallet"}
	}

	outcome := uc.writer.VoteForLoan(ctx, loanID)
	if outcome.Success {
		uc.notify(session.WalletAddress, "vote_cast", outcome)
	}
	return outcome
}

func (uc *LoanUseCase) MakePayment(ctx context.Context, session *entity.Session, loanID uint64, amount string) chain.TxOutcome {
	outcome := uc.writer.MakePayment(ctx, loanID, amount)
	if outcome.Success {
		uc.notify(session.WalletAddress, "payment_made", outcome)
	}
	return outcome
}

func (uc *LoanUseCase) DefaultLoan(ctx context.Context, loanID uint64) chain.TxOutcome {
	return uc.writer.DefaultLoan(ctx, loanID)
}

func (uc *LoanUseCase) AddCredential(ctx context.Context, session *entity.Session, hash string) chain.TxOutcome {
	outcome := uc.writer.AddCredential(ctx, hash)
	if outcome.Success {
		uc.notify(session.WalletAddress, "credential_added", outcome)
	}
	return outcome
}

func (uc *LoanUseCase) VerifyCredential(ctx context.Context, userAddr string, index uint64) chain.TxOutcome {
	return uc.writer.VerifyCredential(ctx, userAddr, index)
}

func (uc *LoanUseCase) GetLoan(ctx context.Context, loanID uint64) (*entity.LoanSummary, error) {
	summary, err := uc.reader.GetLoanSummary(ctx, loanID)
	if err != nil {
		return nil, errors.ChainError("Failed to fetch loan", err)
	}
	return summary, nil
}

// ListLoansByStatus fetches the id list for a status, then the summaries
// concurrently, joined through Aggregate. Result order follows the id list
// regardless of fetch completion order.
func (uc *LoanUseCase) ListLoansByStatus(ctx context.Context, status entity.LoanStatus) ([]entity.LoanSummary, error) {
	ids, err := uc.reader.GetLoanIDsByStatus(ctx, status)
	if err != nil {
		return nil, errors.ChainError("Failed to fetch loan ids", err)
	}

	summaries := make([]*entity.LoanSummary, len(ids))
	var mu sync.Mutex
	fetches := make([]func(ctx context.Context) error, 0, len(ids))
	for i, id := range ids {
		i, id := i, id
		fetches = append(fetches, func(ctx context.Context) error {
			summary, err := uc.reader.GetLoanSummary(ctx, id)
			if err != nil {
				return err
			}
			mu.Lock()
			summaries[i] = summary
			mu.Unlock()
			return nil
		})
	}

	if res := NewAggregate(ctx, fetches...).Wait(ctx); res.State != AggregateReady {
		return nil, errors.ChainError("Failed to fetch loan summaries", res.Err)
	}

	out := make([]entity.LoanSummary, 0, len(summaries))
	for _, s := range summaries {
		if s != nil {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (uc *LoanUseCase) GetProfile(ctx context.Context, walletAddress string) (*entity.UserProfile, error) {
	profile, err := uc.reader.GetUserProfile(ctx, walletAddress)
	if err != nil {
		return nil, errors.ChainError("Failed to fetch profile", err)
	}
	return profile, nil
}
