package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"luminafi/internal/domain/entity"
	"luminafi/internal/infrastructure/chain"
	"luminafi/pkg/errors"
)

const testWallet = "0x1111111111111111111111111111111111111111"

func testSession() *entity.Session {
	return &entity.Session{IdentityID: "u1", WalletAddress: testWallet, WalletConnected: true}
}

func TestRequestLoanConvertsAndMirrors(t *testing.T) {
	userRepo := newFakeUserRepo()
	loanRepo := &fakeLoanRecordRepo{}
	writer := okWriter()

	require.NoError(t, userRepo.Create(context.Background(), &entity.User{
		ID: "id1", UserID: "u-1", WalletAddress: testWallet, Role: entity.RoleLender, RoleID: "lender-1",
	}))

	var notified []string
	uc := NewLoanUseCase(&fakeReader{}, writer, userRepo, loanRepo, func(wallet, event string, _ any) {
		notified = append(notified, wallet+":"+event)
	})

	outcome, err := uc.RequestLoan(context.Background(), testSession(), RequestLoanInput{
		Amount:      "100",
		TermYears:   2,
		ProfitShare: 5,
		Reason:      "tuition",
	})
	require.NoError(t, err)
	require.True(t, outcome.Success)

	// Percent slider became basis points, years became the raw term.
	assert.Equal(t, []string{"requestLoan:100:2:500:tuition"}, writer.calls)
	assert.Equal(t, []string{testWallet + ":loan_requested"}, notified)

	records, err := loanRepo.ListByLender(context.Background(), "lender-1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 100.0, records[0].Amount)
	assert.Equal(t, 24, records[0].TermMonths)
	assert.Equal(t, "0xhash", records[0].TxHash)
}

func TestRequestLoanRejectsBadProfitShare(t *testing.T) {
	writer := okWriter()
	uc := NewLoanUseCase(&fakeReader{}, writer, newFakeUserRepo(), &fakeLoanRecordRepo{}, nil)

	outcome, err := uc.RequestLoan(context.Background(), testSession(), RequestLoanInput{
		Amount: "100", TermYears: 2, ProfitShare: 150, Reason: "r",
	})
	require.NoError(t, err)
	assert.False(t, outcome.Success)
	assert.NotEmpty(t, outcome.Err)
	assert.Zero(t, writer.callCount())
}

func TestRequestLoanWithoutMirrorAccount(t *testing.T) {
	// On-chain submission succeeds even when no user document exists.
	writer := okWriter()
	loanRepo := &fakeLoanRecordRepo{}
	uc := NewLoanUseCase(&fakeReader{}, writer, newFakeUserRepo(), loanRepo, nil)

	outcome, err := uc.RequestLoan(context.Background(), testSession(), RequestLoanInput{
		Amount: "100", TermYears: 1, ProfitShare: 5, Reason: "r",
	})
	require.NoError(t, err)
	assert.True(t, outcome.Success)
	assert.Empty(t, loanRepo.records)
}

func TestVotePreChecks(t *testing.T) {
	writer := okWriter()

	// Already voted.
	uc := NewLoanUseCase(&fakeReader{voted: true}, writer, newFakeUserRepo(), &fakeLoanRecordRepo{}, nil)
	outcome := uc.Vote(context.Background(), testSession(), 1)
	assert.Contains(t, outcome.Err, "already voted")
	assert.Zero(t, writer.callCount())

	// No voting rights.
	uc = NewLoanUseCase(&fakeReader{votingRights: false}, writer, newFakeUserRepo(), &fakeLoanRecordRepo{}, nil)
	outcome = uc.Vote(context.Background(), testSession(), 1)
	assert.Contains(t, outcome.Err, "no voting rights")
	assert.Zero(t, writer.callCount())

	// Clear checks submit.
	uc = NewLoanUseCase(&fakeReader{votingRights: true}, writer, newFakeUserRepo(), &fakeLoanRecordRepo{}, nil)
	outcome = uc.Vote(context.Background(), testSession(), 1)
	assert.True(t, outcome.Success)
	assert.Equal(t, 1, writer.callCount())
}

func TestVoteReadFailureIsDisplayable(t *testing.T) {
	reader := &fakeReader{votedErr: fmt.Errorf("rpc error -32000: node down")}
	uc := NewLoanUseCase(reader, okWriter(), newFakeUserRepo(), &fakeLoanRecordRepo{}, nil)

	outcome := uc.Vote(context.Background(), testSession(), 1)
	assert.False(t, outcome.Success)
	assert.Contains(t, outcome.Err, "node down")
}

func TestListLoansByStatusPreservesOrder(t *testing.T) {
	reader := &fakeReader{
		loanIDs: []uint64{5, 2, 9},
		summaries: map[uint64]*entity.LoanSummary{
			2: {ID: 2, Status: entity.LoanPending},
			5: {ID: 5, Status: entity.LoanPending},
			9: {ID: 9, Status: entity.LoanPending},
		},
	}
	uc := NewLoanUseCase(reader, okWriter(), newFakeUserRepo(), &fakeLoanRecordRepo{}, nil)

	loans, err := uc.ListLoansByStatus(context.Background(), entity.LoanPending)
	require.NoError(t, err)
	require.Len(t, loans, 3)
	assert.Equal(t, uint64(5), loans[0].ID)
	assert.Equal(t, uint64(2), loans[1].ID)
	assert.Equal(t, uint64(9), loans[2].ID)
}

func TestListLoansByStatusFailsOnAnySummary(t *testing.T) {
	reader := &fakeReader{
		loanIDs:   []uint64{1, 2},
		summaries: map[uint64]*entity.LoanSummary{1: {ID: 1}},
	}
	uc := NewLoanUseCase(reader, okWriter(), newFakeUserRepo(), &fakeLoanRecordRepo{}, nil)

	_, err := uc.ListLoansByStatus(context.Background(), entity.LoanPending)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "CHAIN_ERROR"))
}

func TestGetLoanWrapsChainError(t *testing.T) {
	reader := &fakeReader{summaryErr: fmt.Errorf("revert")}
	uc := NewLoanUseCase(reader, okWriter(), newFakeUserRepo(), &fakeLoanRecordRepo{}, nil)

	_, err := uc.GetLoan(context.Background(), 1)
	assert.True(t, errors.Is(err, "CHAIN_ERROR"))
}

func TestNotifyOnlyOnSuccess(t *testing.T) {
	var mu sync.Mutex
	var events []string
	notify := func(_, event string, _ any) {
		mu.Lock()
		events = append(events, event)
		mu.Unlock()
	}

	failing := &fakeWriter{outcome: chain.TxOutcome{Err: "reverted"}}
	uc := NewLoanUseCase(&fakeReader{votingRights: true}, failing, newFakeUserRepo(), &fakeLoanRecordRepo{}, notify)

	uc.RegisterBorrower(context.Background(), testSession(), "Amina", "UNILAG")
	uc.MakePayment(context.Background(), testSession(), 1, "10")
	uc.AddCredential(context.Background(), testSession(), "QmHash")

	mu.Lock()
	defer mu.Unlock()
	assert.Empty(t, events)
}
