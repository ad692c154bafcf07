package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"luminafi/internal/domain/entity"
	"luminafi/internal/infrastructure/chain"
	"luminafi/internal/usecase"
)

type gateReader struct{}

func (gateReader) GetUserProfile(context.Context, string) (*entity.UserProfile, error) {
	return &entity.UserProfile{Registered: true}, nil
}

func (gateReader) GetInvestorInfo(context.Context, string) (*entity.InvestorInfo, error) {
	return &entity.InvestorInfo{}, nil
}

func (gateReader) GetInvestmentPoolInfo(context.Context) (*entity.PoolInfo, error) {
	return &entity.PoolInfo{}, nil
}

func (gateReader) GetLoanSummary(context.Context, uint64) (*entity.LoanSummary, error) {
	return nil, fmt.Errorf("not implemented")
}

func (gateReader) GetLoanIDsByStatus(context.Context, entity.LoanStatus) ([]uint64, error) {
	return nil, nil
}

func (gateReader) HasRole(context.Context, string, string) (bool, error) { return false, nil }
func (gateReader) HasVotingRights(context.Context, string) (bool, error) { return false, nil }
func (gateReader) HasVotedOnLoan(context.Context, uint64, string) (bool, error) {
	return false, nil
}

type gateWriter struct{}

func (gateWriter) outcome() chain.TxOutcome { return chain.TxOutcome{Success: true} }

func (w gateWriter) RegisterAsBorrower(context.Context, string, string) chain.TxOutcome {
	return w.outcome()
}

func (w gateWriter) RegisterAsInvestor(context.Context, string, string) chain.TxOutcome {
	return w.outcome()
}

func (w gateWriter) InvestInLuminaFi(context.Context, string) chain.TxOutcome { return w.outcome() }

func (w gateWriter) WithdrawInvestment(context.Context, string) chain.TxOutcome {
	return w.outcome()
}

func (w gateWriter) RequestLoan(context.Context, string, int, uint64, string, string) chain.TxOutcome {
	return w.outcome()
}

func (w gateWriter) VoteForLoan(context.Context, uint64) chain.TxOutcome { return w.outcome() }

func (w gateWriter) MakePayment(context.Context, uint64, string) chain.TxOutcome {
	return w.outcome()
}

func (w gateWriter) DefaultLoan(context.Context, uint64) chain.TxOutcome { return w.outcome() }

func (w gateWriter) AddCredential(context.Context, string) chain.TxOutcome { return w.outcome() }

func (w gateWriter) ApproveSpend(context.Context, string) chain.TxOutcome { return w.outcome() }

func (w gateWriter) VerifyCredential(context.Context, string, uint64) chain.TxOutcome {
	return w.outcome()
}

type nilUserRepo struct{}

func (nilUserRepo) Create(context.Context, *entity.User) error { return nil }
func (nilUserRepo) GetByID(context.Context, string) (*entity.User, error) {
	return nil, fmt.Errorf("not found")
}
func (nilUserRepo) GetByUserID(context.Context, string) (*entity.User, error) {
	return nil, fmt.Errorf("not found")
}
func (nilUserRepo) GetByUserName(context.Context, string) (*entity.User, error) {
	return nil, fmt.Errorf("not found")
}
func (nilUserRepo) GetByWalletAddress(context.Context, string) (*entity.User, error) {
	return nil, fmt.Errorf("not found")
}
func (nilUserRepo) List(context.Context) ([]*entity.User, error) { return nil, nil }
func (nilUserRepo) Update(context.Context, *entity.User) error { return nil }
func (nilUserRepo) Delete(context.Context, string) error { return nil }

func newTestGateMiddleware() *GateMiddleware {
	loans := usecase.NewLoanUseCase(gateReader{}, gateWriter{}, nilUserRepo{}, nil, nil)
	investors := usecase.NewInvestorUseCase(gateReader{}, gateWriter{}, nil)
	factory := func() *usecase.SessionGate {
		return usecase.NewSessionGate(time.Millisecond, time.Millisecond, nil)
	}
	return NewGateMiddleware(factory, loans, investors)
}

func gateRequest(session *entity.Session) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/dashboard/investor", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if session != nil {
		c.Set(sessionContextKey, session)
	}
	return c, rec
}

func TestGateMiddlewareAuthorizes(t *testing.T) {
	m := newTestGateMiddleware()
	c, rec := gateRequest(&entity.Session{
		IdentityID:      "u1",
		WalletAddress:   "0x1111111111111111111111111111111111111111",
		WalletConnected: true,
	})

	called := false
	handler := m.Authorize(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	require.NoError(t, handler(c))
	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGateMiddlewareRedirectsWithoutSession(t *testing.T) {
	m := newTestGateMiddleware()
	c, rec := gateRequest(nil)

	handler := m.Authorize(func(c echo.Context) error {
		t.Fatal("handler must not run")
		return nil
	})

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), usecase.LoginRoute)
	assert.Contains(t, rec.Body.String(), "redirecting")
}

func TestGateMiddlewareRedirectsWithoutWallet(t *testing.T) {
	m := newTestGateMiddleware()
	c, rec := gateRequest(&entity.Session{IdentityID: "u1"})

	handler := m.Authorize(func(c echo.Context) error {
		t.Fatal("handler must not run")
		return nil
	})

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "redirecting")
}
