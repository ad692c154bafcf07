package usecase

import (
	"context"
	"sync"
	"time"

	"luminafi/internal/domain/entity"
)

const LoginRoute = "/login"

type GateState int

const (
	GateInitializing GateState = iota
	GateLoading
	GateRedirecting
	GateAuthorized
)

func (s GateState) String() string {
	switch s {
	case GateInitializing:
		return "initializing"
	case GateLoading:
		return "loading"
	case GateRedirecting:
		return "redirecting"
	case GateAuthorized:
		return "authorized"
	}
	return "unknown"
}

// GateInputs are the flags the gate recomputes its state from. The two
// profile flags cover the concurrent on-chain reads the gate waits for
// before making any decision.
type GateInputs struct {
	Mounted         bool
	IdentityLoading bool
	IdentityID      string
	WalletConnected bool
	ProfileLoading  bool
	InvestorLoading bool
}

// SessionGate blocks access until the session and on-chain profile data
// resolve, then either authorizes or schedules a redirect to the login
// route. Navigation fires at most once per gate instance and is cancelled
// if the caller goes away before the redirect delay elapses.
type SessionGate struct {
	mountDelay    time.Duration
	redirectDelay time.Duration
	navigate      func(route string)
	navOnce       sync.Once
}

func NewSessionGate(mountDelay, redirectDelay time.Duration, navigate func(route string)) *SessionGate {
	if navigate == nil {
		navigate = func(string) {}
	}
	return &SessionGate{
		mountDelay:    mountDelay,
		redirectDelay: redirectDelay,
		navigate:      navigate,
	}
}

// Evaluate is the pure transition function. While anything is still loading
// no gate decision is made; once loading clears the identity and wallet
// checks decide between redirect and authorized.
func (g *SessionGate) Evaluate(in GateInputs) GateState {
	if !in.Mounted {
		return GateInitializing
	}
	if in.IdentityLoading || in.ProfileLoading || in.InvestorLoading {
		return GateLoading
	}
	if in.IdentityID == "" || !in.WalletConnected {
		return GateRedirecting
	}
	return GateAuthorized
}

type GateDecision struct {
	State    GateState
	Redirect string
}

// Resolve runs the full gate flow: one mount tick, the concurrent profile
// fetches joined through Aggregate, then the decision. Fetch errors do not
// block the gate; only the identity and wallet checks decide. When the
// decision is a redirect, navigation is scheduled after the redirect delay
// and cancelled if ctx is done first, so an abandoned request never produces
// a dangling redirect.
func (g *SessionGate) Resolve(ctx context.Context, session *entity.Session, fetches ...func(ctx context.Context) error) GateDecision {
	select {
	case <-time.After(g.mountDelay):
	case <-ctx.Done():
		return GateDecision{State: GateInitializing}
	}

	// Wait never leaves the aggregate pending; a failed join does not
	// block the gate, only a cancelled context does.
	NewAggregate(ctx, fetches...).Wait(ctx)
	if ctx.Err() != nil {
		return GateDecision{State: GateLoading}
	}

	if !session.Authenticated() {
		select {
		case <-time.After(g.redirectDelay):
			g.navOnce.Do(func() { g.navigate(LoginRoute) })
			return GateDecision{State: GateRedirecting, Redirect: LoginRoute}
		case <-ctx.Done():
			return GateDecision{State: GateLoading}
		}
	}

	return GateDecision{State: GateAuthorized}
}
