package usecase

import (
	"context"

	"luminafi/internal/domain/entity"
	"luminafi/internal/infrastructure/chain"
	"luminafi/pkg/errors"
)

type InvestorUseCase struct {
	reader ContractReader
	writer ContractWriter
	notify func(wallet, event string, payload any)
}

func NewInvestorUseCase(reader ContractReader, writer ContractWriter, notify func(wallet, event string, payload any)) *InvestorUseCase {
	if notify == nil {
		notify = func(string, string, any) {}
	}
	return &InvestorUseCase{reader: reader, writer: writer, notify: notify}
}

func (uc *InvestorUseCase) RegisterInvestor(ctx context.Context, session *entity.Session, name, institution string) chain.TxOutcome {
	outcome := uc.writer.RegisterAsInvestor(ctx, name, institution)
	if outcome.Success {
		uc.notify(session.WalletAddress, "investor_registered", outcome)
	}
	return outcome
}

func (uc *InvestorUseCase) Invest(ctx context.Context, session *entity.Session, amount string) chain.TxOutcome {
	outcome := uc.writer.InvestInLuminaFi(ctx, amount)
	if outcome.Success {
		uc.notify(session.WalletAddress, "investment_made", outcome)
	}
	return outcome
}

func (uc *InvestorUseCase) Withdraw(ctx context.Context, session *entity.Session, amount string) chain.TxOutcome {
	outcome := uc.writer.WithdrawInvestment(ctx, amount)
	if outcome.Success {
		uc.notify(session.WalletAddress, "withdrawal_made", outcome)
	}
	return outcome
}

func (uc *InvestorUseCase) ApproveSpend(ctx context.Context, amount string) chain.TxOutcome {
	return uc.writer.ApproveSpend(ctx, amount)
}

// Dashboard is what the investor dashboard renders above its tabs: the
// caller's investor info and the pool aggregates, fetched concurrently.
type Dashboard struct {
	Investor *entity.InvestorInfo `json:"investor"`
	Pool     *entity.PoolInfo     `json:"pool"`
}

func (uc *InvestorUseCase) GetDashboard(ctx context.Context, walletAddress string) (*Dashboard, error) {
	dashboard := &Dashboard{}

	agg := NewAggregate(ctx,
		func(ctx context.Context) error {
			info, err := uc.reader.GetInvestorInfo(ctx, walletAddress)
			if err != nil {
				return err
			}
			dashboard.Investor = info
			return nil
		},
		func(ctx context.Context) error {
			pool, err := uc.reader.GetInvestmentPoolInfo(ctx)
			if err != nil {
				return err
			}
			dashboard.Pool = pool
			return nil
		},
	)
	if res := agg.Wait(ctx); res.State != AggregateReady {
		return nil, errors.ChainError("Failed to fetch investor dashboard", res.Err)
	}
	return dashboard, nil
}

func (uc *InvestorUseCase) GetPool(ctx context.Context) (*entity.PoolInfo, error) {
	pool, err := uc.reader.GetInvestmentPoolInfo(ctx)
	if err != nil {
		return nil, errors.ChainError("Failed to fetch pool info", err)
	}
	return pool, nil
}
