package repository

import (
	"context"

	"luminafi/internal/domain/entity"
)

type LenderRepository interface {
	Create(ctx context.Context, lender *entity.Lender) error
	GetByID(ctx context.Context, id string) (*entity.Lender, error)
	Update(ctx context.Context, lender *entity.Lender) error
	Delete(ctx context.Context, id string) error
}

type CredentialRepository interface {
	Create(ctx context.Context, credential *entity.Credential) error
	GetByID(ctx context.Context, id string) (*entity.Credential, error)
	ListByLender(ctx context.Context, lenderID string) ([]entity.Credential, error)
	Update(ctx context.Context, credential *entity.Credential) error
}

type LoanRecordRepository interface {
	Create(ctx context.Context, loan *entity.LoanRecord) error
	ListByLender(ctx context.Context, lenderID string) ([]entity.LoanRecord, error)
}
