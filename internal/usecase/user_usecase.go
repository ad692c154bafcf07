package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"luminafi/internal/domain/entity"
	"luminafi/internal/domain/repository"
	"luminafi/pkg/errors"
	"luminafi/pkg/logger"
)

type UserUseCase struct {
	userRepo       repository.UserRepository
	lenderRepo     repository.LenderRepository
	credentialRepo repository.CredentialRepository
	loanRepo       repository.LoanRecordRepository
}

func NewUserUseCase(
	userRepo repository.UserRepository,
	lenderRepo repository.LenderRepository,
	credentialRepo repository.CredentialRepository,
	loanRepo repository.LoanRecordRepository,
) *UserUseCase {
	return &UserUseCase{
		userRepo:       userRepo,
		lenderRepo:     lenderRepo,
		credentialRepo: credentialRepo,
		loanRepo:       loanRepo,
	}
}

type CreateUserInput struct {
	UserID          string
	UserName        string
	WalletAddress   string
	FullName        string
	Role            string
	InstitutionName string
	Amount          float64
	TranscriptURL   string
	EssayURL        string
}

// CreateUser enforces the uniqueness invariant with three point queries
// before the insert: userId, userName and walletAddress must each be unused
// across the collection. A user of role lender additionally gets a lender
// document linked through roleId. The two writes are sequential, not
// transactional; a crash between them leaves a user without role data, which
// the joins tolerate.
func (uc *UserUseCase) CreateUser(ctx context.Context, input CreateUserInput) (*entity.User, error) {
	if err := uc.checkUnique(ctx, "", input.UserID, input.UserName, input.WalletAddress); err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entity.User{
		ID:            uuid.NewString(),
		UserID:        input.UserID,
		UserName:      input.UserName,
		WalletAddress: input.WalletAddress,
		FullName:      input.FullName,
		Role:          input.Role,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if input.Role == entity.RoleLender {
		lender := &entity.Lender{
			ID:              uuid.NewString(),
			Status:          entity.LenderStatusProposed,
			Amount:          input.Amount,
			InstitutionName: input.InstitutionName,
			TranscriptURL:   input.TranscriptURL,
			EssayURL:        input.EssayURL,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := uc.lenderRepo.Create(ctx, lender); err != nil {
			return nil, errors.Internal("Failed to create lender record", err)
		}
		user.RoleID = lender.ID
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, errors.Internal("Failed to create user record", err)
	}

	logger.Info("Created user %s (role=%s)", user.ID, user.Role)
	return user, nil
}

func (uc *UserUseCase) checkUnique(ctx context.Context, excludeID, userID, userName, walletAddress string) error {
	if existing, err := uc.userRepo.GetByUserID(ctx, userID); err == nil && existing != nil && existing.ID != excludeID {
		return errors.Conflict("User already exists")
	}
	if existing, err := uc.userRepo.GetByUserName(ctx, userName); err == nil && existing != nil && existing.ID != excludeID {
		return errors.Conflict("User already exists")
	}
	if existing, err := uc.userRepo.GetByWalletAddress(ctx, walletAddress); err == nil && existing != nil && existing.ID != excludeID {
		return errors.Conflict("User already exists")
	}
	return nil
}

// ListUsers returns every user with its role document joined in. A missing
// lender document does not fail the listing; the user is returned without
// role data.
func (uc *UserUseCase) ListUsers(ctx context.Context) ([]entity.UserAggregate, error) {
	users, err := uc.userRepo.List(ctx)
	if err != nil {
		return nil, errors.Internal("Failed to list users", err)
	}

	aggregates := make([]entity.UserAggregate, 0, len(users))
	for _, user := range users {
		agg := entity.UserAggregate{User: user}
		if user.RoleID != "" {
			if lender, err := uc.lenderRepo.GetByID(ctx, user.RoleID); err == nil {
				agg.RoleData = lender
			}
		}
		aggregates = append(aggregates, agg)
	}
	return aggregates, nil
}

// GetUserAggregate joins user, lender, credential and loan documents with
// sequential reads. Any join failure fails the whole read.
func (uc *UserUseCase) GetUserAggregate(ctx context.Context, id string) (*entity.UserAggregate, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}

	agg := &entity.UserAggregate{User: user}
	if user.RoleID == "" {
		return agg, nil
	}

	lender, err := uc.lenderRepo.GetByID(ctx, user.RoleID)
	if err != nil {
		return nil, errors.Internal("Failed to load lender record", err)
	}
	agg.RoleData = lender

	credentials, err := uc.credentialRepo.ListByLender(ctx, lender.ID)
	if err != nil {
		return nil, errors.Internal("Failed to load credentials", err)
	}
	agg.Credentials = credentials

	loans, err := uc.loanRepo.ListByLender(ctx, lender.ID)
	if err != nil {
		return nil, errors.Internal("Failed to load loan records", err)
	}
	agg.Loans = loans

	return agg, nil
}

type UpdateUserInput struct {
	UserName      string
	WalletAddress string
	FullName      string
}

func (uc *UserUseCase) UpdateUser(ctx context.Context, id string, input UpdateUserInput) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}

	userName := user.UserName
	if input.UserName != "" {
		userName = input.UserName
	}
	walletAddress := user.WalletAddress
	if input.WalletAddress != "" {
		walletAddress = input.WalletAddress
	}
	if err := uc.checkUnique(ctx, user.ID, user.UserID, userName, walletAddress); err != nil {
		return nil, err
	}

	user.UserName = userName
	user.WalletAddress = walletAddress
	if input.FullName != "" {
		user.FullName = input.FullName
	}
	user.UpdatedAt = time.Now()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Internal("Failed to update user record", err)
	}
	return user, nil
}

// AttachDocuments links uploaded transcript/essay URLs to the user's lender
// document (the PATCH /api/user flow after a file upload).
func (uc *UserUseCase) AttachDocuments(ctx context.Context, userID, transcriptURL, essayURL string) (*entity.Lender, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}
	if user.RoleID == "" {
		return nil, errors.NotFound("Lender", nil)
	}

	lender, err := uc.lenderRepo.GetByID(ctx, user.RoleID)
	if err != nil {
		return nil, errors.NotFound("Lender", err)
	}

	if transcriptURL != "" {
		lender.TranscriptURL = transcriptURL
	}
	if essayURL != "" {
		lender.EssayURL = essayURL
	}
	lender.UpdatedAt = time.Now()

	if err := uc.lenderRepo.Update(ctx, lender); err != nil {
		return nil, errors.Internal("Failed to update lender record", err)
	}
	return lender, nil
}

// SetLenderStatus moves an application through proposed -> accepted/rejected.
func (uc *UserUseCase) SetLenderStatus(ctx context.Context, userID, status string) (*entity.Lender, error) {
	if status != entity.LenderStatusAccepted && status != entity.LenderStatusRejected {
		return nil, errors.BadRequest("Status must be accepted or rejected", nil)
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}
	if user.RoleID == "" {
		return nil, errors.NotFound("Lender", nil)
	}

	lender, err := uc.lenderRepo.GetByID(ctx, user.RoleID)
	if err != nil {
		return nil, errors.NotFound("Lender", err)
	}
	if lender.Status != entity.LenderStatusProposed {
		return nil, errors.BadRequest("Lender application is not pending", nil)
	}

	lender.Status = status
	lender.UpdatedAt = time.Now()
	if err := uc.lenderRepo.Update(ctx, lender); err != nil {
		return nil, errors.Internal("Failed to update lender record", err)
	}
	return lender, nil
}

// DeleteUser cascades the owned lender document before removing the user.
func (uc *UserUseCase) DeleteUser(ctx context.Context, id string) error {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return errors.NotFound("User", err)
	}

	if user.RoleID != "" {
		if err := uc.lenderRepo.Delete(ctx, user.RoleID); err != nil {
			return errors.Internal("Failed to delete lender record", err)
		}
	}
	if err := uc.userRepo.Delete(ctx, id); err != nil {
		return errors.Internal("Failed to delete user record", err)
	}

	logger.Info("Deleted user %s", id)
	return nil
}
