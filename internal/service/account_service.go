package service

import (
	"context"

	"chirp/internal/models"
	"chirp/internal/repository"
	"chirp/internal/validation"
)

// AccountService provides profile lookups and account lifecycle.
type AccountService struct {
	accounts repository.AccountRepository
}

// RegisterAccountInput is the payload for creating an account.
type RegisterAccountInput struct {
	Handle string
	Name   string
}

// NewAccountService returns a new AccountService.
func NewAccountService(accounts repository.AccountRepository) *AccountService {
	return &AccountService{accounts: accounts}
}

// Profile returns the account and its follow connections.
func (s *AccountService) Profile(ctx context.Context, q models.ProfileQuery) (*models.Profile, error) {
	var profile *models.Profile
	err := traced(ctx, "AccountService", "Profile", func(ctx context.Context) error {
		var err error
		profile, err = s.accounts.ProfileWithConnections(ctx, q)
		return err
	})
	return profile, err
}

// Register validates and stores a new account.
func (s *AccountService) Register(ctx context.Context, in RegisterAccountInput) (*models.Account, error) {
	if err := validation.ValidateHandle(in.Handle); err != nil {
		return nil, models.NewInvalidArgumentError(err.Error())
	}
	if err := validation.ValidateDisplayName(in.Name); err != nil {
		return nil, models.NewInvalidArgumentError(err.Error())
	}

	account := &models.Account{Handle: in.Handle, DisplayName: in.Name}
	err := traced(ctx, "AccountService", "Register", func(ctx context.Context) error {
		return s.accounts.Create(ctx, account)
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

// Delete removes an account along with everything it owns.
func (s *AccountService) Delete(ctx context.Context, handle string) error {
	return traced(ctx, "AccountService", "Delete", func(ctx context.Context) error {
		id, ok, err := s.accounts.IDByHandle(ctx, handle)
		if err != nil {
			return err
		}
		if !ok {
			return models.NewNotFoundMessage("account does not exist")
		}
		return s.accounts.Delete(ctx, id)
	})
}
