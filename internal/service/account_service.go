package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/limbo/regimen/internal/credentials"
	errorvalues "github.com/limbo/regimen/internal/error_values"
	"github.com/limbo/regimen/internal/repository"
	"github.com/limbo/regimen/pkg/entity"
)

type AccountService struct {
	repo   repository.AccountsRepositoryI
	hasher credentials.Hasher
}

func NewAccountService(accountsRepo repository.AccountsRepositoryI, hasher credentials.Hasher) *AccountService {
	return &AccountService{
		repo:   accountsRepo,
		hasher: hasher,
	}
}

func (as *AccountService) Register(ctx context.Context, req *RegisterRequest) (*entity.Account, error) {
	err := validate.Struct(*req)
	if err != nil {
		if validationError, ok := err.(validator.ValidationErrors); ok {
			err = errorvalues.ErrValidation
			for _, fieldErr := range validationError {
				err = errors.Join(err, fieldErr)
			}
			return nil, err
		}
		return nil, errors.New("validation unexpected error: " + err.Error())
	}
	passwordHash, err := as.hasher.Hash(req.Password)
	if err != nil {
		return nil, errors.New("hashing password error: " + err.Error())
	}
	account := entity.Account{
		Username:     req.Username,
		PasswordHash: passwordHash,
		Email:        req.Email,
		Gender:       req.Gender,
		Birthday:     req.Birthday,
		Age:          req.Age,
	}
	id, err := as.repo.Create(ctx, &account)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUsernameTaken) {
			return nil, err
		}
		return nil, errors.New("repository creating error: " + err.Error())
	}
	account.ID = id
	return &account, nil
}

func (as *AccountService) Login(ctx context.Context, username, password string) (*entity.Account, error) {
	account, err := as.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, errorvalues.ErrAccountNotFound) {
			// same error as a digest mismatch, so usernames can't be enumerated
			return nil, errorvalues.ErrWrongCredentials
		}
		return nil, errors.New("repository searching error: " + err.Error())
	}
	if !as.hasher.Verify(password, account.PasswordHash) {
		return nil, errorvalues.ErrWrongCredentials
	}
	return account, nil
}

func (as *AccountService) GetByID(ctx context.Context, id int64) (*entity.Account, error) {
	account, err := as.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrAccountNotFound) {
			return nil, err
		}
		return nil, errors.New("repository searching error: " + err.Error())
	}
	return account, nil
}
