package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/uploadstudio/backend/internal/accounts"
	"github.com/uploadstudio/backend/internal/models"
	"github.com/uploadstudio/backend/pkg/logger"
	"github.com/uploadstudio/backend/pkg/utils"
)

type accountsUC struct {
	repo   accounts.Repository
	logger logger.Logger

	mu   sync.Mutex
	list []*models.Account
}

func NewAccountsUseCase(repo accounts.Repository, log logger.Logger) accounts.UseCase {
	uc := &accountsUC{repo: repo, logger: log}
	list, err := repo.Load()
	if err != nil {
		log.Errorf("accounts: loading registry: %v", err)
		list = nil
	}
	uc.list = list
	return uc
}

func (a *accountsUC) GetAccounts(ctx context.Context) []*models.Account {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.copyLocked(func(*models.Account) bool { return true })
}

func (a *accountsUC) GetAccountsForPlatform(ctx context.Context, platform string) []*models.Account {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.copyLocked(func(acc *models.Account) bool { return acc.Platform == platform })
}

func (a *accountsUC) GetAccount(ctx context.Context, id string) (*models.Account, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	account := a.findLocked(id)
	if account == nil {
		return nil, errors.Wrap(accounts.ErrNotFound, id)
	}
	cp := *account
	return &cp, nil
}

func (a *accountsUC) AddAccount(ctx context.Context, account *models.Account) (*models.Account, error) {
	if err := utils.ValidateStruct(ctx, account); err != nil {
		return nil, errors.Wrap(err, "accounts.AddAccount.ValidateStruct")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	account.ID = uuid.New().String()
	account.AddedAt = time.Now()
	// The first account of a platform becomes its default.
	account.IsDefault = len(a.filterLocked(account.Platform)) == 0
	a.list = append(a.list, account)
	a.persistLocked()

	cp := *account
	return &cp, nil
}

func (a *accountsUC) UpdateAccount(ctx context.Context, id string, upd *models.AccountUpdate) (*models.Account, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	account := a.findLocked(id)
	if account == nil {
		return nil, errors.Wrap(accounts.ErrNotFound, id)
	}
	if upd.Name != nil {
		account.Name = *upd.Name
	}
	if upd.Email != nil {
		account.Email = *upd.Email
	}
	if upd.ChannelID != nil {
		account.ChannelID = *upd.ChannelID
	}
	account.UpdatedAt = time.Now()
	a.persistLocked()

	cp := *account
	return &cp, nil
}

func (a *accountsUC) RemoveAccount(ctx context.Context, id string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	for i, account := range a.list {
		if account.ID == id {
			wasDefault := account.IsDefault
			platform := account.Platform
			a.list = append(a.list[:i], a.list[i+1:]...)
			if wasDefault {
				if remaining := a.filterLocked(platform); len(remaining) > 0 {
					remaining[0].IsDefault = true
				}
			}
			a.persistLocked()
			return true
		}
	}
	return false
}

// SetDefaultAccount makes the account the single default of its platform.
func (a *accountsUC) SetDefaultAccount(ctx context.Context, id string) (*models.Account, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	account := a.findLocked(id)
	if account == nil {
		return nil, errors.Wrap(accounts.ErrNotFound, id)
	}
	for _, other := range a.filterLocked(account.Platform) {
		other.IsDefault = other.ID == id
	}
	account.UpdatedAt = time.Now()
	a.persistLocked()

	cp := *account
	return &cp, nil
}

func (a *accountsUC) GetDefaultAccount(ctx context.Context, platform string) (*models.Account, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, account := range a.filterLocked(platform) {
		if account.IsDefault {
			cp := *account
			return &cp, nil
		}
	}
	return nil, errors.Wrap(accounts.ErrNotFound, platform)
}

func (a *accountsUC) findLocked(id string) *models.Account {
	for _, account := range a.list {
		if account.ID == id {
			return account
		}
	}
	return nil
}

func (a *accountsUC) filterLocked(platform string) []*models.Account {
	var out []*models.Account
	for _, account := range a.list {
		if account.Platform == platform {
			out = append(out, account)
		}
	}
	return out
}

func (a *accountsUC) copyLocked(match func(*models.Account) bool) []*models.Account {
	out := make([]*models.Account, 0, len(a.list))
	for _, account := range a.list {
		if match(account) {
			cp := *account
			out = append(out, &cp)
		}
	}
	return out
}

func (a *accountsUC) persistLocked() {
	if err := a.repo.Save(a.list); err != nil {
		a.logger.Errorf("accounts: saving registry: %v", err)
	}
}
