package accounts

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uploadstudio/backend/internal/models"
)

// ErrNotFound is returned for operations on unknown account ids.
var ErrNotFound = errors.New("account not found")

// UseCase manages the registry of connected platform accounts. The rest of
// the system only ever consumes the account id.
type UseCase interface {
	GetAccounts(ctx context.Context) []*models.Account
	GetAccountsForPlatform(ctx context.Context, platform string) []*models.Account
	GetAccount(ctx context.Context, id string) (*models.Account, error)
	AddAccount(ctx context.Context, account *models.Account) (*models.Account, error)
	UpdateAccount(ctx context.Context, id string, upd *models.AccountUpdate) (*models.Account, error)
	RemoveAccount(ctx context.Context, id string) bool
	SetDefaultAccount(ctx context.Context, id string) (*models.Account, error)
	GetDefaultAccount(ctx context.Context, platform string) (*models.Account, error)
}
