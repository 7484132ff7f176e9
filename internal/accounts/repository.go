package accounts

import "github.com/uploadstudio/backend/internal/models"

// Repository persists the connected accounts, grouped by platform on disk.
type Repository interface {
	Load() ([]*models.Account, error)
	Save(accounts []*models.Account) error
}
