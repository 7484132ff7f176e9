package repository

import (
	"github.com/pkg/errors"
	"github.com/uploadstudio/backend/internal/accounts"
	"github.com/uploadstudio/backend/internal/models"
	"github.com/uploadstudio/backend/pkg/db/jsonfile"
)

// The on-disk document groups accounts per platform, the layout the desktop
// app has always written.
type accountsDoc map[string][]*models.Account

func emptyDoc() accountsDoc {
	return accountsDoc{
		models.PlatformYouTube:   {},
		models.PlatformTikTok:    {},
		models.PlatformInstagram: {},
	}
}

type accountsFileRepo struct {
	store *jsonfile.Store
}

func NewAccountsFileRepo(path string) (accounts.Repository, error) {
	store, err := jsonfile.NewStore(path)
	if err != nil {
		return nil, errors.Wrap(err, "accountsFileRepo.NewStore")
	}
	if err = store.Init(emptyDoc()); err != nil {
		return nil, errors.Wrap(err, "accountsFileRepo.Init")
	}
	return &accountsFileRepo{store: store}, nil
}

// Load flattens the per-platform buckets into one slice, stamping each
// account with its platform.
func (r *accountsFileRepo) Load() ([]*models.Account, error) {
	doc := accountsDoc{}
	if err := r.store.Load(&doc); err != nil {
		return nil, errors.Wrap(err, "accountsFileRepo.Load")
	}
	var out []*models.Account
	for platform, list := range doc {
		for _, account := range list {
			account.Platform = platform
			out = append(out, account)
		}
	}
	return out, nil
}

func (r *accountsFileRepo) Save(list []*models.Account) error {
	doc := emptyDoc()
	for _, account := range list {
		if _, ok := doc[account.Platform]; !ok {
			doc[account.Platform] = []*models.Account{}
		}
		doc[account.Platform] = append(doc[account.Platform], account)
	}
	if err := r.store.Save(doc); err != nil {
		return errors.Wrap(err, "accountsFileRepo.Save")
	}
	return nil
}
