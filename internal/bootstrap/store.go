package bootstrap

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/osse101/LuckBot_Go/internal/config"
	"github.com/osse101/LuckBot_Go/internal/droptable"
	"github.com/osse101/LuckBot_Go/internal/store"
)

// LoadCatalog builds the drop table from the shipped base items, or from the
// override file at cfg.DropTablePath when one exists.
func LoadCatalog(cfg *config.Config) (*droptable.Catalog, error) {
	base, err := droptable.LoadBaseItems(cfg.DropTablePath)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgLoadBaseItemsFmt, err)
	}

	catalog, err := droptable.NewCatalog(base, droptable.DefaultPotionRecipes)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBuildCatalogFmt, err)
	}

	slog.Info(LogMsgCatalogLoaded,
		"items", catalog.Items().Len(),
		"crafting_recipes", len(catalog.CraftingRecipes()),
		"potion_recipes", len(catalog.PotionRecipes()))
	return catalog, nil
}

// InitializeStore opens the economy store in cfg.DataDir and loads the
// persisted documents. Unreadable documents are quarantined by the store.
func InitializeStore(cfg *config.Config) (*store.Store, error) {
	if err := os.MkdirAll(cfg.DataDir, DirPermission); err != nil {
		return nil, fmt.Errorf(ErrMsgCreateDataDirFmt, err)
	}

	st := store.New(store.DefaultFiles(cfg.DataDir))
	if err := st.Load(); err != nil {
		return nil, fmt.Errorf(ErrMsgLoadStoreFmt, err)
	}

	slog.Info(LogMsgStoreLoaded,
		"data_dir", cfg.DataDir,
		"users", st.Count(),
		"sessions", len(st.Sessions()))
	return st, nil
}
