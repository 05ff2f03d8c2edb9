package app

import (
	"gorm.io/gorm"

	"github.com/tanujaya/user-directory/internal/data/repos"
	"github.com/tanujaya/user-directory/internal/platform/logger"
)

type Repos struct {
	User repos.UserRepo
}

func wireRepos(gdb *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User: repos.NewUserRepo(gdb, log),
	}
}
