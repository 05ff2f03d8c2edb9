package app

import (
	"gorm.io/gorm"

	"github.com/tanujaya/user-directory/internal/platform/logger"
	"github.com/tanujaya/user-directory/internal/services"
)

type Services struct {
	Directory services.DirectoryService
}

func wireServices(gdb *gorm.DB, log *logger.Logger, r Repos) Services {
	log.Info("Wiring services...")
	return Services{
		Directory: services.NewDirectoryService(gdb, log, r.User),
	}
}
