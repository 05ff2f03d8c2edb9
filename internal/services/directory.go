package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/tanujaya/user-directory/internal/data/repos"
	types "github.com/tanujaya/user-directory/internal/domain"
	"github.com/tanujaya/user-directory/internal/platform/apierr"
	"github.com/tanujaya/user-directory/internal/platform/logger"
)

// DirectoryService is the query/command surface the handlers call: search
// and paginate the listing, fetch one user, and run the validated,
// transactional mutations.
type DirectoryService interface {
	List(ctx context.Context, page int, search string) ([]*types.User, types.Pagination, error)
	Get(ctx context.Context, id int64) (*types.User, error)
	Create(ctx context.Context, in types.UserInput) (*types.User, error)
	Update(ctx context.Context, id int64, in types.UserInput) error
	Delete(ctx context.Context, id int64) error
}

type directoryService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewDirectoryService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo) DirectoryService {
	serviceLog := log.With("service", "DirectoryService")
	return &directoryService{db: db, log: serviceLog, userRepo: userRepo}
}

// List clamps non-positive pages to 1 so the offset never goes negative.
func (ds *directoryService) List(ctx context.Context, page int, search string) ([]*types.User, types.Pagination, error) {
	if page < 1 {
		page = 1
	}

	users, total, err := ds.userRepo.List(ctx, nil, repos.ListFilter{
		Search: search,
		Offset: (page - 1) * types.PageSize,
		Limit:  types.PageSize,
	})
	if err != nil {
		return nil, types.Pagination{}, fmt.Errorf("list users: %w", err)
	}
	if users == nil {
		users = []*types.User{}
	}
	return users, types.NewPagination(page, total), nil
}

func (ds *directoryService) Get(ctx context.Context, id int64) (*types.User, error) {
	return ds.userRepo.GetByID(ctx, nil, id)
}

// Create validates, then inserts the user and its address in one
// transaction; a failed address insert rolls the user back instead of
// leaving a half-written aggregate.
func (ds *directoryService) Create(ctx context.Context, in types.UserInput) (*types.User, error) {
	if errs := ValidateUserInput(in); len(errs) > 0 {
		return nil, apierr.Validation(errs)
	}

	user := in.ToUser()
	err := ds.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := ds.userRepo.Create(ctx, tx, user)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	ds.log.Info("user created", "id", user.ID)
	return user, nil
}

func (ds *directoryService) Update(ctx context.Context, id int64, in types.UserInput) error {
	if errs := ValidateUserInput(in); len(errs) > 0 {
		return apierr.Validation(errs)
	}

	err := ds.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return ds.userRepo.Update(ctx, tx, id, in.ToUser())
	})
	if err != nil {
		return err
	}
	ds.log.Info("user updated", "id", id)
	return nil
}

// Delete is idempotent: removing an id that never existed is success.
func (ds *directoryService) Delete(ctx context.Context, id int64) error {
	if err := ds.userRepo.Delete(ctx, nil, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	ds.log.Info("user deleted", "id", id)
	return nil
}
