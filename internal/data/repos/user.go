package repos

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	types "github.com/tanujaya/user-directory/internal/domain"
	"github.com/tanujaya/user-directory/internal/platform/apperrors"
	"github.com/tanujaya/user-directory/internal/platform/logger"
)

// ListFilter narrows a listing to users whose first name contains Search
// (case-insensitive). Offset/Limit window the id-descending result; the
// returned total ignores them.
type ListFilter struct {
	Search string
	Offset int
	Limit  int
}

type UserRepo interface {
	Create(ctx context.Context, tx *gorm.DB, user *types.User) (*types.User, error)
	GetByID(ctx context.Context, tx *gorm.DB, id int64) (*types.User, error)
	List(ctx context.Context, tx *gorm.DB, filter ListFilter) ([]*types.User, int64, error)
	Update(ctx context.Context, tx *gorm.DB, id int64, user *types.User) error
	Delete(ctx context.Context, tx *gorm.DB, id int64) error
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	repoLog := baseLog.With("repo", "UserRepo")
	return &userRepo{db: db, log: repoLog}
}

func (ur *userRepo) handle(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return ur.db
}

// Create inserts the user row and, through the association, its address
// row referencing the freshly assigned user id. Callers that need the
// pair to be atomic pass a transaction handle.
func (ur *userRepo) Create(ctx context.Context, tx *gorm.DB, user *types.User) (*types.User, error) {
	if err := ur.handle(tx).WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (ur *userRepo) GetByID(ctx context.Context, tx *gorm.DB, id int64) (*types.User, error) {
	var u types.User
	err := ur.handle(tx).WithContext(ctx).
		Preload("Address").
		First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (ur *userRepo) List(ctx context.Context, tx *gorm.DB, filter ListFilter) ([]*types.User, int64, error) {
	h := ur.handle(tx).WithContext(ctx)

	applyFilter := func(q *gorm.DB) *gorm.DB {
		if filter.Search == "" {
			return q
		}
		return q.Where("LOWER(firstname) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}

	var users []*types.User
	q := applyFilter(h.Model(&types.User{})).
		Preload("Address").
		Order("id DESC")
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit).Offset(filter.Offset)
	}
	if err := q.Find(&users).Error; err != nil {
		return nil, 0, err
	}

	var total int64
	if err := applyFilter(h.Model(&types.User{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Update writes the user row's mutable fields and the address row owned
// by that user id. ErrNotFound when no user row matched.
func (ur *userRepo) Update(ctx context.Context, tx *gorm.DB, id int64, user *types.User) error {
	h := ur.handle(tx).WithContext(ctx)

	res := h.Model(&types.User{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"firstname": user.Firstname,
			"lastname":  user.Lastname,
			"birthdate": user.Birthdate,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}

	if user.Address == nil {
		return nil
	}
	return h.Model(&types.Address{}).
		Where("user_id = ?", id).
		Updates(map[string]any{
			"street":      user.Address.Street,
			"city":        user.Address.City,
			"province":    user.Address.Province,
			"postal_code": user.Address.PostalCode,
		}).Error
}

// Delete removes the user row; the addresses.user_id cascade removes the
// owned address. Deleting a missing id is success.
func (ur *userRepo) Delete(ctx context.Context, tx *gorm.DB, id int64) error {
	return ur.handle(tx).WithContext(ctx).Delete(&types.User{}, id).Error
}
