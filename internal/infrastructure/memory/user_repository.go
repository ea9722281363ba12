package memory

import (
	"context"
	"strings"

	"github.com/npochettino/sales-management-api/internal/domain"
	"github.com/npochettino/sales-management-api/internal/domain/entity"
	"github.com/npochettino/sales-management-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

type UserRepo struct{ view }

func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	var err error
	r.write(func() {
		for _, u := range r.s.users {
			if strings.EqualFold(u.Email, user.Email) {
				err = domain.ErrEmailAlreadyExists
				return
			}
		}
		r.s.users[user.ID] = *user
	})
	return err
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	r.read(func() {
		if u, ok := r.s.users[id]; ok {
			out = &u
		}
	})
	return out, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	var out *entity.User
	r.read(func() {
		for _, u := range r.s.users {
			if strings.EqualFold(u.Email, email) {
				out = &u
				return
			}
		}
	})
	return out, nil
}

func (r *UserRepo) Count(_ context.Context) (int, error) {
	var n int
	r.read(func() { n = len(r.s.users) })
	return n, nil
}
