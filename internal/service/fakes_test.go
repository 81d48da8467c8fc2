package service

import (
	"context"
	"sort"

	"chatboard/internal/model"
	"chatboard/internal/repository"
)

// fakeUserRepo is an in-memory UserRepository. Create enforces the
// same uniqueness the real schema does.
type fakeUserRepo struct {
	users     map[int]*model.User
	nextID    int
	createErr error // when set, Create fails with this instead
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int]*model.User{}, nextID: 1}
}

func (f *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, u := range f.users {
		if u.Email == user.Email || u.Username == user.Username {
			return repository.ErrDuplicate
		}
	}
	user.ID = f.nextID
	f.nextID++
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id int) (*model.User, error) {
	if u, ok := f.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

// fakeMessageRepo is an in-memory MessageRepository whose
// FindConversation applies the same pair filter and ordering as the
// SQL query.
type fakeMessageRepo struct {
	messages []model.Message
	nextID   int64
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{nextID: 1}
}

func (f *fakeMessageRepo) Create(_ context.Context, m *model.Message) error {
	m.ID = f.nextID
	f.nextID++
	f.messages = append(f.messages, *m)
	return nil
}

func (f *fakeMessageRepo) FindConversation(_ context.Context, userA, userB int) ([]model.Message, error) {
	var out []model.Message
	for _, m := range f.messages {
		if (m.SenderID == userA && m.ReceiverID == userB) || (m.SenderID == userB && m.ReceiverID == userA) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
