package testdoubles

import (
	"context"
	"errors"
	"sync"

	"github.com/AntonStoeckl/cdc-load-producer/producer"
)

// Methods of FakeStore and its units of work that accept injected failures.
const (
	MethodBegin            = "Begin"
	MethodInsertUser       = "InsertUser"
	MethodRandomUser       = "RandomUser"
	MethodUpdateUserStatus = "UpdateUserStatus"
	MethodInsertActivity   = "InsertActivity"
	MethodCommit           = "Commit"
	MethodRollback         = "Rollback"
	MethodClose            = "Close"
)

// ErrDuplicateUsername is the driver-level error FakeStore joins with producer.ErrConstraintViolation.
var ErrDuplicateUsername = errors.New("duplicate key value violates unique constraint \"users_username_key\"")

var errUnitOfWorkEnded = errors.New("unit of work already ended")

// FakeUser is a user row held by FakeStore.
type FakeUser struct {
	ID       int64
	Username string
	Email    string
	Status   producer.UserStatus
}

// FakeActivity is an activity row held by FakeStore.
type FakeActivity struct {
	ID int64
	producer.ActivityRecord
}

// FakeStore is an in-memory producer.Store. Writes of a unit of work become visible to other
// units of work on Commit only. Usernames are unique, like the real users table.
type FakeStore struct {
	mu             sync.Mutex
	users          []FakeUser
	activities     []FakeActivity
	nextUserID     int64
	nextActivityID int64
	failures       map[string][]error
	calls          map[string]int
	open           bool
}

// NewFakeStore creates an empty FakeStore.
func NewFakeStore() *FakeStore {
	return &FakeStore{
		failures: make(map[string][]error),
		calls:    make(map[string]int),
		open:     true,
	}
}

// SeedUser inserts a committed user and returns its id.
func (s *FakeStore) SeedUser(username string, status producer.UserStatus) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextUserID++
	s.users = append(s.users, FakeUser{ID: s.nextUserID, Username: username, Status: status})

	return s.nextUserID
}

// FailNext makes the next call of method return err. Repeated calls queue further failures.
func (s *FakeStore) FailNext(method string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failures[method] = append(s.failures[method], err)
}

// Calls returns how often method was called.
func (s *FakeStore) Calls(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.calls[method]
}

// Users returns a copy of the committed users.
func (s *FakeStore) Users() []FakeUser {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]FakeUser, len(s.users))
	copy(users, s.users)

	return users
}

// Activities returns a copy of the committed activities.
func (s *FakeStore) Activities() []FakeActivity {
	s.mu.Lock()
	defer s.mu.Unlock()

	activities := make([]FakeActivity, len(s.activities))
	copy(activities, s.activities)

	return activities
}

// IsOpen reports whether Close has not been called yet.
func (s *FakeStore) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.open
}

func (s *FakeStore) Begin(_ context.Context) (producer.UnitOfWork, error) {
	if err := s.enter(MethodBegin); err != nil {
		return nil, err
	}

	return &fakeUnitOfWork{store: s, statuses: make(map[int64]producer.UserStatus)}, nil
}

func (s *FakeStore) Close(_ context.Context) error {
	if err := s.enter(MethodClose); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.open = false

	return nil
}

// enter counts the call and pops an injected failure, if any.
func (s *FakeStore) enter(method string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls[method]++

	queued := s.failures[method]
	if len(queued) == 0 {
		return nil
	}

	s.failures[method] = queued[1:]

	return queued[0]
}

type fakeUnitOfWork struct {
	store      *FakeStore
	users      []FakeUser
	activities []FakeActivity
	statuses   map[int64]producer.UserStatus
	done       bool
}

func (u *fakeUnitOfWork) InsertUser(_ context.Context, user producer.UserRecord) (int64, error) {
	if err := u.store.enter(MethodInsertUser); err != nil {
		return 0, err
	}

	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	for _, existing := range [][]FakeUser{u.store.users, u.users} {
		for _, other := range existing {
			if other.Username == user.Username {
				return 0, errors.Join(producer.ErrConstraintViolation, ErrDuplicateUsername)
			}
		}
	}

	u.store.nextUserID++
	u.users = append(u.users, FakeUser{
		ID:       u.store.nextUserID,
		Username: user.Username,
		Email:    user.Email,
		Status:   user.Status,
	})

	return u.store.nextUserID, nil
}

func (u *fakeUnitOfWork) RandomUser(_ context.Context) (producer.UserRef, error) {
	if err := u.store.enter(MethodRandomUser); err != nil {
		return producer.UserRef{}, err
	}

	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	visible := append(append([]FakeUser{}, u.store.users...), u.users...)
	if len(visible) == 0 {
		return producer.UserRef{}, producer.ErrNoUsers
	}

	// the most recent user keeps the fake deterministic
	user := visible[len(visible)-1]

	return producer.UserRef{ID: user.ID, Username: user.Username}, nil
}

func (u *fakeUnitOfWork) UpdateUserStatus(_ context.Context, userID int64, status producer.UserStatus) error {
	if err := u.store.enter(MethodUpdateUserStatus); err != nil {
		return err
	}

	u.statuses[userID] = status

	return nil
}

func (u *fakeUnitOfWork) InsertActivity(_ context.Context, activity producer.ActivityRecord) (int64, error) {
	if err := u.store.enter(MethodInsertActivity); err != nil {
		return 0, err
	}

	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	u.store.nextActivityID++
	u.activities = append(u.activities, FakeActivity{ID: u.store.nextActivityID, ActivityRecord: activity})

	return u.store.nextActivityID, nil
}

func (u *fakeUnitOfWork) Commit(_ context.Context) error {
	if u.done {
		return errUnitOfWorkEnded
	}

	if err := u.store.enter(MethodCommit); err != nil {
		return err
	}

	u.done = true

	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	u.store.users = append(u.store.users, u.users...)
	u.store.activities = append(u.store.activities, u.activities...)

	for i := range u.store.users {
		if status, ok := u.statuses[u.store.users[i].ID]; ok {
			u.store.users[i].Status = status
		}
	}

	return nil
}

func (u *fakeUnitOfWork) Rollback(_ context.Context) error {
	if u.done {
		return errUnitOfWorkEnded
	}

	u.done = true

	return u.store.enter(MethodRollback)
}

var _ producer.Store = (*FakeStore)(nil)
