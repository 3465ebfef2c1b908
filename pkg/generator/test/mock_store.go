// Package test provides testify mocks shared by package tests.
package test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/tigerroll/wpgen/pkg/generator/adapter/database"
)

// MockStore is a testify mock of database.Store.
type MockStore struct {
	mock.Mock
}

var _ database.Store = (*MockStore)(nil)

func (m *MockStore) RandomPosts(ctx context.Context, postType string, limit int) ([]database.PostRef, error) {
	args := m.Called(ctx, postType, limit)
	posts, _ := args.Get(0).([]database.PostRef)
	return posts, args.Error(1)
}

func (m *MockStore) RandomUsers(ctx context.Context, limit int) ([]database.UserRef, error) {
	args := m.Called(ctx, limit)
	users, _ := args.Get(0).([]database.UserRef)
	return users, args.Error(1)
}

func (m *MockStore) MaxCommentID(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) UserLogins(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	logins, _ := args.Get(0).([]string)
	return logins, args.Error(1)
}

func (m *MockStore) SecureFilePriv(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockStore) LocalInfile(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockStore) SetLocalInfile(ctx context.Context, value string) error {
	return m.Called(ctx, value).Error(0)
}

func (m *MockStore) LoadFile(ctx context.Context, spec database.LoadSpec) (int64, error) {
	args := m.Called(ctx, spec)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) HasMarkedRows(ctx context.Context, table, field, marker string) (bool, error) {
	args := m.Called(ctx, table, field, marker)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) SwapWithout(ctx context.Context, table, field, marker string) error {
	return m.Called(ctx, table, field, marker).Error(0)
}

func (m *MockStore) UpdateCommentCounts(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockStore) Close() error {
	return m.Called().Error(0)
}
