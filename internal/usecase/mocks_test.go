// Code in the style generated by mockery. Consumer interfaces of this package only.

package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/ultimatexo-client/internal/entity"
)

type mockConstructorTestingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockroomClient is a mock type for the roomClient type.
type MockroomClient struct {
	mock.Mock
}

type MockroomClient_Expecter struct {
	mock *mock.Mock
}

func NewMockroomClient(t mockConstructorTestingT) *MockroomClient {
	m := &MockroomClient{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (_m *MockroomClient) EXPECT() *MockroomClient_Expecter {
	return &MockroomClient_Expecter{mock: &_m.Mock}
}

func (_m *MockroomClient) GetRoom(ctx context.Context, roomID string) (entity.RoomInfo, error) {
	ret := _m.Called(ctx, roomID)

	return ret.Get(0).(entity.RoomInfo), ret.Error(1)
}

type MockroomClient_GetRoom_Call struct {
	*mock.Call
}

func (_e *MockroomClient_Expecter) GetRoom(ctx interface{}, roomID interface{}) *MockroomClient_GetRoom_Call {
	return &MockroomClient_GetRoom_Call{Call: _e.mock.On("GetRoom", ctx, roomID)}
}

func (_c *MockroomClient_GetRoom_Call) Return(room entity.RoomInfo, err error) *MockroomClient_GetRoom_Call {
	_c.Call.Return(room, err)
	return _c
}

func (_m *MockroomClient) VerifyPassword(ctx context.Context, roomID, password string) (bool, error) {
	ret := _m.Called(ctx, roomID, password)

	return ret.Bool(0), ret.Error(1)
}

type MockroomClient_VerifyPassword_Call struct {
	*mock.Call
}

func (_e *MockroomClient_Expecter) VerifyPassword(ctx interface{}, roomID interface{}, password interface{}) *MockroomClient_VerifyPassword_Call {
	return &MockroomClient_VerifyPassword_Call{Call: _e.mock.On("VerifyPassword", ctx, roomID, password)}
}

func (_c *MockroomClient_VerifyPassword_Call) Return(valid bool, err error) *MockroomClient_VerifyPassword_Call {
	_c.Call.Return(valid, err)
	return _c
}

// MocktokenStore is a mock type for the tokenStore type.
type MocktokenStore struct {
	mock.Mock
}

type MocktokenStore_Expecter struct {
	mock *mock.Mock
}

func NewMocktokenStore(t mockConstructorTestingT) *MocktokenStore {
	m := &MocktokenStore{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (_m *MocktokenStore) EXPECT() *MocktokenStore_Expecter {
	return &MocktokenStore_Expecter{mock: &_m.Mock}
}

func (_m *MocktokenStore) Save(ctx context.Context, token entity.SessionToken) error {
	ret := _m.Called(ctx, token)

	return ret.Error(0)
}

type MocktokenStore_Save_Call struct {
	*mock.Call
}

func (_e *MocktokenStore_Expecter) Save(ctx interface{}, token interface{}) *MocktokenStore_Save_Call {
	return &MocktokenStore_Save_Call{Call: _e.mock.On("Save", ctx, token)}
}

func (_c *MocktokenStore_Save_Call) Return(err error) *MocktokenStore_Save_Call {
	_c.Call.Return(err)
	return _c
}

func (_m *MocktokenStore) Load(ctx context.Context) (entity.SessionToken, error) {
	ret := _m.Called(ctx)

	return ret.Get(0).(entity.SessionToken), ret.Error(1)
}

type MocktokenStore_Load_Call struct {
	*mock.Call
}

func (_e *MocktokenStore_Expecter) Load(ctx interface{}) *MocktokenStore_Load_Call {
	return &MocktokenStore_Load_Call{Call: _e.mock.On("Load", ctx)}
}

func (_c *MocktokenStore_Load_Call) Return(token entity.SessionToken, err error) *MocktokenStore_Load_Call {
	_c.Call.Return(token, err)
	return _c
}

func (_m *MocktokenStore) Clear(ctx context.Context) error {
	ret := _m.Called(ctx)

	return ret.Error(0)
}

type MocktokenStore_Clear_Call struct {
	*mock.Call
}

func (_e *MocktokenStore_Expecter) Clear(ctx interface{}) *MocktokenStore_Clear_Call {
	return &MocktokenStore_Clear_Call{Call: _e.mock.On("Clear", ctx)}
}

func (_c *MocktokenStore_Clear_Call) Return(err error) *MocktokenStore_Clear_Call {
	_c.Call.Return(err)
	return _c
}
