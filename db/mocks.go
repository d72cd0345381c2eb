package db

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type SessionMock struct {
	mock.Mock
}

func NewSessionMock() *SessionMock {
	return &SessionMock{}
}

func (o *SessionMock) ExecuteIter(ctx context.Context, query string, values ...interface{}) (ResultSet, error) {
	args := o.Called(query, values)
	result := args.Get(0)
	if result == nil {
		return nil, args.Error(1)
	}
	return result.(ResultSet), args.Error(1)
}

func (o *SessionMock) Close() error {
	return o.Called().Error(0)
}

type ResultMock struct {
	mock.Mock
}

func (o *ResultMock) Columns() []string {
	args := o.Called()
	return args.Get(0).([]string)
}

func (o *ResultMock) Values() []map[string]interface{} {
	args := o.Called()
	return args.Get(0).([]map[string]interface{})
}

// NewResultMock returns a result set mock holding the given rows.
func NewResultMock(rows ...map[string]interface{}) *ResultMock {
	result := &ResultMock{}
	if rows == nil {
		rows = []map[string]interface{}{}
	}
	result.On("Values").Return(rows)
	return result
}
