package config

import (
	"github.com/datastax/data-api-query/log"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type ConfigMock struct {
	mock.Mock
}

func NewConfigMock() *ConfigMock {
	return &ConfigMock{}
}

func (o *ConfigMock) Default() *ConfigMock {
	o.On("Limits").Return(DefaultLimits())
	o.On("Naming").Return(NamingConventionFn(NewDefaultNaming))
	o.On("Logger").Return(log.NewZapLogger(zap.NewExample()))
	o.On("Notices").Return(log.NewOnce())
	return o
}

func (o *ConfigMock) Limits() Limits {
	args := o.Called()
	return args.Get(0).(Limits)
}

func (o *ConfigMock) Naming() NamingConventionFn {
	args := o.Called()
	return args.Get(0).(NamingConventionFn)
}

func (o *ConfigMock) Logger() log.Logger {
	args := o.Called()
	return args.Get(0).(log.Logger)
}

func (o *ConfigMock) Notices() *log.Once {
	args := o.Called()
	return args.Get(0).(*log.Once)
}
