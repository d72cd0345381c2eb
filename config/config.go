package config

import (
	"github.com/datastax/data-api-query/log"
)

type Config interface {
	Limits() Limits
	Naming() NamingConventionFn
	Logger() log.Logger
	Notices() *log.Once
}
