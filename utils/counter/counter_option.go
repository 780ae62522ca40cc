package counter

import "github.com/rs/zerolog"

type Options struct {
	total  int
	desc   string
	logger *zerolog.Logger
}

type Option func(*Options)

func WithTotal(total int) Option {
	return func(o *Options) {
		o.total = total
	}
}

func WithDesc(desc string) Option {
	return func(o *Options) {
		o.desc = desc
	}
}

func WithLogger(logger *zerolog.Logger) Option {
	return func(o *Options) {
		o.logger = logger
	}
}
