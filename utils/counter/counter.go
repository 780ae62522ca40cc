package counter

import (
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type Counter struct {
	count     int
	total     int
	mutex     sync.Mutex
	desc      string
	startTime time.Time
	logger    *zerolog.Logger
	now       func() time.Time
}

func NewCounter(opts ...Option) *Counter {
	options := &Options{}

	for _, opt := range opts {
		opt(options)
	}
	if options.logger == nil {
		nop := zerolog.Nop()
		options.logger = &nop
	}

	return &Counter{
		count:     0,
		total:     options.total,
		desc:      options.desc,
		startTime: time.Now(),
		logger:    options.logger,
		now:       time.Now,
	}
}

// Add 记录完成 n 个，并输出速度与预计剩余时间
func (c *Counter) Add(n int) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.count += n
	elapsed := c.now().Sub(c.startTime).Seconds()
	speed, remaining := 0.0, 0.0
	if elapsed > 0 {
		speed = float64(c.count) / elapsed
	}
	if speed > 0 {
		remaining = float64(c.total-c.count) / speed
	}
	c.logger.Info().
		Str("desc", c.desc).
		Int("done", c.count).
		Int("total", c.total).
		Str("speed", formatFloat(speed)+"/s").
		Str("eta", formatFloat(remaining)+"s").
		Msg("progress")
}

func (c *Counter) Count() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.count
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}
