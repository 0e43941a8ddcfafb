package restsim

import (
	"time"

	"restsim/shared"
)

// An Option configures a Simulation before it starts.
type Option interface {
	apply(*Simulation)
}

type optionFunc func(*Simulation)

func (f optionFunc) apply(s *Simulation) {
	f(s)
}

// WithGroups sets the number of customer groups.
func WithGroups(n int) Option {
	return optionFunc(func(s *Simulation) {
		s.cfg.Groups = n
	})
}

// WithTables sets the size of the table pool. With fewer tables than
// groups, groups queue at reception until a checkout frees a table.
func WithTables(n int) Option {
	return optionFunc(func(s *Simulation) {
		s.cfg.Tables = n
	})
}

// WithStartTimes sets the nominal travel time of each group. The slice
// must have one entry per group.
func WithStartTimes(d ...time.Duration) Option {
	return optionFunc(func(s *Simulation) {
		s.cfg.StartTime = d
	})
}

// WithEatTimes sets the nominal eating time of each group. The slice must
// have one entry per group.
func WithEatTimes(d ...time.Duration) Option {
	return optionFunc(func(s *Simulation) {
		s.cfg.EatTime = d
	})
}

// WithJitter sets the standard deviation of the normally distributed
// jitter added to the travel and eating times.
func WithJitter(start, eat time.Duration) Option {
	return optionFunc(func(s *Simulation) {
		s.cfg.StartDev = start
		s.cfg.EatDev = eat
	})
}

// WithCookTime sets the cooking duration: min plus a uniform sample on
// [0, max).
func WithCookTime(min, max time.Duration) Option {
	return optionFunc(func(s *Simulation) {
		s.cfg.CookMin = min
		s.cfg.CookMax = max
	})
}

// WithSeed fixes the seed of the randomized delays, making the delay
// sequence of each actor reproducible.
func WithSeed(seed int64) Option {
	return optionFunc(func(s *Simulation) {
		s.cfg.Seed = seed
	})
}

// WithSink adds a sink that receives every persisted snapshot, such as a
// statelog.TextSink or statelog.MsgpackSink. May be given multiple times.
func WithSink(sink shared.Sink) Option {
	return optionFunc(func(s *Simulation) {
		s.sinks = append(s.sinks, sink)
	})
}
