package providers

import (
	"net"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/jloeber/ipmapper/geo"
	"github.com/juju/errors"
)

const (
	circuitBreakerStateClosed uint32 = iota
	circuitBreakerStateHalfOpened
	circuitBreakerStateOpened
)

// circuitBreaker stops asking a provider which keeps failing. Misses
// (ErrNoMatch, ErrNoLocation) are valid answers and are not counted as
// failures.
type circuitBreaker struct {
	GeoProvider

	state          uint32
	stateMutexChan chan bool

	halfOpenTimer        *time.Timer
	failuresCleanupTimer *time.Timer

	halfOpenAttempts uint32
	failuresCount    uint32

	openThreshold        uint32
	halfOpenTimeout      time.Duration
	resetFailuresTimeout time.Duration
}

func (c *circuitBreaker) Lookup(ip net.IP) (geo.Coordinate, error) {
	switch atomic.LoadUint32(&c.state) {
	case circuitBreakerStateClosed:
		return c.lookupClosed(ip)
	case circuitBreakerStateHalfOpened:
		return c.lookupHalfOpened(ip)
	default:
		return geo.Coordinate{}, ErrCircuitBreakerOpened
	}
}

func (c *circuitBreaker) lookupClosed(ip net.IP) (geo.Coordinate, error) {
	coord, err := c.GeoProvider.Lookup(ip)

	c.stateMutexChan <- true
	defer func() {
		<-c.stateMutexChan
	}()

	if !isProviderFailure(err) {
		c.switchState(circuitBreakerStateClosed)
		return coord, err
	}

	c.failuresCount++

	if c.state == circuitBreakerStateClosed && c.failuresCount > c.openThreshold {
		log.WithFields(log.Fields{
			"provider": c.GeoProvider.Name(),
			"failures": c.failuresCount,
		}).Warn("Provider fails too often, stop asking it for a while.")
		c.switchState(circuitBreakerStateOpened)
	}

	return coord, err
}

func (c *circuitBreaker) lookupHalfOpened(ip net.IP) (geo.Coordinate, error) {
	if !atomic.CompareAndSwapUint32(&c.halfOpenAttempts, 0, 1) {
		return geo.Coordinate{}, ErrCircuitBreakerOpened
	}

	coord, err := c.GeoProvider.Lookup(ip)

	c.stateMutexChan <- true
	defer func() {
		<-c.stateMutexChan
	}()

	if c.state != circuitBreakerStateHalfOpened {
		return coord, err
	}

	if isProviderFailure(err) {
		c.switchState(circuitBreakerStateOpened)
	} else {
		c.switchState(circuitBreakerStateClosed)
	}

	return coord, err
}

func (c *circuitBreaker) switchState(state uint32) {
	switch state {
	case circuitBreakerStateClosed:
		c.stopTimer(&c.halfOpenTimer)
		c.ensureTimer(&c.failuresCleanupTimer, c.resetFailuresTimeout, c.resetFailures)
	case circuitBreakerStateHalfOpened:
		c.stopTimer(&c.failuresCleanupTimer)
		c.stopTimer(&c.halfOpenTimer)
	case circuitBreakerStateOpened:
		c.stopTimer(&c.failuresCleanupTimer)
		c.ensureTimer(&c.halfOpenTimer, c.halfOpenTimeout, c.tryHalfOpen)
	}

	c.failuresCount = 0

	atomic.StoreUint32(&c.halfOpenAttempts, 0)
	atomic.StoreUint32(&c.state, state)
}

func (c *circuitBreaker) resetFailures() {
	c.stateMutexChan <- true
	defer func() {
		<-c.stateMutexChan
	}()

	c.stopTimer(&c.failuresCleanupTimer)

	if c.state == circuitBreakerStateClosed {
		c.switchState(circuitBreakerStateClosed)
	}
}

func (c *circuitBreaker) tryHalfOpen() {
	c.stateMutexChan <- true
	defer func() {
		<-c.stateMutexChan
	}()

	if c.state == circuitBreakerStateOpened {
		c.switchState(circuitBreakerStateHalfOpened)
	}
}

func (c *circuitBreaker) stopTimer(timerRef **time.Timer) {
	timer := *timerRef
	if timer == nil {
		return
	}

	timer.Stop()
	*timerRef = nil
}

func (c *circuitBreaker) ensureTimer(timerRef **time.Timer, timeout time.Duration, callback func()) {
	if *timerRef == nil {
		*timerRef = time.AfterFunc(timeout, callback)
	}
}

func (c *circuitBreaker) Shutdown() {
	c.stateMutexChan <- true
	c.stopTimer(&c.failuresCleanupTimer)
	c.stopTimer(&c.halfOpenTimer)
	<-c.stateMutexChan

	if vv, ok := c.GeoProvider.(OfflineProvider); ok {
		vv.Shutdown()
	}
}

func isProviderFailure(err error) bool {
	switch errors.Cause(err) {
	case nil, ErrNoMatch, ErrNoLocation:
		return false
	}

	return true
}

// NewCircuitBreaker wraps provider with a circuit breaker. After more
// than openThreshold failures in a row provider is not asked for
// halfOpenTimeout. Failures counter is reset every resetFailuresTimeout.
func NewCircuitBreaker(provider GeoProvider, openThreshold uint32,
	halfOpenTimeout, resetFailuresTimeout time.Duration) OfflineProvider {
	cb := &circuitBreaker{
		GeoProvider:          provider,
		stateMutexChan:       make(chan bool, 1),
		openThreshold:        openThreshold,
		halfOpenTimeout:      halfOpenTimeout,
		resetFailuresTimeout: resetFailuresTimeout,
	}

	cb.switchState(circuitBreakerStateClosed)

	return cb
}
