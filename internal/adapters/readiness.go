package adapters

import (
	"context"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"

	"jhbuild-lxc/internal/ports"
)

const (
	defaultReadinessTimeout  = 60 * time.Second
	defaultReadinessInterval = 250 * time.Millisecond
)

// NetworkReadiness waits until Host resolves inside the container.
type NetworkReadiness struct {
	Host     string
	Timeout  time.Duration
	Interval time.Duration
}

func NewNetworkReadiness(host string, timeout time.Duration) NetworkReadiness {
	return NetworkReadiness{Host: host, Timeout: timeout}
}

func (r NetworkReadiness) Wait(ctx context.Context, container ports.ContainerPort) error {
	if r.Host == "" {
		return nil
	}
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = defaultReadinessTimeout
	}
	interval := r.Interval
	if interval <= 0 {
		interval = defaultReadinessInterval
	}
	policy := backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(interval),
		backoff.WithMaxInterval(5*time.Second),
		backoff.WithMaxElapsedTime(timeout),
	)

	attempts := 0
	probe := func() error {
		attempts++
		_, err := container.Output(ctx, []string{"getent", "hosts", r.Host}, ports.RunOptions{Root: true})
		return err
	}
	notify := func(err error, next time.Duration) {
		log.Debug().
			Err(err).
			Str("container", container.Name()).
			Dur("retry_in", next).
			Msg("container network not ready yet")
	}
	if err := backoff.RetryNotify(probe, backoff.WithContext(policy, ctx), notify); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("container network not ready: " + r.Host + " does not resolve in " + container.Name()).
			WithCause(err)
	}
	log.Debug().Int("attempts", attempts).Str("container", container.Name()).Msg("container network ready")
	return nil
}

var _ ports.ReadinessPort = NetworkReadiness{}
