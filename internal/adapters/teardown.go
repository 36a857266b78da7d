package adapters

import "github.com/rs/zerolog/log"

// ignoreFailure logs and drops the error of a teardown step.
func ignoreFailure(op string, err error) {
	if err == nil {
		return
	}
	log.Debug().Err(err).Str("op", op).Msg("ignoring teardown failure")
}
