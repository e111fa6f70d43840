package pebble

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/pebble"

	"github.com/eigerco/ledgerpay/pkg/log"
)

var _ pebble.Logger = logger{}

// logger routes pebble's internal messages (WAL replay, compactions) to the store logger.
type logger struct{}

func (logger) Infof(format string, args ...interface{}) {
	log.Store.Debug().Str("engine", "pebble").Msg(message(format, args))
}

func (logger) Errorf(format string, args ...interface{}) {
	log.Store.Error().Str("engine", "pebble").Msg(message(format, args))
}

func (logger) Fatalf(format string, args ...interface{}) {
	log.Store.Fatal().Str("engine", "pebble").Msg(message(format, args))
}

func message(format string, args []interface{}) string {
	return strings.TrimSuffix(fmt.Sprintf(format, args...), "\n")
}
