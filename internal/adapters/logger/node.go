package logger

import (
	"context"
	"os"
	"strconv"

	"github.com/grindlemire/graft"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

// NodeID is the unique identifier for the logger Graft node.
const NodeID graft.ID = "adapter.logger"

// JSONEnv switches the logger to JSON before any flag is parsed, so that
// errors raised while wiring are machine readable too.
const JSONEnv = "FORGE_JSON_LOG"

func init() {
	graft.Register(graft.Node[ports.Logger]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Logger, error) {
			return newFromEnv(os.Getenv)
		},
	})
}

func newFromEnv(getenv func(string) string) (ports.Logger, error) {
	lg := New().(*Logger)

	raw := getenv(JSONEnv)
	if raw == "" {
		return lg, nil
	}
	enable, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "invalid "+JSONEnv), "value", raw)
	}
	lg.SetJSON(enable)
	return lg, nil
}
