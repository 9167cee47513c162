package cfg

import (
	"log"
	"os"
)

// PrintDebugInfo toggles whether Build/FromTrace log the block count
// and Incomplete flag to stderr. Off by default, matching wagon's
// wasm/log.go pattern.
var PrintDebugInfo = false

var logger = log.New(debugWriter{}, "cfg: ", log.Lshortfile)

// debugWriter writes to stderr while PrintDebugInfo is set and discards
// its input otherwise; the flag is checked on every write.
type debugWriter struct{}

func (debugWriter) Write(p []byte) (int, error) {
	if PrintDebugInfo {
		return os.Stderr.Write(p)
	}
	return len(p), nil
}
