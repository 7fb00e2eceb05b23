package lz77

import (
	"fmt"
	"log"
)

// enable decision tracing
const debugDecisions = false

// Enable extra assertions.
const debugAsserts = false

func printf(format string, a ...interface{}) {
	if debugDecisions {
		log.Printf(format, a...)
	}
}

func assertf(ok bool, format string, a ...interface{}) {
	if debugAsserts && !ok {
		panic(fmt.Sprintf("lz77: "+format, a...))
	}
}
