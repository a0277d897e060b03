package utilities

import "log"

// FailOnError stops the process during start-up wiring.
func FailOnError(err error, msg string) {
	if err != nil {
		log.Fatalf("%s: %v", msg, err)
	}
}
