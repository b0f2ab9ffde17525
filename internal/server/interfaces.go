package server

// Server is the lifecycle contract the credential service's entry point
// drives: main builds a server and hands it the process for the rest of its
// life.
//
// RunServer blocks until a termination signal arrives, then drains in-flight
// requests before returning, so a registration that already hit the database
// still gets its response. Shutdown forces the same wind-down without
// waiting for a signal; the signal path goes through it too.
type Server interface {
	RunServer()
	Shutdown()
}
