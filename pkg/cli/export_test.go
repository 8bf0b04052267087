package cli

// RunWithWriter exposes run for tests
var RunWithWriter = run
