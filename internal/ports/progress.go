package ports

// ProgressSink receives human-readable log lines while an export is processed
type ProgressSink interface {
	Progress(line string)
}

// ProgressFunc adapts a plain function to a ProgressSink
type ProgressFunc func(line string)

// Progress calls f(line)
func (f ProgressFunc) Progress(line string) {
	f(line)
}

// Discard is a ProgressSink that drops every line
var Discard ProgressSink = ProgressFunc(func(string) {})

// ProgressChan forwards lines to a channel. Sends block until received.
type ProgressChan chan<- string

// Progress sends line on the channel
func (c ProgressChan) Progress(line string) {
	c <- line
}
