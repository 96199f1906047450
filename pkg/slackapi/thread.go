package slackapi

// Thread is the caller-owned conversation context for threaded messages.
// TS is empty until the first message on the thread succeeds; SendMessage
// records the returned timestamp exactly once and never overwrites it, so
// every later message attaches as a reply to the original.
//
// Concurrent SendMessage calls against the same Thread race on the TS write
// (first successful response wins); serializing those calls is the caller's
// responsibility.
type Thread struct {
	Channel string
	TS      string
}
