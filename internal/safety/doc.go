// Package safety implements the publish gate: the consecutive-failure
// circuit breaker, the minimum posting interval, and the human-approval
// threshold. All checks are pure reads over the queue store.
package safety
