// Package resilience holds fault-tolerance helpers for outbound calls.
//
// The circuitbreaker subpackage guards page fetching when an operator
// enables it:
//
//	cb := circuitbreaker.New(circuitbreaker.ContentFetchConfig())
//	result, err := cb.Execute(func() (interface{}, error) {
//	    return fetchPage()
//	})
package resilience
