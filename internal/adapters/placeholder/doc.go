// Package placeholder provides an HTTP client for JSONPlaceholder-shaped
// REST APIs.
//
// Every collection is read with a plain GET, optionally narrowed by one
// query filter:
//
//   - GET {base}/users
//   - GET {base}/todos?userId={id}
//   - GET {base}/posts?userId={id}
//   - GET {base}/comments?postId={id}
//
// Responses are JSON arrays of flat records. Requests send
// Accept: application/json and a jsonbrowse User-Agent, and are bounded by
// the client timeout as well as the caller's context.
//
// Errors are wrapped with fmt.Errorf and returned as-is; the client does not
// retry and does not cache. Callers decide how to degrade:
//
//   - "execute request: dial tcp: connection refused"
//   - "api todos returned status 500"
//   - "decode users: unexpected EOF"
//
// The base URL accepts a bare host ("jsonplaceholder.typicode.com", https is
// assumed) or a full URL with a path prefix ("http://localhost:3000/api").
package placeholder
