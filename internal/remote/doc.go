// Package remote talks to the Upstash-compatible Redis REST endpoint. Each
// command is a JSON array of strings POSTed to the base URL with a bearer
// token; the reply is a JSON object whose "result" (or "error") field carries
// the outcome. The client never retries: callers classify the returned error
// (HTTPError for non-2xx replies, anything else for transport failures).
package remote
