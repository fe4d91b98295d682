// Package backend provides an HTTP client for the sentiment backend.
//
// # Overview
//
// The backend scores customer-service chats and proposes agent responses.
// sentiboard treats every call as an opaque request/response: the client
// turns HTTP payloads into sentiment types and reports failures as errors.
//
// # Client Usage
//
//	client, err := backend.NewClient("127.0.0.1:8080", 10*time.Second)
//	if err != nil {
//		return fmt.Errorf("init backend client: %w", err)
//	}
//
//	snap, err := client.FetchSentiment(ctx, "chat-42")
//	if err != nil {
//		logger.Warn("sentiment fetch failed", "err", err)
//	}
//
// # API Endpoints
//
//	GET  /api/sessions/{id}/sentiment  → SentimentResponse
//	POST /api/sessions/{id}/escalate   → empty body
//	GET  /api/sentiments               → []AggregateEntry
//
// The sentiment endpoint may answer with the JSON document itself or with a
// JSON string containing it; both decode the same way.
//
// # Request Metadata
//
// Every request sends Accept: application/json, a sentiboard User-Agent and a
// fresh X-Request-ID so backend logs can be matched to a single poll.
//
// # Error Handling
//
//   - Empty session id: sentiment.ErrInvalidArgument, no request is sent
//   - Transport failure: "execute request: ..."
//   - HTTP status >= 400: "api <path> returned status <code>"
//   - Malformed body: "decode response: ..."
//
// # Testing
//
// SentimentSource is the seam used by the dashboard; tests either implement it
// directly or point a Client at an httptest.Server.
package backend
