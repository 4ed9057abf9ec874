// Package apiclient is the HTTP adapter for the blog backend REST API.
//
// A Client owns the base URL and the underlying *http.Client. The bearer token is
// not part of the client: it travels in the request context so that a single
// client serves every visitor.
//
//	client, err := apiclient.New(apiclient.Config{BaseURL: "http://localhost:5000"})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ctx = apiclient.WithToken(ctx, session.Token)
//	res, err := client.Do(ctx, apiclient.Request{
//		Op:     "users.register",
//		Method: http.MethodPost,
//		Path:   "/api/users/register",
//		Body:   payload,
//	}, nil)
//
// # Responses
//
// The backend answers either with an envelope {code, message, data} or with a bare
// JSON document. When the body carries a numeric code, Do returns it as a Result
// and leaves the branching to the caller, whatever the HTTP status was. Other non-2xx
// responses become *APIError with the body message when one is present.
//
// # Errors
//
// Requests that never produced a response return *TransportError. Its message is
// always "Network Error"; the cause is available through errors.Unwrap, so
// errors.Is(err, context.DeadlineExceeded) keeps working.
package apiclient
