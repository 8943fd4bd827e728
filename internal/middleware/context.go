package middleware

// Keys under which the middleware chain stores per-request metadata on the
// echo context. Handlers read them back through c.Get.
const (
	// ContextKeyUserID holds the token subject as a uuid string.
	ContextKeyUserID = "user_id"
	// ContextKeyUserEmail mirrors the email claim of the verified token.
	ContextKeyUserEmail = "user_email"
	// ContextKeyUserRole drives role checks further down the chain.
	ContextKeyUserRole = "user_role"
	// ContextKeyRequestID carries the request correlation id.
	ContextKeyRequestID = "request_id"
)
