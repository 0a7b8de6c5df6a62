package main

// Exit codes shared by all elsago commands.
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (missing API key)
	ExitNotFound    = 3 // Record not found upstream (HTTP 404)
	ExitAuthError   = 4 // API rejected the credentials (HTTP 401/403)
	ExitRateLimited = 5 // API quota exceeded (HTTP 429)
)
