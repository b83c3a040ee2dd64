package usercontext

// Shared Locals keys used across controllers and middlewares
const (
	KeyUserContext = "USER_CONTEXT"
	KeyUserID      = "user_id"
	KeyIsAdmin     = "isAdmin"
	KeyIsOperator  = "isOperator"
	KeyFromAPIKey  = "from_api_key"
)
