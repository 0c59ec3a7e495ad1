package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY   ContextKey = "request_id"
	CONTEXT_CURRENT_USER_KEY ContextKey = "current_user"
	CONTEXT_SESSION_ID_KEY   ContextKey = "session_id"
)

const (
	REQUEST_ID_PREFIX = "PTHSYS_SVC_"
)

const (
	PathSysRoleAdmin        = "admin"
	PathSysRolePathologist  = "pathologist"
	PathSysRoleReceptionist = "receptionist"
	PathSysRoleResident     = "resident"
)

const (
	AppPaginationUrlFormat = "%s?page=%d&page_size=%d"
)
