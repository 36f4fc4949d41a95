package constants

const (
	// Session
	SessionName            = "easyblog_session"
	SessionKeySuccessFlash = "success"

	// Cache keys
	CacheKeyAllPosts   = "posts:all"
	CacheKeyPostPrefix = "post:"
)
