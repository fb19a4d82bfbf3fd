package constants

// viper keys
const (
	ViperListenAddr   = "listen_addr"
	ViperDatabaseDSN  = "database_dsn"
	ViperDataFile     = "data_file"
	ViperPortalURL    = "portal_url"
	ViperSecretKey    = "secret_key"
	ViperAllowOrigins = "allow_origins"
)

// cookie / context keys
const (
	CookieKeySecretToken = "secret_token"
	CtxKeyRequestID      = "request_id"
)
