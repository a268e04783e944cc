package domain

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetLogLevel() string
	GetMaxFileSize() int64
	GetSupabaseURL() string
	GetSupabaseKey() string
	GetServiceRoleKey() string
	GetAdminAPISecret() string
}

// AuthService validates tokens and resolves the acting domain user.
type AuthService interface {
	ValidateToken(token string) (*SupabaseUser, error)
	ResolveUser(token string) (*User, error)
}
