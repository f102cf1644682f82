package conf

type ContextKey string

// UserKey is the request-context key the auth middleware stores the
// authenticated *model.User under.
const UserKey ContextKey = "user"

var (
	Conf *Config

	Version   = "dev"
	GitCommit = "unknown"
)
