package common

// AuthorizationHeaderName carries the bearer credential on protected calls.
const AuthorizationHeaderName = "Authorization"

// BearerScheme is the auth scheme expected in AuthorizationHeaderName.
const BearerScheme = "Bearer"

// Keys of the two durable entries the client keeps for its session.
const (
	SessionUserKey  = "user"
	SessionTokenKey = "token"
)
