package domain

const (
	CollectionUsers = "users"
)
const (
	CollectionAudios = "audios"
)
const (
	CollectionHistories = "histories"
)
const (
	CollectionPlaylists = "playlists"
)
const (
	CollectionAutoGeneratedPlaylists = "auto_generated_playlists"
)
const (
	CollectionFavorites = "favorites"
)
const (
	CollectionEmailVerificationTokens = "email_verification_tokens"
)
const (
	CollectionPasswordResetTokens = "password_reset_tokens"
)
