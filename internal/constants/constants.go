package constants

// Centralized constants for env keys, routes, JSON keys and log fields.
const (
	// Environment variable keys
	EnvConfigPath = "BATTLE_CONFIG"
	EnvDBPath     = "BATTLE_DB"

	DefaultConfigPath   = "./battle_config.json"
	DefaultContentPath  = "./battle_content.yaml"
	DefaultDBPath       = "./data/battles.db"
	DefaultServerAddr   = ":8080"
	DefaultHandSize     = 5
	DefaultRecentLimit  = 20
	MaxRecentLimit      = 100
	DefaultArenaWidth   = 1280
	DefaultArenaHeight  = 720
	DefaultEntitySize   = 150
	DefaultBaseAP       = 4
	DefaultColor        = "gray"
	DefaultCritMultiple = 1.25

	HeaderContentType = "Content-Type"
	ContentTypeJSON   = "application/json"
)

// Routes used by the backend router
const (
	RouteAPIPrefix  = "/api"
	RouteCards      = "/cards"
	RouteCharacters = "/characters"
	RouteEncounters = "/encounters"
	RouteBattles    = "/battles"
	RouteBattleByID = "/battles/:battleID"
	RouteVersion    = "/version"
	RouteStats      = "/encounters/stats"
	RouteHealth     = "/healthz"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyDetails = "details"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest       = "Invalid request"
	ErrInvalidBattleID      = "Invalid battle ID"
	ErrBattleNotFound       = "Battle not found"
	ErrEncounterNotFound    = "Encounter not found"
	ErrFailedRunBattle      = "Failed to run battle"
	ErrFailedFetchBattles   = "Failed to fetch battles"
	ErrFailedEncodeResponse = "Failed to encode response"
)

// Logging field names
const (
	LogFieldBattleID  = "battle_id"
	LogFieldTurn      = "turn"
	LogFieldTeam      = "team"
	LogFieldWinner    = "winning_team"
	LogFieldEntity    = "entity"
	LogFieldTarget    = "target"
	LogFieldCard      = "card"
	LogFieldDamage    = "damage"
	LogFieldHP        = "hp"
	LogFieldState     = "state"
	LogFieldEvent     = "event"
	LogFieldEncounter = "encounter"
	LogFieldSeed      = "seed"
	LogFieldAddr      = "addr"
	LogFieldPath      = "path"
)
