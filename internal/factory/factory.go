package factory

import (
	"errors"

	"github.com/fourline/gameroom/internal/credential"
	"github.com/fourline/gameroom/internal/dependencies/clock"
	"github.com/fourline/gameroom/internal/services/identity"
	"github.com/fourline/gameroom/internal/services/room"
	"github.com/fourline/gameroom/internal/services/user"
	"github.com/fourline/gameroom/internal/storage"
	"github.com/fourline/gameroom/internal/storage/memory"
	redisstorage "github.com/fourline/gameroom/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Hasher *credential.Hasher

	// Services
	IdentityService *identity.Service
	UserService     *user.Service
	RoomService     *room.Service
}

// Config holds configuration for the application factory
type Config struct {
	// JWTSecret signs issued tokens (required)
	JWTSecret []byte
	// BcryptCost is the password hashing cost
	// If zero, defaults to bcrypt.DefaultCost
	BcryptCost int
	// IdentityConfig holds token settings (optional)
	// If zero value, defaults to identity.DefaultConfig()
	IdentityConfig identity.Config
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	if len(cfg.JWTSecret) == 0 {
		return nil, errors.New("JWTSecret is required")
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	clk := clock.New()

	identityCfg := cfg.IdentityConfig
	if identityCfg.TokenTTL == 0 {
		identityCfg = identity.DefaultConfig()
	}

	return newWithDependencies(store, clk, credential.New(cfg.BcryptCost), cfg.JWTSecret, identityCfg), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, hasher *credential.Hasher, jwtSecret []byte, identityCfg identity.Config) *App {
	identityService := identity.New(jwtSecret, clk, identityCfg)
	userService := user.New(store, clk, hasher, identityService)
	roomService := room.New(store, clk, hasher)

	return &App{
		Storage:         store,
		Clock:           clk,
		Hasher:          hasher,
		IdentityService: identityService,
		UserService:     userService,
		RoomService:     roomService,
	}
}
