package config

import (
	"crypto/rand"
	"encoding/base64"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	HostIP      string        // Host IP for the server
	RESTPort    int           // Port for the REST API
	GinMode     string        // Mode for the Gin framework (e.g., release, debug, test)
	JWTSecret   string        // Secret key for JWT signing
	JWTIssuer   string        // Issuer claim for JWTs
	SessionTTL  time.Duration // Idle time after which an editing session is dropped
	MaxSessions int           // Upper bound on concurrent editing sessions
	MazeWidth   int           // Width of a new blank maze
	MazeHeight  int           // Height of a new blank maze
	EdgeMargin  int           // Pixels around a cell border that select its wall
	MazeFile    string        // File used by the terminal for save and open
	Sound       bool          // Whether the terminal plays sounds
	TermLog     string        // File the terminal logs to; empty discards logs
}

// Envs holds the application's configuration loaded from environment variables.
var Envs = initConfig()

// initConfig initializes and returns the application configuration.
// It loads environment variables from a .env file.
func initConfig() Config {
	// Load .env file if available
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	return Config{
		HostIP:      getEnvWithDefault("HOST_IP", "0.0.0.0"),
		RESTPort:    getEnvAsIntWithDefault("REST_PORT", 8080),
		GinMode:     getEnvWithDefault("GIN_MODE", "release"),
		JWTSecret:   getEnvWithDefault("JWT_SECRET", randomSecret()),
		JWTIssuer:   getEnvWithDefault("JWT_ISSUER", "mazeshare"),
		SessionTTL:  time.Duration(getEnvAsIntWithDefault("SESSION_TTL_MINUTES", 30)) * time.Minute,
		MaxSessions: getEnvAsIntWithDefault("MAX_SESSIONS", 256),
		MazeWidth:   getEnvAsIntWithDefault("MAZE_WIDTH", 10),
		MazeHeight:  getEnvAsIntWithDefault("MAZE_HEIGHT", 10),
		EdgeMargin:  getEnvAsIntWithDefault("EDGE_MARGIN", 12),
		MazeFile:    getEnvWithDefault("MAZE_FILE", "maze.txt"),
		Sound:       getEnvAsBoolWithDefault("SOUND", true),
		TermLog:     getEnvWithDefault("TERM_LOG", ""),
	}
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsIntWithDefault retrieves an integer environment variable, falling back to
// the default when it is unset or cannot be parsed.
func getEnvAsIntWithDefault(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("[APP] [WARNING] Environment variable %s must be an integer, using %d: %v", key, defaultValue, err)
		return defaultValue
	}
	return value
}

func getEnvAsBoolWithDefault(key string, defaultValue bool) bool {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("[APP] [WARNING] Environment variable %s must be a boolean, using %t: %v", key, defaultValue, err)
		return defaultValue
	}
	return value
}

// randomSecret signs tokens for this process only when JWT_SECRET is not set.
func randomSecret() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		log.Fatalf("[APP] [FATAL] Generating JWT secret: %v", err)
	}
	return base64.URLEncoding.EncodeToString(bytes)
}
