package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInitConfigDefaults(t *testing.T) {
	t.Setenv("REST_PORT", "9090")
	t.Setenv("SESSION_TTL_MINUTES", "5")
	t.Setenv("SOUND", "false")
	t.Setenv("MAZE_FILE", "shared.txt")

	c := initConfig()

	assert.Equal(t, 9090, c.RESTPort)
	assert.Equal(t, 5*time.Minute, c.SessionTTL)
	assert.False(t, c.Sound)
	assert.Equal(t, "shared.txt", c.MazeFile)
	assert.NotEmpty(t, c.JWTSecret)
}

func TestEnvParsingFallsBack(t *testing.T) {
	t.Setenv("MAX_SESSIONS", "many")
	t.Setenv("SOUND", "loud")

	assert.Equal(t, 7, getEnvAsIntWithDefault("MAX_SESSIONS", 7))
	assert.True(t, getEnvAsBoolWithDefault("SOUND", true))
	assert.Equal(t, "fallback", getEnvWithDefault("MAZESHARE_UNSET_KEY", "fallback"))
}
