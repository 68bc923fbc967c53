package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taha12-ok/comforty-order-service/internal/config"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("SANITY_PROJECT_ID", "ms9xwjo9")
	t.Setenv("SANITY_AUTH_TOKEN", "sk-test-token")
	t.Setenv("EMAIL_USER", "store@example.com")
	t.Setenv("EMAIL_APP_PASSWORD", "app-password")
	t.Setenv("EMAIL_FROM", "store@example.com")
}

func TestConfig_Validate(t *testing.T) {
	t.Run("all required env set", func(t *testing.T) {
		setRequiredEnv(t)

		conf := config.New()
		require.NoError(t, conf.Validate())

		assert.Equal(t, "ms9xwjo9", conf.Sanity.ProjectID)
		assert.Equal(t, "production", conf.Sanity.Dataset)
		assert.Equal(t, "2024-02-02", conf.Sanity.APIVersion)
		assert.Equal(t, 587, conf.SMTP.Port)
		assert.Equal(t, "https://comforty.com", conf.Store.BaseURL)
	})

	t.Run("missing sanity token fails at startup", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("SANITY_AUTH_TOKEN", "")

		conf := config.New()
		assert.Error(t, conf.Validate())
	})

	t.Run("missing email credentials fails at startup", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("EMAIL_APP_PASSWORD", "")

		conf := config.New()
		assert.Error(t, conf.Validate())
	})

	t.Run("kafka brokers are optional", func(t *testing.T) {
		setRequiredEnv(t)

		conf := config.New()
		require.NoError(t, conf.Validate())
		assert.Empty(t, conf.Kafka.Brokers)

		t.Setenv("KAFKA_BROKERS", "localhost:9092")
		conf = config.New()
		require.NoError(t, conf.Validate())
		assert.Equal(t, []string{"localhost:9092"}, conf.Kafka.Brokers)
	})
}
