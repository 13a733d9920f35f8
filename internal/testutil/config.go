package testutil

import (
	"testing"

	"github.com/spf13/viper"
)

// ResetConfig resets viper and schedules another reset when the test completes.
func ResetConfig(t *testing.T) {
	t.Helper()

	// Reset viper
	viper.Reset()

	// Schedule another reset on test cleanup
	t.Cleanup(viper.Reset)
}

// SetViperValue sets a viper configuration value and schedules cleanup.
func SetViperValue(t *testing.T, key string, value any) {
	t.Helper()

	// Save old value
	oldValue := viper.Get(key)
	hadValue := viper.IsSet(key)

	// Set new value
	viper.Set(key, value)

	// Schedule cleanup
	t.Cleanup(func() {
		if hadValue {
			viper.Set(key, oldValue)
		}
		// Note: viper doesn't have an Unset function, so we can't
		// restore the "unset" state.
	})
}
