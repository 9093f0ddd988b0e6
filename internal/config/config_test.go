package config

import (
	"os"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

// resetViper clears global viper state between tests, since Load configures
// the package-level singleton.
func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

// chdirTemp switches to a fresh empty directory for the duration of the
// test, so Load's "." config path never picks up a real usbode.yaml.
func chdirTemp(t *testing.T) {
	t.Helper()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(orig) })
}

func TestLoad_DefaultsWithNoConfigFile(t *testing.T) {
	resetViper(t)
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "USBODE  ", cfg.VendorString)
	require.Equal(t, "Virtual CDROM   ", cfg.ProductString)
	require.Equal(t, "1.00", cfg.RevisionString)
	require.Equal(t, "warn", cfg.LogLevel)
	require.Equal(t, uint32(0), cfg.HardwareID)
}

func TestLoad_EnvironmentOverridesDefaults(t *testing.T) {
	resetViper(t)
	chdirTemp(t)
	t.Setenv("USBODE_LOG_LEVEL", "debug")
	t.Setenv("USBODE_HARDWARE_ID", "305419896") // 0x12345678

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, uint32(305419896), cfg.HardwareID)
}

func TestResolveHardwareID_UsesConfiguredValueWhenSet(t *testing.T) {
	cfg := &Config{HardwareID: 0x12345678}
	require.Equal(t, uint32(0x12345678), cfg.ResolveHardwareID())
}

func TestResolveHardwareID_GeneratesNonZeroWhenUnset(t *testing.T) {
	cfg := &Config{}
	id := cfg.ResolveHardwareID()
	require.NotZero(t, id)
	// The generated value is stored, so repeated calls on the same Config
	// agree.
	require.Equal(t, id, cfg.ResolveHardwareID())
}

func TestSerial_FormatsFromHardwareID(t *testing.T) {
	cfg := &Config{HardwareID: 0xCAFEF00D}
	require.Equal(t, "USBODE-CAFEF00D", cfg.Serial())
}
