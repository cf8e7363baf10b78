package util

import (
	"encoding/pem"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmussaku/mongodb-etl-poc/internal/config"
)

func TestLoadTLSConfigNil(t *testing.T) {
	cfg, err := LoadTLSConfig(nil)
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestLoadTLSConfigCA(t *testing.T) {
	server := httptest.NewTLSServer(nil)
	defer server.Close()

	path := filepath.Join(t.TempDir(), "ca.pem")
	block := &pem.Block{Type: "CERTIFICATE", Bytes: server.Certificate().Raw}
	require.NoError(t, os.WriteFile(path, pem.EncodeToMemory(block), 0o600))

	cfg, err := LoadTLSConfig(&config.TLSConfig{CA: path})
	require.NoError(t, err)
	assert.NotNil(t, cfg.RootCAs)
	assert.Empty(t, cfg.Certificates)
}

func TestLoadTLSConfigErrors(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.pem")
	require.NoError(t, os.WriteFile(garbage, []byte("not a cert"), 0o600))

	_, err := LoadTLSConfig(&config.TLSConfig{CA: filepath.Join(dir, "missing.pem")})
	assert.Error(t, err)

	_, err = LoadTLSConfig(&config.TLSConfig{CA: garbage})
	assert.Error(t, err)

	_, err = LoadTLSConfig(&config.TLSConfig{Cert: garbage, Key: garbage})
	assert.Error(t, err)
}
