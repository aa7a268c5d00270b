//go:build e2e && unix

package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConfigFileCreation(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	workspace, err := tf.CreateTestWorkspace()
	require.NoError(t, err, "Failed to create test workspace")

	data, err := tf.WriteDataset("data.json", sampleDataset)
	require.NoError(t, err)

	configPath := filepath.Join(workspace, ".mathtimeline.toml")
	_, err = os.Stat(configPath)
	require.True(t, os.IsNotExist(err), "No config should exist initially")

	err = tf.StartApp("-d", data)
	require.NoError(t, err, "Failed to start app")
	require.True(t, tf.Ready(), "Should load the dataset")

	// Exit gracefully
	done := make(chan error, 1)
	go func() { done <- tf.cmd.Wait() }()
	tf.Quit()
	select {
	case <-done:
		// App exited cleanly
	case <-time.After(2 * time.Second):
		t.Fatal("app did not exit after quit")
	}

	configContent, err := os.ReadFile(configPath)
	require.NoError(t, err, "Config file should be created")

	configStr := string(configContent)
	require.Contains(t, configStr, "version = 1", "Config should contain version")
	require.Contains(t, configStr, "[timeline]", "Config should contain timeline settings")
	require.NotContains(t, configStr, data, "The -d flag is not persisted")
}

func TestConfigSuppliesDataSource(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	workspace, err := tf.CreateTestWorkspace()
	require.NoError(t, err, "Failed to create test workspace")

	_, err = tf.WriteDataset("people.yaml", `
mathematicians:
  - id: 7
    content: Ada Lovelace
    start: 1815-12-10
    end: 1852-11-27
events: []
`)
	require.NoError(t, err)

	config := "version = 1\n\n[data]\nsource = \"people.yaml\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(workspace, ".mathtimeline.toml"), []byte(config), 0644))

	require.NoError(t, tf.StartApp())
	require.True(t, tf.Ready(), "Should load the dataset named in the config")
	require.True(t, tf.SeePlain("Ada Lovelace"), "Should list the YAML record")
	require.True(t, tf.SeePlain("0/1 selected"), "Should count one entity")
}
