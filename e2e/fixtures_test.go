//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"path/filepath"
)

const sampleDataset = `{
  "mathematicians": [
    {"id": 1, "content": "Euclid", "start": "-300-01-01", "end": "-265-01-01", "tags": ["geometry"]},
    {"id": 2, "content": "Hypatia", "start": "350-01-01", "end": "415-03-08", "tags": ["astronomy", "geometry"]},
    {"id": 3, "content": "Emmy Noether", "start": "1882-03-23", "end": "1935-04-14", "tags": ["algebra"]}
  ],
  "events": [
    {"id": 10, "content": "Principia published", "start": "1687-07-05", "tags": ["physics"]}
  ]
}`

// CreateTestWorkspace creates a temporary directory the app runs in
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	tmpDir := tf.t.TempDir()
	tf.workspace = tmpDir
	return tmpDir, nil
}

// WriteDataset writes content under name in the workspace and returns its path
func (tf *TUITestFramework) WriteDataset(name, content string) (string, error) {
	if tf.workspace == "" {
		return "", fmt.Errorf("workspace not created")
	}
	path := filepath.Join(tf.workspace, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write dataset: %w", err)
	}
	return path, nil
}

// StartWithSample creates a workspace holding the sample dataset and
// launches the app on it
func (tf *TUITestFramework) StartWithSample(args ...string) (string, error) {
	if _, err := tf.CreateTestWorkspace(); err != nil {
		return "", err
	}
	path, err := tf.WriteDataset("data.json", sampleDataset)
	if err != nil {
		return "", err
	}
	return path, tf.StartApp(append([]string{"-d", path}, args...)...)
}
