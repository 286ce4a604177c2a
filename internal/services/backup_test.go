package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/AnshRaj112/biography-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memObjects struct {
	puts map[string][]byte
	err  error
}

func (m *memObjects) PutObject(_ context.Context, bucket, object string, data []byte, _ string) error {
	if m.err != nil {
		return m.err
	}
	m.puts[bucket+"/"+object] = data
	return nil
}

func TestBackupFilename(t *testing.T) {
	at := time.Date(2024, 2, 9, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "biography_backup_2024-02-09.json", BackupFilename(at))
}

func TestExportJSONKeepsFullDocument(t *testing.T) {
	doc := InitialProfile(OnboardingRequest{Name: "Ada"})
	raw, err := ExportJSON(&doc)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "\n  \"name\": \"Ada\"")

	var back models.ProfileDocument
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, doc, back)
}

func TestBackupArchiver(t *testing.T) {
	objects := &memObjects{puts: map[string][]byte{}}
	a := NewBackupArchiver(objects, "exports")

	require.NoError(t, a.Archive(context.Background(), "u1", "biography_backup_2024-02-09.json", []byte("{}")))
	assert.Equal(t, []byte("{}"), objects.puts["exports/backups/u1/biography_backup_2024-02-09.json"])

	objects.err = errors.New("denied")
	assert.Error(t, a.Archive(context.Background(), "u1", "x.json", nil))

	var none *BackupArchiver
	assert.NoError(t, none.Archive(context.Background(), "u1", "x.json", nil))
}
