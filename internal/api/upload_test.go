package api

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestValidateUpload_WrongExtension(t *testing.T) {
	path := writeTempFile(t, "plan.mpp", "data")

	err := ValidateUpload(path)

	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), ".xer")
}

func TestValidateUpload_ExtensionCaseInsensitive(t *testing.T) {
	path := writeTempFile(t, "plan.XER", "data")
	assert.NoError(t, ValidateUpload(path))
}

func TestValidateUpload_MissingFile(t *testing.T) {
	err := ValidateUpload(filepath.Join(t.TempDir(), "nope.xer"))
	require.ErrorIs(t, err, ErrValidation)
}

func TestUploadScheduleFile(t *testing.T) {
	path := writeTempFile(t, "baseline.xer", "ERMHDR\t19.12\n")

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/projects/4/upload-xer", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, "baseline.xer", hdr.Filename)
		assert.Equal(t, "Baseline", r.FormValue("schedule_name"))
		assert.Equal(t, "uploader", r.FormValue("created_by"))

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"message": "File uploaded and parsed successfully",
			"schedule": map[string]any{
				"id": 11, "project_id": 4, "name": "Baseline",
				"status": "parsed", "created_date": "2024-01-05T09:00:00",
			},
		})
	}))

	sched, err := client.UploadScheduleFile(context.Background(), 4, path, "Baseline", "", "uploader")
	require.NoError(t, err)

	assert.Equal(t, 11, sched.ID)
	assert.Equal(t, "Baseline", sched.Name)
	assert.Equal(t, "parsed", string(sched.Status))
}

func TestUploadScheduleFile_RejectedBeforeNetwork(t *testing.T) {
	called := false
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	_, err := client.UploadScheduleFile(context.Background(), 4,
		writeTempFile(t, "plan.pdf", "x"), "", "", "")

	require.ErrorIs(t, err, ErrValidation)
	assert.False(t, called)
}

func TestUploadScheduleFile_ServerParseError(t *testing.T) {
	path := writeTempFile(t, "broken.xer", "not really xer")

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "No TASK table found"})
	}))

	_, err := client.UploadScheduleFile(context.Background(), 4, path, "", "", "")

	require.ErrorIs(t, err, ErrRequestFailed)
	assert.Contains(t, err.Error(), "No TASK table found")
}
