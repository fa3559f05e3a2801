package api_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khsu/projectms/internal/model"
)

// uploadFile posts a multipart form with the given file to a task.
func (env *testEnv) uploadFile(
	t *testing.T,
	taskID, filename string,
	content []byte,
	fields map[string]string,
) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)

	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/tasks/"+taskID+"/files", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	w := httptest.NewRecorder()
	env.server.Router().ServeHTTP(w, req)
	return w
}

func TestFileUploadDownloadDelete(t *testing.T) {
	env := newTestEnv(t)

	project := env.seedProject(t, model.ProjectStatusInProgress)
	member := env.seedMember(t, "ana@example.com")
	task := env.seedTask(t, project.ID, "With attachment",
		time.Now().Add(48*time.Hour), nil)

	content := []byte("pdf bytes")
	w := env.uploadFile(t, task.ID, "design.pdf", content,
		map[string]string{"uploaded_by": member.ID})
	requireStatus(t, w, http.StatusCreated)

	var saved model.File
	decode(t, w, &saved)
	assert.Equal(t, "design.pdf", saved.Name)
	assert.Equal(t, int64(len(content)), saved.Size)
	require.NotNil(t, saved.UploadedByID)
	assert.Equal(t, member.ID, *saved.UploadedByID)

	// Listing returns metadata only.
	w = env.do(t, http.MethodGet, "/api/tasks/"+task.ID+"/files", nil)
	requireStatus(t, w, http.StatusOK)

	var listResp struct {
		Files []model.File `json:"files"`
	}
	decode(t, w, &listResp)
	require.Len(t, listResp.Files, 1)
	assert.Equal(t, saved.ID, listResp.Files[0].ID)

	// Download streams the original bytes back.
	w = env.do(t, http.MethodGet, "/api/files/"+saved.ID, nil)
	requireStatus(t, w, http.StatusOK)
	assert.Equal(t, content, w.Body.Bytes())
	assert.Contains(t, w.Header().Get("Content-Disposition"), "design.pdf")

	w = env.do(t, http.MethodDelete, "/api/files/"+saved.ID, nil)
	requireStatus(t, w, http.StatusOK)

	w = env.do(t, http.MethodGet, "/api/files/"+saved.ID, nil)
	requireStatus(t, w, http.StatusNotFound)
}

func TestFileUploadUnknownTask(t *testing.T) {
	env := newTestEnv(t)

	w := env.uploadFile(t, "missing", "design.pdf", []byte("x"), nil)
	requireStatus(t, w, http.StatusNotFound)
}

func TestFileUploadUnknownUploader(t *testing.T) {
	env := newTestEnv(t)

	project := env.seedProject(t, model.ProjectStatusInProgress)
	task := env.seedTask(t, project.ID, "With attachment",
		time.Now().Add(48*time.Hour), nil)

	w := env.uploadFile(t, task.ID, "design.pdf", []byte("x"),
		map[string]string{"uploaded_by": "missing"})
	requireStatus(t, w, http.StatusBadRequest)
}

func TestFileUploadMissingFormField(t *testing.T) {
	env := newTestEnv(t)

	project := env.seedProject(t, model.ProjectStatusInProgress)
	task := env.seedTask(t, project.ID, "With attachment",
		time.Now().Add(48*time.Hour), nil)

	w := env.do(t, http.MethodPost, "/api/tasks/"+task.ID+"/files",
		map[string]any{"not": "a file"})
	requireStatus(t, w, http.StatusBadRequest)
}
