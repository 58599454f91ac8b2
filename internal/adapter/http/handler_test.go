package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	nethttp "net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cv-builder/internal/model"
	"cv-builder/internal/store"
)

const validDoc = `meta:
  output_filename: jane_doe_cv.pdf
header:
  name: Jane Doe
  role: Backend Engineer
profile: A paragraph.
`

type fakeExporter struct {
	out []byte
	err error
}

func (f *fakeExporter) Export(ctx context.Context, rec *model.CVRecord) ([]byte, error) {
	return f.out, f.err
}

func newTestApp(t *testing.T, exporter Exporter) (*fiber.App, string) {
	t.Helper()
	dataFile := filepath.Join(t.TempDir(), "cv_data.yaml")
	require.NoError(t, os.WriteFile(dataFile, []byte(validDoc), 0o644))

	s := store.NewFileStore(dataFile)
	v := model.NewValidator("../../../templates/cv.schema.json")

	app := fiber.New()
	NewHandler(s, v, exporter, "../../../web").Register(app)
	return app, dataFile
}

func postJSON(t *testing.T, app *fiber.App, path, yamlText string) *nethttp.Response {
	t.Helper()
	body, err := json.Marshal(map[string]string{"yaml": yamlText})
	require.NoError(t, err)
	req, err := nethttp.NewRequest(nethttp.MethodPost, path, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *nethttp.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var m map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&m))
	return m
}

func TestGetData(t *testing.T) {
	app, _ := newTestApp(t, &fakeExporter{})

	req, _ := nethttp.NewRequest(nethttp.MethodGet, "/data", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, validDoc, body["yaml"])
}

func TestSavePersistsValidDocument(t *testing.T) {
	app, dataFile := newTestApp(t, &fakeExporter{})

	updated := "header:\n  name: New Name\n  role: New Role\n"
	resp := postJSON(t, app, "/save", updated)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, true, decodeBody(t, resp)["ok"])

	onDisk, err := os.ReadFile(dataFile)
	require.NoError(t, err)
	assert.Equal(t, updated, string(onDisk))
}

func TestSaveRejectsWithoutPersisting(t *testing.T) {
	app, dataFile := newTestApp(t, &fakeExporter{})

	cases := map[string]string{
		"malformed yaml":  "header: [unclosed",
		"missing role":    "header:\n  name: Only Name\n",
		"unknown section": validDoc + "hobbies: [chess]\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			resp := postJSON(t, app, "/save", doc)
			require.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
			body := decodeBody(t, resp)
			assert.Equal(t, false, body["ok"])
			assert.NotEmpty(t, body["error"])

			onDisk, err := os.ReadFile(dataFile)
			require.NoError(t, err)
			assert.Equal(t, validDoc, string(onDisk), "rejected input must not reach disk")
		})
	}
}

func TestValidateNeverPersists(t *testing.T) {
	app, dataFile := newTestApp(t, &fakeExporter{})

	resp := postJSON(t, app, "/validate", "header:\n  name: X\n  role: Y\n")
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, true, decodeBody(t, resp)["ok"])

	// Invalid input is a normal validate outcome, still 200.
	resp = postJSON(t, app, "/validate", "nope: [")
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, false, body["ok"])
	assert.NotEmpty(t, body["error"])

	onDisk, err := os.ReadFile(dataFile)
	require.NoError(t, err)
	assert.Equal(t, validDoc, string(onDisk))
}

func TestGenerateReturnsPDF(t *testing.T) {
	pdf := []byte("%PDF-1.7 fake body")
	app, _ := newTestApp(t, &fakeExporter{out: pdf})

	req, _ := nethttp.NewRequest(nethttp.MethodPost, "/generate", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	disposition := resp.Header.Get("Content-Disposition")
	assert.True(t, strings.HasPrefix(disposition, "attachment;"))
	assert.Contains(t, disposition, "jane_doe_cv.pdf")

	got, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, pdf, got)
}

func TestGenerateFromRequestBody(t *testing.T) {
	app, _ := newTestApp(t, &fakeExporter{out: []byte("%PDF-1.7")})

	resp := postJSON(t, app, "/generate", "header:\n  name: Other\n  role: Person\n")
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	// No output_filename in the submitted document: default applies.
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "cv.pdf")
}

func TestGenerateRejectsInvalidDocument(t *testing.T) {
	app, _ := newTestApp(t, &fakeExporter{out: []byte("%PDF-1.7")})

	resp := postJSON(t, app, "/generate", "header:\n  name: Only Name\n")
	require.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, decodeBody(t, resp)["ok"])
}

func TestGenerateSurfacesRenderFailure(t *testing.T) {
	app, _ := newTestApp(t, &fakeExporter{err: errors.New("renderer exploded")})

	req, _ := nethttp.NewRequest(nethttp.MethodPost, "/generate", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, nethttp.StatusInternalServerError, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, false, body["ok"])
	assert.Contains(t, body["error"], "renderer exploded")
}
