package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"instagram_copywriter/copywriter"
)

var pngBytes = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00, 0x00, 0x0D, 0x49, 0x48, 0x44, 0x52}

func newTestServer(t *testing.T, llm copywriter.LLMClient) (*Server, string) {
	t.Helper()
	dir := t.TempDir()
	var gen *copywriter.Generator
	if llm != nil {
		var err error
		gen, err = copywriter.NewGenerator(llm, zap.NewNop())
		require.NoError(t, err)
	}
	srv, err := New(gen, copywriter.Config{UploadDir: dir}, zap.NewNop())
	require.NoError(t, err)
	return srv, dir
}

func multipartBody(t *testing.T, field, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(data)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(v))
}

func TestRootReportsGeneratorStatus(t *testing.T) {
	srv, _ := newTestServer(t, &copywriter.ScriptedLLM{})
	rec := doJSON(t, srv.Routes(), http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	decode(t, rec, &body)
	assert.Equal(t, "ready", body["status"])

	srv, _ = newTestServer(t, nil)
	rec = doJSON(t, srv.Routes(), http.MethodGet, "/", nil)
	var body2 map[string]string
	decode(t, rec, &body2)
	assert.Equal(t, "api_key_missing", body2["status"])
}

func TestUploadStoresImageAndInfersTemplate(t *testing.T) {
	srv, dir := newTestServer(t, nil)
	h := srv.Routes()

	buf, ctype := multipartBody(t, "file", "object_vase.png", pngBytes)
	req := httptest.NewRequest(http.MethodPost, "/api/upload", buf)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp uploadResp
	decode(t, rec, &resp)
	assert.Equal(t, "object_vase.png", resp.Filename)
	assert.Equal(t, "/uploads/object_vase.png", resp.Path)
	assert.Equal(t, "OBJECT", resp.InferredTemplate)

	data, err := os.ReadFile(filepath.Join(dir, "object_vase.png"))
	require.NoError(t, err)
	assert.Equal(t, pngBytes, data)
}

func TestUploadRejectsNonImages(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	buf, ctype := multipartBody(t, "file", "notes.txt", []byte("plain text"))
	req := httptest.NewRequest(http.MethodPost, "/api/upload", buf)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "must be an image")
}

func TestUploadMultipleSkipsNonImages(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, name := range []string{"object_a.png", "detail_b.png"} {
		fw, err := w.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = fw.Write(pngBytes)
		require.NoError(t, err)
	}
	fw, err := w.CreateFormFile("files", "notes.txt")
	require.NoError(t, err)
	_, err = fw.Write([]byte("text"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload-multiple", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Uploaded []uploadResp `json:"uploaded"`
	}
	decode(t, rec, &resp)
	require.Len(t, resp.Uploaded, 2)
	assert.Equal(t, "OBJECT", resp.Uploaded[0].InferredTemplate)
	assert.Equal(t, "DETAIL", resp.Uploaded[1].InferredTemplate)
}

func TestUploadListAndDelete(t *testing.T) {
	srv, dir := newTestServer(t, nil)
	h := srv.Routes()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "object_vase.png"), pngBytes, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	rec := doJSON(t, h, http.MethodGet, "/api/uploads", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listed struct {
		Files []uploadResp `json:"files"`
	}
	decode(t, rec, &listed)
	require.Len(t, listed.Files, 1)
	assert.Equal(t, "object_vase.png", listed.Files[0].Filename)

	rec = doJSON(t, h, http.MethodDelete, "/api/uploads/object_vase.png", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	_, err := os.Stat(filepath.Join(dir, "object_vase.png"))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	rec = doJSON(t, h, http.MethodDelete, "/api/uploads/object_vase.png", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSchedulePreview(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	rec := doJSON(t, srv.Routes(), http.MethodGet, "/api/schedule-preview?n_posts=7", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		NPosts   int `json:"n_posts"`
		Schedule []struct {
			Index      int    `json:"index"`
			DayCode    string `json:"day_code"`
			DayName    string `json:"day_name"`
			TemplateID string `json:"template_id"`
			PostRole   string `json:"post_role"`
			CTAEnabled bool   `json:"cta_enabled"`
		} `json:"schedule"`
	}
	decode(t, rec, &resp)
	assert.Equal(t, 7, resp.NPosts)
	require.Len(t, resp.Schedule, 7)
	last := resp.Schedule[6]
	assert.Equal(t, "sun", last.DayCode)
	assert.Equal(t, "Sunday", last.DayName)
	assert.Equal(t, "STORY", last.TemplateID)
	assert.True(t, last.CTAEnabled)
}

func TestSchedulePreviewRejectsBadCounts(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	h := srv.Routes()
	rec := doJSON(t, h, http.MethodGet, "/api/schedule-preview?n_posts=0", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = doJSON(t, h, http.MethodGet, "/api/schedule-preview?n_posts=abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func briefFixture() copywriter.WeekBrief {
	return copywriter.WeekBrief{
		WeekID:             "2026-03-02",
		Theme:              "oak week",
		Goal:               "brand awareness",
		Voice:              "minimal",
		FeaturedCategory:   "bowls",
		AvailabilityPolicy: copywriter.AvailabilityNone,
		Keywords:           []string{"oak", "grain", "patina"},
		CTA:                copywriter.CTA{Day: "sun", Text: "Ask us about the next trade fair."},
		ContinuityRules:    "Keep the tone sober across the week.",
	}
}

func postFixture() copywriter.Post {
	caption := "A turned oak bowl rests on the bench. The grain follows the rim in one clean curve. Atelier Rovere — Shaped by hand."
	return copywriter.Post{
		TemplateID:    copywriter.TemplateObject,
		Subject:       "vase",
		SlotIndex:     0,
		DayName:       "mon",
		PostRole:      copywriter.RoleValue,
		Caption:       caption,
		KeywordsUsed:  []string{"oak"},
		DoNotUse:      []string{"price"},
		IGCaptionFull: caption + "\n#handmade",
		Content: copywriter.PostContent{
			Hashtags:          []string{"#handmade"},
			AltText:           "A wooden bowl on a workbench.",
			VisualDescription: "Turned oak bowl, side light.",
		},
	}
}

func TestGenerateEndToEnd(t *testing.T) {
	brief, err := json.Marshal(briefFixture())
	require.NoError(t, err)
	post, err := json.Marshal(postFixture())
	require.NoError(t, err)

	llm := &copywriter.ScriptedLLM{Responses: []string{string(brief), string(post)}}
	srv, dir := newTestServer(t, llm)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "object_vase.png"), pngBytes, 0o644))

	req := copywriter.RunRequest{
		Goal:             "brand awareness",
		Theme:            "oak week",
		Images:           []string{"/uploads/object_vase.png"},
		NPosts:           1,
		CTAMode:          copywriter.CTAModeDM,
		BrandName:        "Atelier Rovere",
		BrandTagline:     "Shaped by hand",
		RequiredHashtags: []string{"#handmade"},
		StartDate:        "2026-03-02",
	}
	rec := doJSON(t, srv.Routes(), http.MethodPost, "/api/generate", req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res copywriter.RunResult
	decode(t, rec, &res)
	assert.NotEmpty(t, res.RunID)
	require.Len(t, res.Posts, 1)
	assert.Equal(t, filepath.Join(dir, "object_vase.png"), res.ChosenImages[0])
	assert.Contains(t, res.Posts[0].Content.Hashtags, "#handmade")
}

func TestGenerateWithoutGeneratorFails(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	rec := doJSON(t, srv.Routes(), http.MethodPost, "/api/generate", copywriter.RunRequest{})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGenerateMapsMissingImagesTo404(t *testing.T) {
	srv, _ := newTestServer(t, &copywriter.ScriptedLLM{})
	req := copywriter.RunRequest{
		NPosts: 1,
		Images: []string{"/uploads/object_nope.png"},
	}
	rec := doJSON(t, srv.Routes(), http.MethodPost, "/api/generate", req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStatusForError(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{copywriter.ErrNotFound, http.StatusNotFound},
		{copywriter.ErrInvalidArgument, http.StatusBadRequest},
		{copywriter.ErrUnknownPrefix, http.StatusBadRequest},
		{copywriter.ErrMissingImages, http.StatusBadRequest},
		{copywriter.ErrExhausted, http.StatusBadRequest},
		{copywriter.ErrPolicyViolation, http.StatusUnprocessableEntity},
		{copywriter.ErrSchemaViolation, http.StatusUnprocessableEntity},
		{copywriter.ErrProvider, http.StatusBadGateway},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		assert.Equal(t, c.code, statusForError(fmt.Errorf("wrapped: %w", c.err)), c.err.Error())
	}
}

func TestReportEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	res := copywriter.RunResult{
		RunID:        "test-run",
		WeekBrief:    briefFixture(),
		Schedule:     []copywriter.ScheduleSlot{{DayName: "mon", TemplateID: copywriter.TemplateObject, PostRole: copywriter.RoleValue}},
		ChosenImages: []string{"object_vase.png"},
		Posts:        []copywriter.Post{postFixture()},
	}
	rec := doJSON(t, srv.Routes(), http.MethodPost, "/api/report", res)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	decode(t, rec, &body)
	assert.Contains(t, body["markdown"], "# Week plan 2026-03-02")
	assert.Contains(t, body["markdown"], "Monday")
	assert.Contains(t, body["html"], "<h1")
}

func TestServedUploadsAreStatic(t *testing.T) {
	srv, dir := newTestServer(t, nil)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "object_vase.png"), pngBytes, 0o644))
	rec := doJSON(t, srv.Routes(), http.MethodGet, "/uploads/object_vase.png", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, pngBytes, rec.Body.Bytes())
}
