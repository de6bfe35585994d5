package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ustc21xyx/cardmeta/png"
	"github.com/ustc21xyx/cardmeta/testutil"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	return NewServer(prometheus.NewRegistry()).Router()
}

func doRequest(t *testing.T, h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, body io.Reader) APIResponse {
	t.Helper()
	var resp APIResponse
	require.NoError(t, json.NewDecoder(body).Decode(&resp))
	return resp
}

func TestHealth(t *testing.T) {
	h := newTestServer(t)

	w := doRequest(t, h, httptest.NewRequest("GET", "/api/v1/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decodeEnvelope(t, w.Body).Success)
}

func TestExtract(t *testing.T) {
	const card = `{"spec":"chara_card_v2","spec_version":"2.0","data":{"name":"Iris"}}`
	p, err := png.Embed(testutil.TinyPNG(), card, nil)
	require.NoError(t, err)

	h := newTestServer(t)
	w := doRequest(t, h, httptest.NewRequest("POST", "/api/v1/cards/extract", bytes.NewReader(p)))
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeEnvelope(t, w.Body)
	require.True(t, resp.Success)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "chara", data["keyword"])
	assert.Equal(t, "Iris", data["name"])
	assert.Equal(t, "chara_card_v2", data["spec"])
}

func TestExtractNotFound(t *testing.T) {
	h := newTestServer(t)

	w := doRequest(t, h, httptest.NewRequest("POST", "/api/v1/cards/extract",
		bytes.NewReader(testutil.TinyPNG())))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, decodeEnvelope(t, w.Body).Success)
}

func TestExtractCorruptCard(t *testing.T) {
	p := testutil.TinyPNG()
	iend := p[len(p)-12:]
	bad := append([]byte(nil), p[:len(p)-12]...)
	bad = append(bad, testutil.TextChunk("chara", "%%% not base64 %%%")...)
	bad = append(bad, iend...)

	h := newTestServer(t)
	w := doRequest(t, h, httptest.NewRequest("POST", "/api/v1/cards/extract", bytes.NewReader(bad)))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func embedRequest(t *testing.T, image []byte, card string, fields map[string]string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	fw, err := mw.CreateFormFile("image", "char.png")
	require.NoError(t, err)
	_, err = fw.Write(image)
	require.NoError(t, err)

	require.NoError(t, mw.WriteField("card", card))
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/api/v1/cards/embed", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestEmbed(t *testing.T) {
	const card = `{"spec":"chara_card_v2","spec_version":"2.0","data":{"name":"Iris"}}`

	h := newTestServer(t)
	w := doRequest(t, h, embedRequest(t, testutil.TinyPNG(), card, nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))

	e, err := png.Extract(w.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, card, e.Text)
}

func TestEmbedSelective(t *testing.T) {
	h := newTestServer(t)
	w := doRequest(t, h, embedRequest(t, testutil.TinyPNG(), `{"a":1}`,
		map[string]string{"chara": "false", "ccv3": "true"}))
	require.Equal(t, http.StatusOK, w.Code)

	e, err := png.Extract(w.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, png.KeywordCCv3, e.Keyword)
}

func TestEmbedNotPNG(t *testing.T) {
	h := newTestServer(t)
	w := doRequest(t, h, embedRequest(t, []byte("not a png"), `{"a":1}`, nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEmbedBadCard(t *testing.T) {
	h := newTestServer(t)
	w := doRequest(t, h, embedRequest(t, testutil.TinyPNG(), `{"a":`, nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStrip(t *testing.T) {
	p, err := png.Embed(testutil.TinyPNG(), `{"a":1}`, nil)
	require.NoError(t, err)

	h := newTestServer(t)
	w := doRequest(t, h, httptest.NewRequest("POST", "/api/v1/cards/strip", bytes.NewReader(p)))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, testutil.TinyPNG(), w.Body.Bytes())
}
