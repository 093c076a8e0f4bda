package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"labfleet/backend/app/controllers"
	"labfleet/backend/app/dto"
	"labfleet/backend/app/middleware"
	"labfleet/backend/app/models"
	"labfleet/backend/app/repo"
	"labfleet/backend/app/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestServer(t *testing.T, apiToken string) *httptest.Server {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&models.Command{}))

	cmdSvc := services.NewCommandService(repo.NewCommandRepository(gdb))
	tracker := services.NewLivenessTracker(60 * time.Second)
	artifacts, err := services.NewArtifactStore(t.TempDir())
	require.NoError(t, err)

	h := NewRouter(
		controllers.NewHTTPController(),
		controllers.NewCommandController(cmdSvc),
		controllers.NewLivenessController(tracker, cmdSvc),
		controllers.NewArtifactController(artifacts),
		&middleware.Auth{Token: apiToken},
	)
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(b))
	require.NoError(t, err)
	return resp
}

func decodeJSON[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestEnqueueValidatesInput(t *testing.T) {
	srv := newTestServer(t, "")

	tests := []struct {
		name string
		body dto.EnqueueRequest
		want int
	}{
		{"ok", dto.EnqueueRequest{ClientID: "lab1", Command: "screenshot"}, http.StatusOK},
		{"missing client", dto.EnqueueRequest{Command: "screenshot"}, http.StatusBadRequest},
		{"missing command", dto.EnqueueRequest{ClientID: "lab1"}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, srv.URL+"/enqueue-command", tt.body)
			resp.Body.Close()
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestCommandRoundTrip(t *testing.T) {
	srv := newTestServer(t, "")

	// enqueue with args "X"
	resp := postJSON(t, srv.URL+"/enqueue-command", dto.EnqueueRequest{ClientID: "lab1", Command: "screenshot", Args: "X"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	enq := decodeJSON[dto.EnqueueResponse](t, resp)
	require.NotZero(t, enq.ID)

	// client fetch returns args unchanged
	resp, err := http.Get(srv.URL + "/poll-commands/lab1")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	poll := decodeJSON[dto.PollResponse](t, resp)
	require.Len(t, poll.Commands, 1)
	assert.Equal(t, enq.ID, poll.Commands[0].ID)
	assert.Equal(t, "X", poll.Commands[0].Args)
	assert.Equal(t, models.StatusPending, poll.Commands[0].Status)

	// other clients never see it
	resp, err = http.Get(srv.URL + "/poll-commands/lab2")
	require.NoError(t, err)
	other := decodeJSON[dto.PollResponse](t, resp)
	assert.Empty(t, other.Commands)

	// client reports result "Y"
	resp = postJSON(t, srv.URL+"/poll-commands/lab1", dto.ReportRequest{ID: enq.ID, Status: "done", Result: "Y"})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// queue drained
	resp, err = http.Get(srv.URL + "/poll-commands/lab1")
	require.NoError(t, err)
	poll = decodeJSON[dto.PollResponse](t, resp)
	assert.Empty(t, poll.Commands)

	// status query reflects done/"Y"
	resp, err = http.Get(fmt.Sprintf("%s/commands/%d", srv.URL, enq.ID))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	entry := decodeJSON[dto.QueueEntry](t, resp)
	assert.Equal(t, models.StatusDone, entry.Status)
	assert.Equal(t, "Y", entry.Result)
}

func TestReportUnknownCommand(t *testing.T) {
	srv := newTestServer(t, "")

	resp := postJSON(t, srv.URL+"/poll-commands/lab1", dto.ReportRequest{ID: 777, Status: "done", Result: "x"})
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHeartbeatAndStatus(t *testing.T) {
	srv := newTestServer(t, "")

	// unknown before any heartbeat
	resp, err := http.Get(srv.URL + "/status/lab1")
	require.NoError(t, err)
	st := decodeJSON[dto.StatusResponse](t, resp)
	assert.Equal(t, services.StatusUnknown, st.Status)

	// heartbeat always acks
	resp, err = http.Post(srv.URL+"/heartbeatz/lab1", "", nil)
	require.NoError(t, err)
	hb := decodeJSON[dto.HeartbeatResponse](t, resp)
	assert.True(t, hb.Alive)
	assert.Equal(t, "lab1", hb.ClientID)

	// online immediately after
	resp, err = http.Get(srv.URL + "/status/lab1")
	require.NoError(t, err)
	st = decodeJSON[dto.StatusResponse](t, resp)
	assert.Equal(t, services.StatusOnline, st.Status)
}

func TestClientsListsHeartbeatAndStoreUnion(t *testing.T) {
	srv := newTestServer(t, "")

	resp, err := http.Post(srv.URL+"/heartbeatz/lab1", "", nil)
	require.NoError(t, err)
	resp.Body.Close()

	resp = postJSON(t, srv.URL+"/enqueue-command", dto.EnqueueRequest{ClientID: "lab2", Command: "screenshot"})
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/clients")
	require.NoError(t, err)
	list := decodeJSON[dto.ClientListResponse](t, resp)
	require.Equal(t, 2, list.Count)
	assert.Equal(t, "lab1", list.Clients[0].ClientID)
	assert.Equal(t, services.StatusOnline, list.Clients[0].Status)
	assert.Equal(t, "lab2", list.Clients[1].ClientID)
	assert.Equal(t, services.StatusUnknown, list.Clients[1].Status)
}

func TestUploadStoresArtifactKeyedByClient(t *testing.T) {
	srv := newTestServer(t, "")
	blob := []byte("pretend this is a png")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("screenshot", "s.png")
	require.NoError(t, err)
	_, err = part.Write(blob)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	resp, err := http.Post(srv.URL+"/upload/lab1", mw.FormDataContentType(), &buf)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/upload/lab1")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, blob, got)
}

func TestUploadRejectsMissingFile(t *testing.T) {
	srv := newTestServer(t, "")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("note", "no file here"))
	require.NoError(t, mw.Close())

	resp, err := http.Post(srv.URL+"/upload/lab1", mw.FormDataContentType(), &buf)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestOperatorEndpointsRequireToken(t *testing.T) {
	srv := newTestServer(t, "secret")

	// no token: rejected
	resp := postJSON(t, srv.URL+"/enqueue-command", dto.EnqueueRequest{ClientID: "lab1", Command: "screenshot"})
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// with token: accepted
	b, _ := json.Marshal(dto.EnqueueRequest{ClientID: "lab1", Command: "screenshot"})
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/enqueue-command", bytes.NewReader(b))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer secret")
	resp2, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp2.Body.Close()
	assert.Equal(t, http.StatusOK, resp2.StatusCode)

	// client-facing endpoints stay open: polling is not an operator call
	resp3, err := http.Get(srv.URL + "/poll-commands/lab1")
	require.NoError(t, err)
	resp3.Body.Close()
	assert.Equal(t, http.StatusOK, resp3.StatusCode)
}
