package genapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTaskSuccess(t *testing.T) {
	var gotAuth string
	var gotBody createTaskRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/gpt4o-image/generate", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		fmt.Fprint(w, `{"code":200,"data":{"taskId":"task-42"}}`)
	}))
	defer srv.Close()

	client := NewClient("test-token", srv.URL)
	taskID, err := client.CreateTask(context.Background(), CreateTaskInput{
		Prompt:      "engraving portrait",
		ImageURLs:   []string{"http://example.com/uploads/img.jpg"},
		CallbackURL: "http://example.com/callbackimage",
	})

	require.NoError(t, err)
	assert.Equal(t, "task-42", taskID)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "engraving portrait", gotBody.Prompt)
	assert.Equal(t, []string{"http://example.com/uploads/img.jpg"}, gotBody.ImageUrls)
	assert.Equal(t, "http://example.com/callbackimage", gotBody.CallbackUrl)
}

func TestCreateTaskRequiresImageURL(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer srv.Close()

	client := NewClient("test-token", srv.URL)
	_, err := client.CreateTask(context.Background(), CreateTaskInput{Prompt: "p"})

	assert.ErrorContains(t, err, "at least one source image URL")
	assert.Zero(t, requests)
}

func TestCreateTaskAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"code":501,"msg":"insufficient credits"}`)
	}))
	defer srv.Close()

	client := NewClient("test-token", srv.URL)
	_, err := client.CreateTask(context.Background(), CreateTaskInput{
		Prompt:    "p",
		ImageURLs: []string{"http://example.com/i.jpg"},
	})

	assert.ErrorContains(t, err, "insufficient credits")
}

func TestCreateTaskHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient("test-token", srv.URL)
	_, err := client.CreateTask(context.Background(), CreateTaskInput{
		Prompt:    "p",
		ImageURLs: []string{"http://example.com/i.jpg"},
	})

	assert.ErrorContains(t, err, "status 502")
}

func TestGetTaskStatusProcessing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/gpt4o-image/record-info", r.URL.Path)
		assert.Equal(t, "task-42", r.URL.Query().Get("taskId"))
		fmt.Fprint(w, `{"code":200,"data":{"successFlag":0}}`)
	}))
	defer srv.Close()

	client := NewClient("test-token", srv.URL)
	status, err := client.GetTaskStatus(context.Background(), "task-42")

	require.NoError(t, err)
	assert.Equal(t, FlagProcessing, status.SuccessFlag)
	assert.Empty(t, status.ResultImageURL)
}

func TestGetTaskStatusDone(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"code":200,"data":{"successFlag":1,"response":{"resultUrls":["https://cdn.example.com/out.png"]}}}`)
	}))
	defer srv.Close()

	client := NewClient("test-token", srv.URL)
	status, err := client.GetTaskStatus(context.Background(), "task-42")

	require.NoError(t, err)
	assert.Equal(t, FlagDone, status.SuccessFlag)
	assert.Equal(t, "https://cdn.example.com/out.png", status.ResultImageURL)
}

func TestGetTaskStatusDoneWithoutResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"code":200,"data":{"successFlag":1,"response":{"resultUrls":[]}}}`)
	}))
	defer srv.Close()

	client := NewClient("test-token", srv.URL)
	_, err := client.GetTaskStatus(context.Background(), "task-42")

	assert.ErrorContains(t, err, "without a result URL")
}
