package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// recordedRequest captures what the fake gateway saw.
type recordedRequest struct {
	method      string
	path        string
	auth        string
	contentType string
	jsonBody    map[string]any
	formValues  map[string]string
	formFiles   map[string][]byte
}

func newFakeGateway(t *testing.T, status int, reply Response) (*httptest.Server, *recordedRequest) {
	t.Helper()
	rec := &recordedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.auth = r.Header.Get("Authorization")
		rec.contentType = r.Header.Get("Content-Type")

		switch {
		case rec.contentType == "application/json":
			json.NewDecoder(r.Body).Decode(&rec.jsonBody)
		case r.Method == http.MethodPost:
			if err := r.ParseMultipartForm(10 << 20); err == nil {
				rec.formValues = map[string]string{}
				for k, v := range r.MultipartForm.Value {
					rec.formValues[k] = v[0]
				}
				rec.formFiles = map[string][]byte{}
				for k, fhs := range r.MultipartForm.File {
					f, _ := fhs[0].Open()
					data, _ := io.ReadAll(f)
					f.Close()
					rec.formFiles[k] = data
				}
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(reply)
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func TestSendMessageEncodesPayloadAndAuth(t *testing.T) {
	srv, rec := newFakeGateway(t, http.StatusOK, Response{Code: "SUCCESS", Message: "ok"})
	c := New(srv.URL, "admin", "secret", 5*time.Second)

	resp, err := c.SendMessage(context.Background(), "628123@s.whatsapp.net", "hello", MessageOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Code != "SUCCESS" {
		t.Errorf("unexpected code %q", resp.Code)
	}
	if rec.path != "/send/message" {
		t.Errorf("path: got %q", rec.path)
	}
	// base64("admin:secret")
	if rec.auth != "Basic YWRtaW46c2VjcmV0" {
		t.Errorf("auth header: got %q", rec.auth)
	}
	if rec.jsonBody["phone"] != "628123@s.whatsapp.net" || rec.jsonBody["message"] != "hello" {
		t.Errorf("payload: got %v", rec.jsonBody)
	}
	if rec.jsonBody["is_forwarded"] != false {
		t.Errorf("is_forwarded should default to false, got %v", rec.jsonBody["is_forwarded"])
	}
	if _, present := rec.jsonBody["reply_message_id"]; present {
		t.Error("reply_message_id should be omitted when empty")
	}
}

func TestSendImageUploadsMultipart(t *testing.T) {
	srv, rec := newFakeGateway(t, http.StatusOK, Response{Code: "SUCCESS"})
	c := New(srv.URL, "admin", "secret", 5*time.Second)

	dir := t.TempDir()
	imgPath := filepath.Join(dir, "sample_image.jpeg")
	if err := os.WriteFile(imgPath, []byte("jpegdata"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := c.SendImage(context.Background(), "628123@s.whatsapp.net", imgPath, "", MediaOptions{Caption: "contoh"})
	if err != nil {
		t.Fatal(err)
	}
	if rec.path != "/send/image" {
		t.Errorf("path: got %q", rec.path)
	}
	if rec.formValues["caption"] != "contoh" {
		t.Errorf("caption: got %q", rec.formValues["caption"])
	}
	if rec.formValues["view_once"] != "false" || rec.formValues["compress"] != "false" {
		t.Errorf("boolean fields: got %v", rec.formValues)
	}
	if string(rec.formFiles["image"]) != "jpegdata" {
		t.Errorf("file content: got %q", rec.formFiles["image"])
	}
}

func TestSendImageURLFallback(t *testing.T) {
	srv, rec := newFakeGateway(t, http.StatusOK, Response{Code: "SUCCESS"})
	c := New(srv.URL, "admin", "secret", 5*time.Second)

	_, err := c.SendImage(context.Background(), "628123@s.whatsapp.net", "", "https://example.com/a.jpg", MediaOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if rec.formValues["image_url"] != "https://example.com/a.jpg" {
		t.Errorf("image_url: got %q", rec.formValues["image_url"])
	}
	if len(rec.formFiles) != 0 {
		t.Errorf("no file part expected, got %v", rec.formFiles)
	}
}

func TestErrorStatusBecomesAPIError(t *testing.T) {
	srv, _ := newFakeGateway(t, http.StatusBadRequest, Response{Code: "ERROR", Message: "phone is required"})
	c := New(srv.URL, "admin", "secret", 5*time.Second)

	_, err := c.SendMessage(context.Background(), "", "hi", MessageOptions{})
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Message != "phone is required" || apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("unexpected APIError: %+v", apiErr)
	}
}

func TestErrorCodeWithOKStatusBecomesAPIError(t *testing.T) {
	srv, _ := newFakeGateway(t, http.StatusOK, Response{Code: "ERROR", Message: "session not connected"})
	c := New(srv.URL, "admin", "secret", 5*time.Second)

	_, err := c.Devices(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Message != "session not connected" {
		t.Errorf("unexpected message %q", apiErr.Message)
	}
}

func TestUserInfoQueryParams(t *testing.T) {
	srv, rec := newFakeGateway(t, http.StatusOK, Response{Code: "SUCCESS"})
	c := New(srv.URL, "admin", "secret", 5*time.Second)

	if _, err := c.UserInfo(context.Background(), "628123"); err != nil {
		t.Fatal(err)
	}
	if rec.method != http.MethodGet || rec.path != "/user/info" {
		t.Errorf("got %s %s", rec.method, rec.path)
	}
}

func TestMessageOpPath(t *testing.T) {
	srv, rec := newFakeGateway(t, http.StatusOK, Response{Code: "SUCCESS"})
	c := New(srv.URL, "admin", "secret", 5*time.Second)

	if _, err := c.MessageReaction(context.Background(), "ABC123", "628123", "👍"); err != nil {
		t.Fatal(err)
	}
	if rec.path != "/message/ABC123/reaction" {
		t.Errorf("path: got %q", rec.path)
	}
	if rec.jsonBody["emoji"] != "👍" {
		t.Errorf("emoji: got %v", rec.jsonBody["emoji"])
	}
}

func TestIsValidPresence(t *testing.T) {
	for _, p := range ValidPresenceTypes {
		if !IsValidPresence(string(p)) {
			t.Errorf("%s should be valid", p)
		}
	}
	if IsValidPresence("dancing") {
		t.Error("dancing should not be valid")
	}
}
