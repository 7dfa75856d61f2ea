package storage

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// uploadHeader builds a real multipart.FileHeader the way gin would hand one
// to a handler.
func uploadHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("images", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		t.Fatalf("parse multipart form: %v", err)
	}
	return req.MultipartForm.File["images"][0]
}

func TestSaveAndRemove(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	relPath, err := store.Save(uploadHeader(t, "camera.jpg", "jpeg bytes"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.HasPrefix(relPath, URLPrefix+"/product-") {
		t.Errorf("relPath = %q, want %s/product-<uuid> form", relPath, URLPrefix)
	}
	if !strings.HasSuffix(relPath, ".jpg") {
		t.Errorf("relPath = %q, want original extension kept", relPath)
	}

	onDisk := filepath.Join(store.Dir(), strings.TrimPrefix(relPath, URLPrefix+"/"))
	data, err := os.ReadFile(onDisk)
	if err != nil {
		t.Fatalf("read saved file: %v", err)
	}
	if string(data) != "jpeg bytes" {
		t.Errorf("saved content = %q, want %q", data, "jpeg bytes")
	}

	if err := store.Remove(relPath); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := os.Stat(onDisk); !os.IsNotExist(err) {
		t.Errorf("file still on disk after remove")
	}
}

func TestRemoveMissingFileIsNoError(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := store.Remove(URLPrefix + "/product-gone.jpg"); err != nil {
		t.Errorf("remove missing file: %v", err)
	}
}

func TestRemoveIgnoresForeignPaths(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	// The default placeholder and anything outside the upload prefix are
	// never deleted.
	for _, p := range []string{"no-image.jpg", "/static/logo.png", URLPrefix + "/../secrets.txt"} {
		if err := store.Remove(p); err != nil {
			t.Errorf("remove(%q): %v", p, err)
		}
	}
}

func TestRemoveAllContinuesPastBadPaths(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	relPath, err := store.Save(uploadHeader(t, "phone.png", "png bytes"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	store.RemoveAll([]string{"no-image.jpg", relPath})

	onDisk := filepath.Join(store.Dir(), strings.TrimPrefix(relPath, URLPrefix+"/"))
	if _, err := os.Stat(onDisk); !os.IsNotExist(err) {
		t.Errorf("file still on disk after RemoveAll")
	}
}
