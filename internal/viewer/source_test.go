package viewer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/figlens/internal/figmaapi"
	"github.com/leapstack-labs/figlens/pkg/viewport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nodesResponse = `{"nodes":{"1:2":{"document":{"id":"1:2","type":"FRAME","absoluteBoundingBox":{"x":0,"y":0,"width":400,"height":200}}}}}`

func TestDecodeDocument(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantID  string
		wantErr string
	}{
		{name: "bare node", data: `{"id":"1:2","type":"FRAME"}`, wantID: "1:2"},
		{name: "nodes envelope", data: nodesResponse, wantID: "1:2"},
		{name: "two nodes", data: `{"nodes":{"1:2":{"document":{"id":"1:2"}},"1:3":{"document":{"id":"1:3"}}}}`, wantErr: "holds 2 nodes"},
		{name: "null entry", data: `{"nodes":{"1:2":null}}`, wantErr: "empty node entry"},
		{name: "not json", data: `nope`, wantErr: "invalid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := DecodeDocument([]byte(tt.data))
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, doc.ID)
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, "svg", FormatFromPath("a/b.SVG"))
	assert.Equal(t, "jpg", FormatFromPath("b.jpeg"))
	assert.Equal(t, "jpg", FormatFromPath("b.jpg"))
	assert.Equal(t, "png", FormatFromPath("b.png"))
	assert.Equal(t, "png", FormatFromPath("b"))
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	docPath := filepath.Join(dir, "card.json")
	imgPath := filepath.Join(dir, "card.png")
	require.NoError(t, os.WriteFile(docPath, []byte(nodesResponse), 0o600))
	require.NoError(t, os.WriteFile(imgPath, testPNG(t).Data, 0o600))

	src := &FileSource{DocumentPath: docPath, ImagePath: imgPath}
	assert.Equal(t, []string{docPath, imgPath}, src.Paths())

	v := New(Config{Source: src})
	require.NoError(t, v.Load(context.Background()))
	assert.Equal(t, "1:2", v.Root().ID)
}

func TestFileSource_Missing(t *testing.T) {
	src := &FileSource{DocumentPath: filepath.Join(t.TempDir(), "missing.json")}

	_, err := src.FetchDocument(context.Background())
	assert.ErrorContains(t, err, "failed to read")
}

func TestRemoteSource(t *testing.T) {
	png := testPNG(t).Data
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/files/KEY/nodes":
			assert.Equal(t, "1:2", r.URL.Query().Get("ids"))
			_, _ = w.Write([]byte(nodesResponse))
		case "/v1/images/KEY":
			_, _ = w.Write([]byte(`{"err":null,"images":{"1:2":"` + srv.URL + `/cdn/img.png"}}`))
		case "/cdn/img.png":
			_, _ = w.Write(png)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	src := &RemoteSource{
		Client: figmaapi.New(figmaapi.Config{BaseURL: srv.URL, Token: "t"}),
		URL:    "https://www.figma.com/file/KEY/Card?node-id=1-2",
	}
	v := New(Config{Source: src, ContainerWidth: 400})
	require.NoError(t, v.Load(context.Background()))

	assert.Equal(t, viewport.StateInteractive, v.State())
	_, raw := v.Bitmap()
	assert.Equal(t, "png", raw.Format)
	assert.Equal(t, png, raw.Data)
}

func TestBitmap_DataURL(t *testing.T) {
	assert.Equal(t, "data:image/png;base64,AQI=", Bitmap{Data: []byte{1, 2}, Format: "png"}.DataURL())
	assert.Equal(t, "image/svg+xml", Bitmap{Format: "svg"}.MediaType())
	assert.Equal(t, "image/jpeg", Bitmap{Format: "jpg"}.MediaType())
}
