package images_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jrsteele09/courier-admin/api"
	"github.com/jrsteele09/courier-admin/images"
	"github.com/jrsteele09/courier-admin/internal/errors"
	"github.com/stretchr/testify/require"
)

var (
	pngData  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
	jpegData = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00\x01\x01\x00\x00\x01\x00\x01\x00\x00")
	webpData = []byte("RIFF\x24\x00\x00\x00WEBPVP8 \x18\x00\x00\x00")
	gifData  = []byte("GIF89a\x01\x00\x01\x00\x80\x00\x00\x00\x00\x00")
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
		err  error
	}{
		{name: "png", data: pngData, want: "image/png"},
		{name: "jpeg", data: jpegData, want: "image/jpeg"},
		{name: "webp", data: webpData, want: "image/webp"},
		{name: "gif", data: gifData, err: errors.ErrUnsupportedImageType},
		{name: "text", data: []byte("hello world"), err: errors.ErrNotAnImage},
		{name: "empty", data: nil, err: errors.ErrNotAnImage},
		{name: "too large", data: append(bytes.Clone(pngData), make([]byte, images.MaxSize)...), err: errors.ErrImageTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// The declared content type is ignored
			got, err := images.Validate(images.File{Name: tt.name, ContentType: "image/png", Data: tt.data})
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestInMemoryService(t *testing.T) {
	ctx := context.Background()
	svc := images.NewService(images.NewInMemoryStore())

	_, ok := svc.Upload(ctx, "1", images.File{Name: "a.gif", Data: gifData})
	require.False(t, ok)

	url, ok := svc.Upload(ctx, "1", images.File{Name: "a.png", ContentType: "application/octet-stream", Data: pngData})
	require.True(t, ok)
	require.Equal(t, "/images/1", url)
	require.Equal(t, url, svc.URL("1"))

	img, err := svc.Fetch(ctx, "1")
	require.NoError(t, err)
	require.Equal(t, "image/png", img.ContentType)
	require.Equal(t, pngData, img.Data)

	require.True(t, svc.Delete(ctx, "1"))
	require.False(t, svc.Delete(ctx, "1"))
	_, err = svc.Fetch(ctx, "1")
	require.ErrorIs(t, err, errors.ErrNotFound)
}

func TestRemoteStore(t *testing.T) {
	var uploaded []byte
	var partType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method + " " + r.URL.Path {
		case "POST /api/images/1":
			f, hdr, err := r.FormFile("file")
			require.NoError(t, err)
			defer f.Close()
			uploaded, _ = io.ReadAll(f)
			partType = hdr.Header.Get("Content-Type")
			_, _ = w.Write([]byte(`{"data":{"imageUrl":"https://cdn.example/1.png"}}`))
		case "POST /api/images/2":
			_, _ = w.Write([]byte(`{}`))
		case "DELETE /api/images/1":
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusBadGateway)
		}
	}))
	defer srv.Close()

	ctx := context.Background()
	svc := images.NewService(images.NewRemoteStore(api.New(api.SingleBase(srv.URL + "/api"))))

	url, ok := svc.Upload(ctx, "1", images.File{Name: "a.png", Data: pngData})
	require.True(t, ok)
	require.Equal(t, "https://cdn.example/1.png", url)
	require.Equal(t, pngData, uploaded)
	require.Equal(t, "image/png", partType)

	url, ok = svc.Upload(ctx, "2", images.File{Name: "b.jpg", Data: jpegData})
	require.True(t, ok)
	require.Equal(t, srv.URL+"/api/images/2", url)

	_, ok = svc.Upload(ctx, "3", images.File{Name: "c.png", Data: pngData})
	require.False(t, ok)

	require.True(t, svc.Delete(ctx, "1"))
	_, err := svc.Fetch(ctx, "1")
	require.ErrorIs(t, err, errors.ErrUnsupported)
}
