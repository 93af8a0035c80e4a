package pixhist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

// ErrMediaIsEmpty is returned when size of downloaded file is equal to zero.
var ErrMediaIsEmpty = errors.New("url referes to the empty file")

// MediaDownloader implements interface Loader for http(s) URLs. Supports
// limiting connections per host and uses fasthttp.Client to reduce garbage
// generation.
type MediaDownloader struct {
	log    zerolog.Logger
	client fasthttp.Client
}

// Media implement interface Source and represents downloaded image stored in the memory.
type Media struct {
	resp *fasthttp.Response
	req  *fasthttp.Request
	url  string
}

const (
	// DefaultMaxConnsPerHost defines default value of maximum parallel http connections
	// to the host.
	DefaultMaxConnsPerHost = 4

	// DefaultReadTimeout defines maximum duration for full response reading (including body).
	DefaultReadTimeout = 8 * time.Second

	// DefaultMaxBodySize limits the size of a downloaded image.
	DefaultMaxBodySize = 32 * 1024 * 1024
)

// NewMediaDownloader returns new instance of MediaDownloader, with default read timeout and
// MaxConnsPerHost parameters.
func NewMediaDownloader(l zerolog.Logger) *MediaDownloader {
	return &MediaDownloader{
		log: l.With().Str("component", "downloader").Logger(),
		client: fasthttp.Client{ReadTimeout: DefaultReadTimeout,
			MaxConnsPerHost:     DefaultMaxConnsPerHost,
			ReadBufferSize:      64 * 1024,
			MaxResponseBodySize: DefaultMaxBodySize},
	}
}

// SetMaxConnsPerHost set maximum parallel http connections to the host.
func (id *MediaDownloader) SetMaxConnsPerHost(n int) {
	id.client.MaxConnsPerHost = n
}

// SetReadTimeout set maximum duration for full response reading (including body).
func (id *MediaDownloader) SetReadTimeout(d time.Duration) {
	id.client.ReadTimeout = d
}

// Load implements interface Loader.
func (id *MediaDownloader) Load(ctx context.Context, url string) (Source, error) {
	t := time.Now()
	img, err := id.Download(ctx, url)
	if err != nil {
		id.log.Error().Str("url", url).Str("errmsg", err.Error()).Msg("image download failed")
		return nil, err
	}
	id.log.Debug().Str("url", url).Int("size", len(img.Bytes())).Str("dur", time.Since(t).String()).Msg("downloaded")
	return img, nil
}

// Download retrive image by URL.
func (id *MediaDownloader) Download(ctx context.Context, url string) (*Media, error) {

	img := Media{url: url,
		req:  fasthttp.AcquireRequest(),
		resp: fasthttp.AcquireResponse()}

	img.req.SetRequestURI(url)

	err := id.client.Do(img.req, img.resp)
	if err == fasthttp.ErrNoFreeConns {
		err = id.retry(ctx, &img)
	}
	if err != nil {
		img.Reset()
		return nil, err
	}

	if code := img.resp.StatusCode(); code != fasthttp.StatusOK {
		img.Reset()
		return nil, fmt.Errorf("http code %d", code)
	}
	if len(img.resp.Body()) == 0 {
		img.Reset()
		return nil, ErrMediaIsEmpty
	}
	return &img, nil
}

// retry repeats the request while the host connection limit is reached.
func (id *MediaDownloader) retry(ctx context.Context, img *Media) error {
	ticker := time.NewTicker(25 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			err := id.client.Do(img.req, img.resp)
			if err != fasthttp.ErrNoFreeConns {
				return err
			}
		}
	}
}

// Reset implements interface Source. Releases HTTP Body buffer.
func (i *Media) Reset() {
	i.resp.ResetBody()
	fasthttp.ReleaseResponse(i.resp)
	fasthttp.ReleaseRequest(i.req)
}

// Bytes returns image as []byte.
func (i *Media) Bytes() []byte {
	return i.resp.Body()
}

// URL returns URL of downloaded image.
func (i *Media) URL() string {
	return i.url
}
