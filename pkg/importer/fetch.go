package importer

import (
	"context"
	"errors"
	"net"
	"strings"

	perrors "github.com/protoboard/protoboard/pkg/errors"
	"github.com/protoboard/protoboard/pkg/httputil"
)

// DefaultProxyURL is the text-extraction proxy pages are fetched through.
const DefaultProxyURL = "https://r.jina.ai/"

// ProxiedURL rewrites rawURL through proxy unless it already points there.
// An empty proxy fetches rawURL directly.
func ProxiedURL(proxy, rawURL string) string {
	if proxy == "" {
		return rawURL
	}
	if strings.HasPrefix(rawURL, strings.TrimSuffix(proxy, "/")) {
		return rawURL
	}
	if !strings.HasSuffix(proxy, "/") {
		proxy += "/"
	}
	return proxy + rawURL
}

// fetch returns the page text for target, consulting the content cache
// first. Only successful responses are cached.
func (im *Importer) fetch(ctx context.Context, target string) (string, error) {
	key := im.keyer.ContentKey(target)
	if data, hit, err := im.cache.Get(ctx, key); err != nil {
		im.logger.Warn("content cache read failed", "err", err)
	} else if hit {
		im.logger.Debug("content cache hit", "url", target)
		return string(data), nil
	}

	var body []byte
	err := httputil.Retry(ctx, im.attempts, im.retryDelay, func() error {
		resp, err := im.client.R().SetContext(ctx).Get(target)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return &httputil.RetryableError{Err: err}
		}
		if err := httputil.CheckResponse(resp); err != nil {
			return err
		}
		body = resp.Body()
		return nil
	})
	if err != nil {
		return "", classifyFetchError(err, target)
	}

	if err := im.cache.Set(ctx, key, body, im.cacheTTL); err != nil {
		im.logger.Warn("content cache write failed", "err", err)
	}
	return string(body), nil
}

func classifyFetchError(err error, target string) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return perrors.Wrap(perrors.ErrCodeTimeout, err, "fetch %s", target)
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return perrors.Wrap(perrors.ErrCodeTimeout, err, "fetch %s", target)
	}
	return perrors.Wrap(perrors.ErrCodeNetwork, err, "fetch %s", target)
}
