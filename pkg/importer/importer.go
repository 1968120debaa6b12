// Package importer turns a product page URL into a placed module.
//
// An import never fails outright. The page text is fetched through a
// text-extraction proxy and mined by an ordered chain of regex extractors
// (see [Extractors]); when the fetch fails, a placeholder module named after
// the host is placed instead and the result carries an advisory. An external
// HTTP transformer and an in-process [Hook] may refine the heuristic module;
// their failures are reported as notes and otherwise ignored.
package importer

import (
	"context"
	"io"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/protoboard/protoboard/pkg/cache"
	"github.com/protoboard/protoboard/pkg/catalog"
	perrors "github.com/protoboard/protoboard/pkg/errors"
	"github.com/protoboard/protoboard/pkg/httputil"
	"github.com/protoboard/protoboard/pkg/observability"
	"github.com/protoboard/protoboard/pkg/workspace"
)

// User-facing import messages.
const (
	MessageSuccess  = "Module imported with AI-assisted placeholder geometry. Review dimensions before fabrication."
	MessageFallback = "Automatic import failed due to CORS or network restrictions. Added placeholder module instead."
	NoteHookFailed  = "Custom transformer threw an error and was ignored."
	NoteRemoteError = "External transformer failed and was ignored."
)

// minContentRunes is the shortest page text worth mining.
const minContentRunes = 200

// Outcome says how an import produced its module.
type Outcome string

// Import outcomes.
const (
	OutcomeExtracted   Outcome = "extracted"   // heuristics ran on fetched text
	OutcomePlaceholder Outcome = "placeholder" // fetched text too short
	OutcomeFallback    Outcome = "fallback"    // fetch failed
)

// Adder places a module. *workspace.Store implements it.
type Adder interface {
	AddModule(module catalog.ModuleMetadata) workspace.PlacedModule
}

// Result describes one import.
type Result struct {
	Module  catalog.ModuleMetadata `json:"module"`
	Placed  workspace.PlacedModule `json:"placed"`
	Outcome Outcome                `json:"outcome"`
	Message string                 `json:"message,omitempty"`
	Error   string                 `json:"error,omitempty"`
	Err     error                  `json:"-"`
}

// Importer fetches pages and builds modules from them. It is safe for
// concurrent use.
type Importer struct {
	cat        *catalog.Catalog
	client     *resty.Client
	proxy      string
	endpoint   string
	token      string
	hook       Hook
	cache      cache.Cache
	keyer      cache.Keyer
	cacheTTL   time.Duration
	attempts   int
	retryDelay time.Duration
	logger     *log.Logger
	newID      func(prefix string) string
}

// Option configures an Importer.
type Option func(*Importer)

// WithProxy sets the text-extraction proxy. An empty proxy fetches pages
// directly.
func WithProxy(proxy string) Option { return func(im *Importer) { im.proxy = proxy } }

// WithTransformer enables the external transformer. token, when set, is
// sent as a Bearer token.
func WithTransformer(endpoint, token string) Option {
	return func(im *Importer) {
		im.endpoint = endpoint
		im.token = token
	}
}

// WithHook registers an in-process transformer.
func WithHook(h Hook) Option { return func(im *Importer) { im.hook = h } }

// WithCache caches fetched page text for ttl.
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(im *Importer) {
		if c != nil {
			im.cache = c
		}
		im.cacheTTL = ttl
	}
}

// WithKeyer overrides cache key derivation.
func WithKeyer(k cache.Keyer) Option {
	return func(im *Importer) {
		if k != nil {
			im.keyer = k
		}
	}
}

// WithHTTPClient replaces the resty client.
func WithHTTPClient(c *resty.Client) Option {
	return func(im *Importer) {
		if c != nil {
			im.client = c
		}
	}
}

// WithTimeout bounds each outgoing request.
func WithTimeout(d time.Duration) Option {
	return func(im *Importer) { im.client.SetTimeout(d) }
}

// WithRetry sets the fetch attempt count and initial backoff.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(im *Importer) {
		im.attempts = attempts
		im.retryDelay = delay
	}
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(im *Importer) {
		if l != nil {
			im.logger = l
		}
	}
}

// New creates an importer resolving boards against cat.
func New(cat *catalog.Catalog, opts ...Option) *Importer {
	if cat == nil {
		cat = catalog.Default()
	}
	im := &Importer{
		cat:        cat,
		client:     httputil.NewClient(httputil.DefaultTimeout),
		proxy:      DefaultProxyURL,
		cache:      cache.NewNullCache(),
		keyer:      cache.NewDefaultKeyer(),
		attempts:   3,
		retryDelay: 500 * time.Millisecond,
		logger:     log.New(io.Discard),
		newID: func(prefix string) string {
			return prefix + "-" + uuid.NewString()
		},
	}
	for _, opt := range opts {
		opt(im)
	}
	return im
}

// Import fetches rawURL, builds a module for boardID and hands it to adder.
// Exactly one module is added per call, whatever happens.
func (im *Importer) Import(ctx context.Context, rawURL, boardID string, adder Adder) Result {
	start := time.Now()
	host := hostOf(rawURL)
	observability.Import().OnImportStart(ctx, host)

	res := im.build(ctx, rawURL, boardID)
	res.Placed = adder.AddModule(res.Module)

	observability.Import().OnImportComplete(ctx, host, string(res.Outcome), time.Since(start), res.Err)
	im.logger.Info("module imported",
		"url", rawURL, "outcome", res.Outcome, "module", res.Module.ID, "duration", time.Since(start).Round(time.Millisecond))
	return res
}

func (im *Importer) build(ctx context.Context, rawURL, boardID string) Result {
	if err := perrors.ValidateURL(rawURL); err != nil {
		return im.fallback(rawURL, boardID, err)
	}

	target := ProxiedURL(im.proxy, rawURL)
	content, err := im.fetch(ctx, target)
	if err != nil {
		im.logger.Warn("fetch failed, placing placeholder", "url", target, "err", err)
		return im.fallback(rawURL, boardID, err)
	}

	res := Result{Outcome: OutcomeExtracted}
	if utf8.RuneCountInString(content) > minContentRunes {
		res.Module = BuildModule(rawURL, content, boardID, im.newID("imported"))
	} else {
		res.Outcome = OutcomePlaceholder
		res.Module = FallbackModule(rawURL, im.cat.BoardOrDefault(boardID), im.newID("custom"))
	}

	var notes []string
	if im.endpoint != "" {
		out, err := im.callTransformer(ctx, transformRequest{URL: rawURL, BoardID: boardID, Content: content, Module: res.Module})
		if err != nil {
			im.logger.Warn("external transformer failed", "endpoint", im.endpoint, "err", err)
			observability.Import().OnTransformError(ctx, "endpoint", err)
			notes = append(notes, NoteRemoteError)
		} else {
			if out.Patch != nil {
				res.Module = Merge(res.Module, *out.Patch)
			}
			if out.Message != "" {
				notes = append(notes, out.Message)
			}
		}
	}

	if im.hook != nil {
		p, err := runHook(ctx, im.hook, HookContext{URL: rawURL, BoardID: boardID, Content: content, DefaultModule: res.Module.Clone()})
		if err != nil {
			im.logger.Warn("custom transformer failed", "err", err)
			observability.Import().OnTransformError(ctx, "hook", err)
			notes = append(notes, NoteHookFailed)
		} else if p != nil {
			res.Module = Merge(res.Module, *p)
		}
	}

	res.Message = strings.Join(notes, " ")
	if res.Message == "" {
		res.Message = MessageSuccess
	}
	return res
}

func (im *Importer) fallback(rawURL, boardID string, err error) Result {
	return Result{
		Module:  FallbackModule(rawURL, im.cat.BoardOrDefault(boardID), im.newID("custom")),
		Outcome: OutcomeFallback,
		Error:   MessageFallback,
		Err:     err,
	}
}

func hostOf(raw string) string {
	if u, err := url.Parse(raw); err == nil {
		return u.Hostname()
	}
	return ""
}
