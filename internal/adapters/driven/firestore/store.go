package firestore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"golang.org/x/oauth2"
	fsapi "google.golang.org/api/firestore/v1"
	"google.golang.org/api/option"
	htransport "google.golang.org/api/transport/http"

	"github.com/custodia-labs/docview/internal/core/domain"
	"github.com/custodia-labs/docview/internal/core/ports/driven"
)

// defaultPageSize is the number of documents fetched per list request.
const defaultPageSize = 300

// Scope grants read and write access to Firestore.
const Scope = "https://www.googleapis.com/auth/datastore"

// Config holds the settings needed to reach a Firestore database.
type Config struct {
	ProjectID   string
	Database    string
	APIKey      string
	AccessToken string

	// Endpoint overrides the production endpoint. When set without
	// credentials, requests are sent unauthenticated, as the emulator
	// expects.
	Endpoint string

	// HTTPClient replaces the authenticated client built from the
	// credential settings.
	HTTPClient *http.Client

	// PageSize bounds each list request. Zero means the default.
	PageSize int
}

// Store is a Firestore-backed document store.
type Store struct {
	docs     *fsapi.ProjectsDatabasesDocumentsService
	parent   string
	pageSize int64
}

var _ driven.DocumentStore = (*Store)(nil)

// NewStore creates a Store for the configured project and database.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	if strings.TrimSpace(cfg.ProjectID) == "" {
		return nil, fmt.Errorf("%w: firestore project id is required", domain.ErrStoreUnavailable)
	}
	database := cfg.Database
	if database == "" {
		database = domain.DefaultFirestoreDatabase
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	client := cfg.HTTPClient
	if client == nil {
		var err error
		client, _, err = htransport.NewClient(ctx, clientOptions(cfg)...)
		if err != nil {
			return nil, fmt.Errorf("%w: creating firestore client: %w", domain.ErrStoreUnavailable, err)
		}
	}

	opts := []option.ClientOption{option.WithHTTPClient(withBodyCapture(client))}
	if cfg.Endpoint != "" {
		endpoint := cfg.Endpoint
		if !strings.HasSuffix(endpoint, "/") {
			endpoint += "/"
		}
		opts = append(opts, option.WithEndpoint(endpoint))
	}
	svc, err := fsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: creating firestore service: %w", domain.ErrStoreUnavailable, err)
	}

	return &Store{
		docs:     svc.Projects.Databases.Documents,
		parent:   fmt.Sprintf("projects/%s/databases/%s/documents", cfg.ProjectID, database),
		pageSize: int64(pageSize),
	}, nil
}

// clientOptions picks the credential source. An API key wins over an
// access token; with neither, Application Default Credentials are used
// unless an endpoint override points at the emulator.
func clientOptions(cfg Config) []option.ClientOption {
	opts := []option.ClientOption{option.WithScopes(Scope)}
	switch {
	case cfg.APIKey != "":
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	case cfg.AccessToken != "":
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.AccessToken})
		opts = append(opts, option.WithTokenSource(ts))
	case cfg.Endpoint != "":
		opts = append(opts, option.WithoutAuthentication())
	}
	return opts
}

// listPage is the raw form of a list response, read again from the
// captured body so value members keep their presence.
type listPage struct {
	Documents []struct {
		Name   string               `json:"name"`
		Fields map[string]wireValue `json:"fields"`
	} `json:"documents"`
}

// List returns every document of a collection, following pagination.
func (s *Store) List(ctx context.Context, collection string) ([]domain.Document, error) {
	var (
		docs      []domain.Document
		decodeErr error
	)
	body := new(bytes.Buffer)
	call := s.docs.List(s.parent, collection).PageSize(s.pageSize)

	err := call.Pages(captureBody(ctx, body), func(resp *fsapi.ListDocumentsResponse) error {
		defer body.Reset()
		batch, err := decodePage(body.Bytes(), len(resp.Documents))
		if err != nil {
			decodeErr = err
			return err
		}
		docs = append(docs, batch...)
		return nil
	})
	if decodeErr != nil {
		return nil, fmt.Errorf("listing %s: %w", collection, decodeErr)
	}
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", collection, mapError(err))
	}
	return docs, nil
}

func decodePage(data []byte, want int) ([]domain.Document, error) {
	var page listPage
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, fmt.Errorf("%w: decoding list response: %w", domain.ErrStoreUnavailable, err)
	}
	if len(page.Documents) != want {
		return nil, fmt.Errorf("%w: list response has %d documents, read %d", domain.ErrStoreUnavailable, want, len(page.Documents))
	}

	docs := make([]domain.Document, 0, len(page.Documents))
	for _, rd := range page.Documents {
		fields, err := fieldsFromWire(rd.Fields)
		if err != nil {
			return nil, fmt.Errorf("document %s: %w", rd.Name, err)
		}
		docs = append(docs, domain.Document{ID: path.Base(rd.Name), Fields: fields})
	}
	return docs, nil
}

// Create adds a document with a server-assigned id.
func (s *Store) Create(ctx context.Context, collection string, fields domain.Fields) (string, error) {
	wire, err := fieldsToWire(fields)
	if err != nil {
		return "", err
	}

	created, err := s.docs.CreateDocument(s.parent, collection, &fsapi.Document{Fields: wire}).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("creating document in %s: %w", collection, mapError(err))
	}
	if created.Name == "" {
		return "", fmt.Errorf("%w: create response has no document name", domain.ErrStoreUnavailable)
	}
	return path.Base(created.Name), nil
}

// Update sets the given fields on an existing document. Fields not named
// are left untouched. A missing document is reported as not found.
func (s *Store) Update(ctx context.Context, collection, id string, fields domain.Fields) error {
	name := s.documentName(collection, id)
	if fields.Len() == 0 {
		// An empty update mask would replace the whole document.
		if _, err := s.docs.Get(name).Context(ctx).Do(); err != nil {
			return fmt.Errorf("updating %s/%s: %w", collection, id, mapError(err))
		}
		return nil
	}

	wire, err := fieldsToWire(fields)
	if err != nil {
		return err
	}
	paths := make([]string, 0, fields.Len())
	for _, n := range fields.Names() {
		paths = append(paths, fieldPath(n))
	}

	_, err = s.docs.Patch(name, &fsapi.Document{Fields: wire}).
		UpdateMaskFieldPaths(paths...).
		CurrentDocumentExists(true).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("updating %s/%s: %w", collection, id, mapError(err))
	}
	return nil
}

// Delete removes a document. A missing document is reported as not found.
func (s *Store) Delete(ctx context.Context, collection, id string) error {
	_, err := s.docs.Delete(s.documentName(collection, id)).
		CurrentDocumentExists(true).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("deleting %s/%s: %w", collection, id, mapError(err))
	}
	return nil
}

func (s *Store) documentName(collection, id string) string {
	return s.parent + "/" + collection + "/" + id
}

type bodyKey struct{}

// captureBody returns a context under which successful response bodies
// are also copied into buf.
func captureBody(ctx context.Context, buf *bytes.Buffer) context.Context {
	return context.WithValue(ctx, bodyKey{}, buf)
}

// bodyCapture tees response bodies into the buffer carried by the request
// context, if any.
type bodyCapture struct {
	base http.RoundTripper
}

func (t bodyCapture) RoundTrip(req *http.Request) (*http.Response, error) {
	res, err := t.base.RoundTrip(req)
	if err != nil {
		return res, err
	}
	buf, ok := req.Context().Value(bodyKey{}).(*bytes.Buffer)
	if ok && res.StatusCode >= 200 && res.StatusCode < 300 {
		res.Body = struct {
			io.Reader
			io.Closer
		}{io.TeeReader(res.Body, buf), res.Body}
	}
	return res, nil
}

func withBodyCapture(c *http.Client) *http.Client {
	wrapped := *c
	base := c.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	wrapped.Transport = bodyCapture{base: base}
	return &wrapped
}
