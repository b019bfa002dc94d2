package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/abenson/pbbdash/internal/errors"
	"github.com/abenson/pbbdash/internal/logging"
	"github.com/abenson/pbbdash/internal/upload"
)

var tracer = otel.Tracer("github.com/abenson/pbbdash/internal/services")

// Client issues multipart calls to the remote prediction services and
// normalizes every outcome into a CallResult.
type Client struct {
	httpClient *http.Client
	logger     logging.Logger
}

// Option configures the Client during construction.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpClient = c }
}

// WithLogger configures structured logging.
func WithLogger(l logging.Logger) Option {
	return func(cl *Client) { cl.logger = l }
}

// NewClient creates a Client. Per-call timeouts come from the Endpoint, so
// the underlying http.Client carries no global timeout of its own.
func NewClient(opts ...Option) *Client {
	c := &Client{}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	if c.logger == nil {
		c.logger = logging.NewZerologAdapter(zerolog.Nop())
	}
	return c
}

// Call issues a single multipart POST to the endpoint with the given file
// parts and form fields. files must be non-empty: every capability in this
// system requires at least one uploaded document.
//
// Classification of outcomes:
//   - transport error or timeout     → Failure (message captured verbatim)
//   - non-2xx status                 → Failure (body or status line verbatim)
//   - 2xx with JSON body             → Success with the parsed payload
//   - 2xx with any other body        → Success with a generic acknowledgement
//
// No retries are performed; a single failed call fails the step.
func (c *Client) Call(ctx context.Context, ep Endpoint, files map[string]upload.File, fields map[string]string) CallResult {
	operation := string(ep.Capability)

	ctx, span := tracer.Start(ctx, "services.Call",
		trace.WithAttributes(
			attribute.String("capability", operation),
			attribute.String("url", ep.URL()),
		))
	defer span.End()

	if err := ep.Validate(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return FailureErr(err)
	}
	if len(files) == 0 {
		err := apperrors.ValidationError{Field: "files", Message: "at least one uploaded document is required"}
		span.SetStatus(codes.Error, err.Error())
		return FailureErr(err)
	}
	for _, f := range files {
		if err := f.Validate(); err != nil {
			span.SetStatus(codes.Error, err.Error())
			return FailureErr(err)
		}
	}

	body, contentType, err := encodeMultipart(files, fields)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return FailureErr(apperrors.WrapError(err, "%s: encode request", operation))
	}

	ctx, cancel := context.WithTimeout(ctx, ep.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ep.URL(), body)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return FailureErr(apperrors.WrapError(err, "%s: create request", operation))
	}
	req.Header.Set("Content-Type", contentType)

	c.logger.Info("service call", logging.String("capability", operation), logging.String("url", ep.URL()))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		if errors.Is(err, context.DeadlineExceeded) {
			te := apperrors.TimeoutError{Operation: operation, Limit: ep.Timeout}
			c.logger.Error("service call timed out", te, logging.String("capability", operation))
			return FailureErr(te)
		}
		ne := apperrors.NetworkError{Operation: operation, Cause: err}
		c.logger.Error("service call failed", ne, logging.String("capability", operation))
		return FailureErr(ne)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		msg := strings.TrimSpace(string(respBody))
		if msg == "" {
			msg = resp.Status
		}
		he := apperrors.HTTPError{Operation: operation, StatusCode: resp.StatusCode, Message: msg}
		span.SetStatus(codes.Error, he.Error())
		c.logger.Error("service returned error status", he,
			logging.String("capability", operation), logging.Int("status", resp.StatusCode))
		return FailureErr(he)
	}

	if !strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		// Some services answer with a generated spreadsheet; the binary
		// body is not consumed by this core.
		return Ack(operation)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return FailureErr(apperrors.WrapError(err, "%s: read response", operation))
	}
	if !json.Valid(payload) {
		pe := apperrors.ParseError{Source: operation, Message: "response declared JSON but body is not valid JSON"}
		span.SetStatus(codes.Error, pe.Error())
		return FailureErr(pe)
	}
	return Success(json.RawMessage(payload))
}

// encodeMultipart builds the multipart body. File parts are written in
// sorted field order so request bodies are reproducible in tests.
func encodeMultipart(files map[string]upload.File, fields map[string]string) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	fileNames := make([]string, 0, len(files))
	for name := range files {
		fileNames = append(fileNames, name)
	}
	sort.Strings(fileNames)
	for _, field := range fileNames {
		f := files[field]
		part, err := createFilePart(w, field, f.Name)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(f.Content); err != nil {
			return nil, "", err
		}
	}

	fieldNames := make([]string, 0, len(fields))
	for name := range fields {
		fieldNames = append(fieldNames, name)
	}
	sort.Strings(fieldNames)
	for _, name := range fieldNames {
		if err := w.WriteField(name, fields[name]); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return body, w.FormDataContentType(), nil
}

// createFilePart creates a file part with an explicit spreadsheet MIME type,
// which the remote services expect instead of application/octet-stream.
func createFilePart(w *multipart.Writer, fieldName, fileName string) (io.Writer, error) {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		`form-data; name="`+escapeQuotes(fieldName)+`"; filename="`+escapeQuotes(fileName)+`"`)
	h.Set("Content-Type", upload.XLSXContentType)
	return w.CreatePart(h)
}

func escapeQuotes(s string) string {
	r := strings.NewReplacer("\\", "\\\\", `"`, "\\\"")
	return r.Replace(s)
}
