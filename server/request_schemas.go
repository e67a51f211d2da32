package server

import (
	"bytes"
	"embed"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/hlog"
	"github.com/xeipuuv/gojsonschema"

	autherrors "github.com/jrsteele09/studyflow-auth/internal/errors"
)

//go:embed schemas/*.json
var schemaFiles embed.FS

const maxRequestBodyBytes = 1 << 20

type requestSchemas struct {
	authenticate *gojsonschema.Schema
	token        *gojsonschema.Schema
	recordCreate *gojsonschema.Schema
	recordUpdate *gojsonschema.Schema
}

func loadRequestSchemas() (*requestSchemas, error) {
	load := func(name string) (*gojsonschema.Schema, error) {
		content, err := schemaFiles.ReadFile("schemas/" + name)
		if err != nil {
			return nil, errors.Wrapf(err, "[loadRequestSchemas] reading %s", name)
		}
		schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(content))
		if err != nil {
			return nil, errors.Wrapf(err, "[loadRequestSchemas] compiling %s", name)
		}
		return schema, nil
	}

	var (
		s   requestSchemas
		err error
	)
	if s.authenticate, err = load("authenticate.json"); err != nil {
		return nil, err
	}
	if s.token, err = load("token.json"); err != nil {
		return nil, err
	}
	if s.recordCreate, err = load("record_create.json"); err != nil {
		return nil, err
	}
	if s.recordUpdate, err = load("record_update.json"); err != nil {
		return nil, err
	}
	return &s, nil
}

// decodeJSONBody reads the request body, validates it against schema and decodes it into dst.
// Absent or blank required fields yield ErrMissingField; any other violation ErrInvalidRequest.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, schema *gojsonschema.Schema, dst any) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	if err != nil {
		return errors.Wrap(autherrors.ErrInvalidRequest, "[decodeJSONBody] reading body")
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return errors.Wrap(autherrors.ErrMissingField, "[decodeJSONBody] empty body")
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		// not parseable as JSON
		return errors.Wrap(autherrors.ErrInvalidRequest, "[decodeJSONBody] "+err.Error())
	}
	if !result.Valid() {
		return schemaViolation(r, result.Errors())
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return errors.Wrap(autherrors.ErrInvalidRequest, "[decodeJSONBody] "+err.Error())
	}
	return nil
}

func schemaViolation(r *http.Request, violations []gojsonschema.ResultError) error {
	details := make([]string, 0, len(violations))
	missing := false
	for _, v := range violations {
		details = append(details, v.String())
		switch v.Type() {
		case "required", "string_gte", "pattern":
			missing = true
		}
	}
	hlog.FromRequest(r).Debug().Strs("violations", details).Msg("request body failed schema validation")

	if missing {
		return errors.Wrap(autherrors.ErrMissingField, "[decodeJSONBody] "+strings.Join(details, "; "))
	}
	return errors.Wrap(autherrors.ErrInvalidRequest, "[decodeJSONBody] "+strings.Join(details, "; "))
}
