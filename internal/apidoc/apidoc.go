// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package apidoc assembles the OpenAPI document of the webapp out of the
// fragments every plugin returns while registering its routes.
package apidoc

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
)

// Security scheme names shared by every plugin operation that needs identity.
const (
	SessionCookieScheme       = "session_cookie"
	AuthorizationHeaderScheme = "authorization_header"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "session"

var ErrDuplicateOperation = errors.New("operation is already documented")

// Fragment is the part of the API a single plugin documents.
type Fragment struct {
	Paths   *openapi3.Paths
	Schemas openapi3.Schemas
}

// NewFragment returns an empty fragment.
func NewFragment() *Fragment {
	return &Fragment{
		Paths:   openapi3.NewPaths(),
		Schemas: openapi3.Schemas{},
	}
}

// AddOperation documents op under method and path.
func (f *Fragment) AddOperation(method, path string, op *openapi3.Operation) *Fragment {
	item := f.Paths.Value(path)
	if item == nil {
		item = &openapi3.PathItem{}
		f.Paths.Set(path, item)
	}
	item.SetOperation(method, op)
	return f
}

// AddSchema registers a named component schema.
func (f *Fragment) AddSchema(name string, schema *openapi3.Schema) *Fragment {
	f.Schemas[name] = schema.NewRef()
	return f
}

// NewDocument returns the base document: API info and the security schemes
// the session authenticator understands.
func NewDocument(title, version string) *openapi3.T {
	return &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   title,
			Version: version,
		},
		Paths: openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{},
			SecuritySchemes: openapi3.SecuritySchemes{
				SessionCookieScheme: &openapi3.SecuritySchemeRef{Value: &openapi3.SecurityScheme{
					Type:        "apiKey",
					In:          "cookie",
					Name:        SessionCookieName,
					Description: "Session token set by the login endpoint.",
				}},
				AuthorizationHeaderScheme: &openapi3.SecuritySchemeRef{Value: &openapi3.SecurityScheme{
					Type:        "apiKey",
					In:          "header",
					Name:        "Authorization",
					Description: "Session token passed verbatim.",
				}},
			},
		},
	}
}

// Merge copies every fragment into doc. Documenting the same method and
// path twice is an error; a schema name already present keeps its first
// definition.
func Merge(doc *openapi3.T, fragments ...*Fragment) error {
	for _, fragment := range fragments {
		if fragment == nil {
			continue
		}

		if fragment.Paths != nil {
			for path, item := range fragment.Paths.Map() {
				existing := doc.Paths.Value(path)
				if existing == nil {
					existing = &openapi3.PathItem{}
					doc.Paths.Set(path, existing)
				}
				for method, op := range item.Operations() {
					if existing.GetOperation(method) != nil {
						return fmt.Errorf("%w: %s %s", ErrDuplicateOperation, method, path)
					}
					existing.SetOperation(method, op)
				}
			}
		}

		for name, schema := range fragment.Schemas {
			if _, ok := doc.Components.Schemas[name]; !ok {
				doc.Components.Schemas[name] = schema
			}
		}
	}

	return nil
}

// Authenticated marks op as requiring a session credential.
func Authenticated(op *openapi3.Operation) *openapi3.Operation {
	op.Security = &openapi3.SecurityRequirements{
		{SessionCookieScheme: []string{}},
		{AuthorizationHeaderScheme: []string{}},
	}
	if op.Responses == nil {
		op.Responses = openapi3.NewResponsesWithCapacity(1)
	}
	op.Responses.Set("403", &openapi3.ResponseRef{Value: openapi3.NewResponse().WithDescription("Not authorized")})
	return op
}

// JSONBody returns a required JSON request body referencing the named
// component schema.
func JSONBody(schemaName string) *openapi3.RequestBodyRef {
	return &openapi3.RequestBodyRef{Value: openapi3.NewRequestBody().
		WithRequired(true).
		WithJSONSchemaRef(SchemaRef(schemaName))}
}

// SchemaRef points at a component schema.
func SchemaRef(name string) *openapi3.SchemaRef {
	return openapi3.NewSchemaRef("#/components/schemas/"+name, nil)
}

// Responses builds a response set out of status codes and descriptions.
func Responses(responses ...Response) *openapi3.Responses {
	out := openapi3.NewResponsesWithCapacity(len(responses))
	for _, r := range responses {
		resp := openapi3.NewResponse().WithDescription(r.Description)
		if r.Schema != nil {
			resp.WithJSONSchemaRef(r.Schema)
		}
		if len(r.Headers) > 0 {
			resp.Headers = openapi3.Headers{}
			for _, name := range r.Headers {
				resp.Headers[name] = &openapi3.HeaderRef{Value: &openapi3.Header{
					Parameter: openapi3.Parameter{Schema: openapi3.NewIntegerSchema().NewRef()},
				}}
			}
		}
		out.Set(fmt.Sprint(r.Status), &openapi3.ResponseRef{Value: resp})
	}
	return out
}

// Response describes one documented status code.
type Response struct {
	Status      int
	Description string
	Schema      *openapi3.SchemaRef
	Headers     []string
}

// OK is a 200 response with an optional body schema.
func OK(description string, schema *openapi3.SchemaRef, headers ...string) Response {
	return Response{Status: http.StatusOK, Description: description, Schema: schema, Headers: headers}
}
