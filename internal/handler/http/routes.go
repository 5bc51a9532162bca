package http

import (
	"net/http"

	"github.com/MKhiriev/go-webapp-plugins/internal/apidoc"
	"github.com/MKhiriev/go-webapp-plugins/models"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3gen"
	"github.com/go-chi/chi/v5"
)

const (
	loginPasswordPath  = "/api/v1/user/login/password"
	changePasswordPath = "/api/v1/user/password"
	logoutPath         = "/api/v1/user/session/logout"
	listUsersPath      = "/api/v1/user"
	sessionInfoPath    = "/api/v1/user_session/info"
)

// RegisterUserCoreRoutes mounts the account routes: logout, user listing and
// session info. All of them require a session.
func (h *Handler) RegisterUserCoreRoutes(r chi.Router) *apidoc.Fragment {
	r.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Post(logoutPath, h.logout)
		r.Get(listUsersPath, h.listUsers)
		r.Get(sessionInfoPath, h.sessionInfo)
	})

	pageParam := func(name, description string, def uint64) *openapi3.ParameterRef {
		schema := openapi3.NewIntegerSchema().WithMin(0).WithDefault(def)
		return &openapi3.ParameterRef{Value: openapi3.NewQueryParameter(name).
			WithDescription(description).
			WithSchema(schema)}
	}

	usersSchema := openapi3.NewArraySchema()
	usersSchema.Items = apidoc.SchemaRef("User")

	return apidoc.NewFragment().
		AddSchema("User", schemaOf(models.User{})).
		AddSchema("Identity", schemaOf(models.Identity{})).
		AddOperation(http.MethodPost, logoutPath, apidoc.Authenticated(&openapi3.Operation{
			OperationID: "logout",
			Tags:        []string{"user"},
			Summary:     "Close the current session",
			Responses:   apidoc.Responses(apidoc.OK(msgLoggedOut, nil)),
		})).
		AddOperation(http.MethodGet, listUsersPath, apidoc.Authenticated(&openapi3.Operation{
			OperationID: "listUsers",
			Tags:        []string{"user"},
			Summary:     "List users ordered by id",
			Parameters: openapi3.Parameters{
				pageParam("_start", "Index of the first user", models.DefaultPageStart),
				pageParam("_end", "Index past the last user", models.DefaultPageEnd),
			},
			Responses: apidoc.Responses(
				apidoc.OK("One page of users", usersSchema.NewRef(), totalCountHeader),
				apidoc.Response{Status: http.StatusBadRequest, Description: ErrInvalidPageRange.Error()},
			),
		})).
		AddOperation(http.MethodGet, sessionInfoPath, apidoc.Authenticated(&openapi3.Operation{
			OperationID: "sessionInfo",
			Tags:        []string{"user"},
			Summary:     "Describe the current user and session",
			Responses:   apidoc.Responses(apidoc.OK("Current identity", apidoc.SchemaRef("Identity"))),
		}))
}

// RegisterPasswordAuthRoutes mounts password login and password change.
func (h *Handler) RegisterPasswordAuthRoutes(r chi.Router) *apidoc.Fragment {
	r.Post(loginPasswordPath, h.loginPassword)

	r.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Post(changePasswordPath, h.changePassword)
	})

	return apidoc.NewFragment().
		AddSchema("LoginRequest", schemaOf(models.LoginRequest{})).
		AddSchema("LoginResponse", schemaOf(models.LoginResponse{})).
		AddSchema("ChangePasswordRequest", schemaOf(models.ChangePasswordRequest{})).
		AddOperation(http.MethodPost, loginPasswordPath, &openapi3.Operation{
			OperationID: "loginPassword",
			Tags:        []string{"auth"},
			Summary:     "Open a session with username and password",
			RequestBody: apidoc.JSONBody("LoginRequest"),
			Responses: apidoc.Responses(
				apidoc.OK("Session token, also set as the session cookie", apidoc.SchemaRef("LoginResponse")),
				apidoc.Response{Status: http.StatusBadRequest, Description: msgInvalidJSON},
				apidoc.Response{Status: http.StatusForbidden, Description: msgInvalidCredentials},
			),
		}).
		AddOperation(http.MethodPost, changePasswordPath, apidoc.Authenticated(&openapi3.Operation{
			OperationID: "changePassword",
			Tags:        []string{"auth"},
			Summary:     "Replace the password of the current user",
			RequestBody: apidoc.JSONBody("ChangePasswordRequest"),
			Responses: apidoc.Responses(
				apidoc.OK(msgPasswordChanged, nil),
				apidoc.Response{Status: http.StatusBadRequest, Description: "New password is too short"},
			),
		}))
}

// schemaOf derives a component schema from the json tags of v.
func schemaOf(v any) *openapi3.Schema {
	ref, err := openapi3gen.NewSchemaRefForValue(v, nil)
	if err != nil || ref == nil || ref.Value == nil {
		return openapi3.NewObjectSchema()
	}
	return ref.Value
}
