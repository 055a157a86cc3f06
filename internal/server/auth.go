package server

import (
	"context"
	"net/http"
	"strings"

	"worktrack/internal/errors"
	"worktrack/internal/repository/sqlite"
)

// Principal identifies the authenticated caller of a request.
type Principal struct {
	Kind           string
	EmployeeID     string
	OrganizationID string
}

// IsEmployee reports whether the principal is an employee token as opposed
// to an organization API token.
func (p Principal) IsEmployee() bool {
	return p.Kind == sqlite.TokenKindEmployee
}

type principalKey struct{}

// principalFrom returns the authenticated principal stored on the request
// context by the auth middleware.
func principalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// withAuth resolves the bearer token into a principal and stores it on the
// request context. Unknown or missing tokens are rejected with 401.
func (s *Server) withAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeJSON(w, http.StatusUnauthorized, errorResponse{
				Error: "missing bearer token",
				Code:  "UNAUTHORIZED",
			})
			return
		}

		record, err := s.repo.GetToken(r.Context(), token)
		if err != nil {
			if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
				writeJSON(w, http.StatusUnauthorized, errorResponse{
					Error: "invalid bearer token",
					Code:  "UNAUTHORIZED",
				})
				return
			}
			writeError(w, err)
			return
		}

		principal := Principal{
			Kind:           record.Kind,
			EmployeeID:     record.EmployeeID,
			OrganizationID: record.OrganizationID,
		}
		ctx := context.WithValue(r.Context(), principalKey{}, principal)
		next(w, r.WithContext(ctx))
	}
}

// requireEmployee rejects API-token principals. Session endpoints are
// employee-only; API tokens are forbidden there.
func (s *Server) requireEmployee(next http.HandlerFunc) http.HandlerFunc {
	return s.withAuth(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := principalFrom(r.Context())
		if !ok || !principal.IsEmployee() {
			writeError(w, errors.NewForbiddenError("session endpoint", "employee token required"))
			return
		}
		next(w, r)
	})
}
