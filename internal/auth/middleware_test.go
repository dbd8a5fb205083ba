package auth_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"taskboard/internal/auth"
	"taskboard/internal/auth/authtest"
	"taskboard/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type fakeVerifier struct {
	claims auth.Claims
	err    error
	calls  int
}

func (f *fakeVerifier) Verify(string) (auth.Claims, error) {
	f.calls++
	return f.claims, f.err
}

// newRouter serves path behind Authenticate and records what the handler saw.
func newRouter(v auth.TokenVerifier, path string, seen *auth.Identity, reached *bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(auth.Authenticate(v))
	r.GET(path, func(c *gin.Context) {
		*reached = true
		if id, err := auth.IdentityFrom(c.Request.Context()); err == nil {
			*seen = id
		}
		c.Status(http.StatusOK)
	})
	return r
}

func serve(r http.Handler, path, authorization string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticate_PublicPathSkipsEverything(t *testing.T) {
	for _, hdr := range []string{"", "Basic abc", "Bearer garbage"} {
		v := &fakeVerifier{err: auth.ErrTokenMalformed}
		var seen auth.Identity
		var reached bool
		r := newRouter(v, "/auth/signin", &seen, &reached)

		w := serve(r, "/auth/signin", hdr)
		if w.Code != http.StatusOK || !reached {
			t.Fatalf("header %q: expected forward, got %d", hdr, w.Code)
		}
		if v.calls != 0 {
			t.Fatalf("header %q: verifier must not run on public paths", hdr)
		}
	}
}

func TestAuthenticate_MissingOrForeignHeader(t *testing.T) {
	for _, hdr := range []string{"", "Basic abc", "bearer abc", "Token abc"} {
		var seen auth.Identity
		var reached bool
		r := newRouter(&fakeVerifier{}, "/tasks", &seen, &reached)

		w := serve(r, "/tasks", hdr)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("header %q: expected 400, got %d", hdr, w.Code)
		}
		if w.Body.String() != auth.MsgTokenRequired {
			t.Fatalf("header %q: unexpected body %q", hdr, w.Body.String())
		}
		if reached {
			t.Fatalf("header %q: handler must not run", hdr)
		}
	}
}

func TestAuthenticate_VerifyFailuresMapToStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"expired", auth.ErrTokenExpired, http.StatusUnauthorized, auth.MsgTokenExpired},
		{"malformed", auth.ErrTokenMalformed, http.StatusUnauthorized, auth.MsgInvalidSignature},
		{"unsupported", auth.ErrTokenUnsupported, http.StatusBadRequest, auth.MsgUnsupportedToken},
		{"internal", auth.ErrTokenInternal, http.StatusInternalServerError, auth.MsgInternalError},
		{"unknown", errors.New("boom: secret details"), http.StatusInternalServerError, auth.MsgInternalError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen auth.Identity
			var reached bool
			r := newRouter(&fakeVerifier{err: tt.err}, "/tasks", &seen, &reached)

			w := serve(r, "/tasks", "Bearer x")
			if w.Code != tt.status || w.Body.String() != tt.body {
				t.Fatalf("expected %d %q, got %d %q", tt.status, tt.body, w.Code, w.Body.String())
			}
			if reached {
				t.Fatalf("handler must not run")
			}
		})
	}
}

func TestAuthenticate_BadClaimsAreInternal(t *testing.T) {
	for _, c := range []auth.Claims{
		authtest.Claims("not-a-number", "", "", "USER", time.Now(), time.Hour),
		authtest.Claims("1", "", "", "SUPERUSER", time.Now(), time.Hour),
	} {
		var seen auth.Identity
		var reached bool
		r := newRouter(&fakeVerifier{claims: c}, "/tasks", &seen, &reached)

		w := serve(r, "/tasks", "Bearer x")
		if w.Code != http.StatusInternalServerError || w.Body.String() != auth.MsgInternalError {
			t.Fatalf("expected 500, got %d %q", w.Code, w.Body.String())
		}
		if reached {
			t.Fatalf("handler must not run")
		}
	}
}

func TestAuthenticate_ValidTokenPopulatesIdentity(t *testing.T) {
	v, err := auth.NewVerifier(configWithSecret())
	if err != nil {
		t.Fatalf("verifier: %v", err)
	}
	tok := authtest.Sign(t, authtest.Secret, authtest.Claims("42", "kim@example.com", "kim", "USER", time.Now(), time.Hour))

	var seen auth.Identity
	var reached bool
	r := newRouter(v, "/tasks", &seen, &reached)

	w := serve(r, "/tasks", authtest.Bearer(tok))
	if w.Code != http.StatusOK || !reached {
		t.Fatalf("expected 200, got %d %q", w.Code, w.Body.String())
	}
	want := auth.Identity{UserID: 42, Email: "kim@example.com", DisplayName: "kim", Role: auth.RoleUser}
	if seen != want {
		t.Fatalf("expected %+v, got %+v", want, seen)
	}
}

func TestAuthenticate_ExpiredRealToken(t *testing.T) {
	v, err := auth.NewVerifier(configWithSecret())
	if err != nil {
		t.Fatalf("verifier: %v", err)
	}
	tok := authtest.Sign(t, authtest.Secret, authtest.Claims("42", "", "", "USER", time.Now().Add(-2*time.Hour), time.Hour))

	var seen auth.Identity
	var reached bool
	r := newRouter(v, "/tasks", &seen, &reached)

	w := serve(r, "/tasks", authtest.Bearer(tok))
	if w.Code != http.StatusUnauthorized || w.Body.String() != auth.MsgTokenExpired {
		t.Fatalf("expected 401 expired, got %d %q", w.Code, w.Body.String())
	}
}

func TestAuthenticate_NumericSubjectAccepted(t *testing.T) {
	v, err := auth.NewVerifier(configWithSecret())
	if err != nil {
		t.Fatalf("verifier: %v", err)
	}
	tok := authtest.SignMap(t, authtest.Secret, jwt.MapClaims{
		"sub":      42,
		"email":    "kim@example.com",
		"nickname": "kim",
		"userRole": "USER",
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(time.Hour).Unix(),
	})

	var seen auth.Identity
	var reached bool
	r := newRouter(v, "/tasks", &seen, &reached)

	w := serve(r, "/tasks", authtest.Bearer(tok))
	if w.Code != http.StatusOK || !reached {
		t.Fatalf("expected 200, got %d %q", w.Code, w.Body.String())
	}
	want := auth.Identity{UserID: 42, Email: "kim@example.com", DisplayName: "kim", Role: auth.RoleUser}
	if seen != want {
		t.Fatalf("expected %+v, got %+v", want, seen)
	}
}

func TestAuthenticate_WrongTypedClaimsAreInternal(t *testing.T) {
	v, err := auth.NewVerifier(configWithSecret())
	if err != nil {
		t.Fatalf("verifier: %v", err)
	}
	for _, c := range []jwt.MapClaims{
		{"sub": "42", "userRole": 1},
		{"sub": true, "userRole": "USER"},
	} {
		c["iat"] = time.Now().Unix()
		c["exp"] = time.Now().Add(time.Hour).Unix()
		tok := authtest.SignMap(t, authtest.Secret, c)

		var seen auth.Identity
		var reached bool
		r := newRouter(v, "/tasks", &seen, &reached)

		w := serve(r, "/tasks", authtest.Bearer(tok))
		if w.Code != http.StatusInternalServerError || w.Body.String() != auth.MsgInternalError {
			t.Fatalf("claims %v: expected 500, got %d %q", c, w.Code, w.Body.String())
		}
		if reached {
			t.Fatalf("claims %v: handler must not run", c)
		}
	}
}

func TestAuthenticate_RejectionLogLevels(t *testing.T) {
	tests := []struct {
		name  string
		hdr   string
		err   error
		level string
		msg   string
	}{
		{"missing header", "", nil, "WARN", auth.MsgTokenRequired},
		{"malformed token", "Bearer x", auth.ErrTokenMalformed, "WARN", auth.MsgInvalidSignature},
		{"internal failure", "Bearer x", auth.ErrTokenInternal, "ERROR", auth.MsgInternalError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			gin.SetMode(gin.TestMode)
			r := gin.New()
			r.Use(logger.Middleware(slog.New(slog.NewJSONHandler(&buf, nil))))
			r.Use(auth.Authenticate(&fakeVerifier{err: tt.err}))
			r.GET("/tasks", func(c *gin.Context) { c.Status(http.StatusOK) })

			serve(r, "/tasks", tt.hdr)

			dec := json.NewDecoder(&buf)
			for dec.More() {
				var line map[string]any
				if err := dec.Decode(&line); err != nil {
					t.Fatalf("decode log line: %v", err)
				}
				if line["msg"] == tt.msg {
					if line["level"] != tt.level {
						t.Fatalf("expected level %s, got %v", tt.level, line["level"])
					}
					return
				}
			}
			t.Fatalf("no log line for %q in %s", tt.msg, buf.String())
		})
	}
}
