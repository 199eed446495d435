package handlers_test

import (
	"net/http"
	"strings"
	"testing"
)

func TestAuthHandler_Signup(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/auth/signup", "", map[string]any{
		"email":    "Alice@Example.com",
		"password": "opensesame",
		"name":     "Alice",
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	response := decodeObject(t, w)
	if response["access_token"] == "" || response["access_token"] == nil {
		t.Error("Expected an access token in the signup response")
	}
	if response["token_type"] != "bearer" {
		t.Errorf("Expected token_type 'bearer', got %v", response["token_type"])
	}

	account, ok := response["user"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected a user object, got %v", response["user"])
	}
	if account["email"] != "alice@example.com" {
		t.Errorf("Expected normalized email, got %v", account["email"])
	}
	if account["name"] != "Alice" {
		t.Errorf("Expected name 'Alice', got %v", account["name"])
	}
	id, _ := account["id"].(string)
	if !strings.HasPrefix(id, "user_") {
		t.Errorf("Expected an opaque public id, got %q", id)
	}
}

func TestAuthHandler_SignupDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "alice@example.com")

	w := env.do(t, http.MethodPost, "/api/auth/signup", "", map[string]any{
		"email":    "alice@example.com",
		"password": "different",
	})

	if w.Code != http.StatusConflict {
		t.Fatalf("Expected status 409, got %d: %s", w.Code, w.Body.String())
	}
	response := decodeObject(t, w)
	if response["error"] != "email already registered" {
		t.Errorf("Expected duplicate email error, got %v", response["error"])
	}
}

func TestAuthHandler_SignupRejectsBadPayload(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing email", map[string]any{"password": "opensesame"}},
		{"invalid email", map[string]any{"email": "not-an-email", "password": "opensesame"}},
		{"missing password", map[string]any{"email": "alice@example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/api/auth/signup", "", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("Expected status 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	env := newTestEnv(t)
	_, publicID := env.signup(t, "alice@example.com")

	w := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "ALICE@example.com",
		"password": "opensesame",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	response := decodeObject(t, w)
	if response["access_token"] == "" || response["access_token"] == nil {
		t.Error("Expected an access token in the login response")
	}
	account, _ := response["user"].(map[string]interface{})
	if account["id"] != publicID {
		t.Errorf("Expected user id %q, got %v", publicID, account["id"])
	}
}

func TestAuthHandler_LoginRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "alice@example.com")

	tests := []struct {
		name  string
		email string
	}{
		{"wrong password", "alice@example.com"},
		{"unknown email", "bob@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
				"email":    tt.email,
				"password": "wrong-password",
			})
			if w.Code != http.StatusUnauthorized {
				t.Fatalf("Expected status 401, got %d: %s", w.Code, w.Body.String())
			}
			response := decodeObject(t, w)
			if response["error"] != "incorrect email or password" {
				t.Errorf("Expected uniform credential error, got %v", response["error"])
			}
		})
	}
}

func TestAuthHandler_Me(t *testing.T) {
	env := newTestEnv(t)
	token, publicID := env.signup(t, "alice@example.com")

	w := env.do(t, http.MethodGet, "/api/auth/me", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	response := decodeObject(t, w)
	if response["id"] != publicID {
		t.Errorf("Expected id %q, got %v", publicID, response["id"])
	}
	if response["email"] != "alice@example.com" {
		t.Errorf("Expected email, got %v", response["email"])
	}
}

func TestAuthHandler_MeRequiresToken(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/auth/me", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Expected status 401, got %d: %s", w.Code, w.Body.String())
	}
	response := decodeObject(t, w)
	if response["error"] != "missing bearer token" {
		t.Errorf("Expected missing token error, got %v", response["error"])
	}
}
