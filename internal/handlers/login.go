package handlers

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strings"

	applog "demeter/internal/log"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	UserID        uint   `json:"user_id,omitempty"`
	Email         string `json:"email,omitempty"`
	Name          string `json:"name,omitempty"`
	Message       string `json:"message,omitempty"`
}

// Login reports the session state on GET and signs the user in on POST. POST
// accepts a JSON body or a form submission.
func Login(w http.ResponseWriter, r *http.Request) {
	applog.Debug(r.Context(), "handling login request", "method", r.Method)

	switch r.Method {
	case http.MethodGet, http.MethodHead:
		writeJSON(w, http.StatusOK, currentSession(r))
	case http.MethodPost:
		if sessionManager == nil || deps.Store == nil {
			applog.Debug(r.Context(), "authentication dependencies unavailable", "hasSession", sessionManager != nil, "hasStore", deps.Store != nil)
			writeJSONError(w, http.StatusServiceUnavailable, "authentication not available")
			return
		}

		creds, err := readLogin(r)
		if err != nil {
			applog.Debug(r.Context(), "failed to parse login submission", "error", err)
			writeJSONError(w, http.StatusBadRequest, "invalid login submission")
			return
		}
		if creds.Email == "" || creds.Password == "" {
			writeJSONError(w, http.StatusBadRequest, "email and password are required")
			return
		}

		user, err := authenticate(r, creds.Email, creds.Password)
		if err != nil {
			applog.Debug(r.Context(), "authentication failed", "email", strings.ToLower(creds.Email))
			if errors.Is(err, errInvalidCredentials) {
				writeJSONError(w, http.StatusUnauthorized, err.Error())
				return
			}
			writeJSONError(w, http.StatusInternalServerError, "unable to sign in")
			return
		}

		applog.Info(r.Context(), "user signed in", "userID", user.ID)
		writeJSON(w, http.StatusOK, sessionResponse{
			Authenticated: true,
			UserID:        user.ID,
			Email:         user.Email,
			Name:          user.Name,
		})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func readLogin(r *http.Request) (loginRequest, error) {
	var creds loginRequest
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			return creds, err
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return creds, err
		}
		creds.Email = r.PostFormValue("email")
		creds.Password = r.PostFormValue("password")
	}
	creds.Email = strings.TrimSpace(creds.Email)
	return creds, nil
}

func currentSession(r *http.Request) sessionResponse {
	if !ActiveSession(r) {
		resp := sessionResponse{}
		if sessionManager != nil {
			resp.Message = sessionManager.PopString(r.Context(), sessionLoginMessageKey)
		}
		return resp
	}
	id, _ := currentUserID(r)
	return sessionResponse{
		Authenticated: true,
		UserID:        id,
		Email:         sessionManager.GetString(r.Context(), sessionUserEmailKey),
		Name:          sessionManager.GetString(r.Context(), sessionUserNameKey),
	}
}
