package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/agentsynergy/internal/common"
	"github.com/dmitrijs2005/agentsynergy/internal/server/models"
	"github.com/dmitrijs2005/agentsynergy/internal/server/services"
)

const tokenType = "bearer"

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "healthy", Service: ServiceName, Version: s.version})
}

func (s *HTTPServer) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req registerRequest
	if !decode(w, r, &req) {
		return
	}

	user, err := s.users.Register(ctx, services.Registration{
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		CompanyName:     req.CompanyName,
		CompanySize:     req.CompanySize,
	})
	if err != nil {
		var verr *services.ValidationError
		switch {
		case errors.As(err, &verr):
			writeError(w, http.StatusBadRequest, verr.Reason)
		case errors.Is(err, common.ErrorAlreadyExists):
			writeError(w, http.StatusBadRequest, "Email already registered")
		default:
			s.logger.Error(ctx, "registration failed", "error", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	s.logger.Info(ctx, "Registered", "user_id", user.ID)
	writeJSON(w, http.StatusCreated, toUserResponse(user))
}

func (s *HTTPServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req loginRequest
	if !decode(w, r, &req) {
		return
	}

	tokens, user, err := s.users.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			writeError(w, http.StatusUnauthorized, "Incorrect email or password")
			return
		}
		s.logger.Error(ctx, "login failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, authResponse{
		AccessToken:  tokens.AccessToken,
		TokenType:    tokenType,
		RefreshToken: tokens.RefreshToken,
		User:         toUserResponse(user),
	})
}

func (s *HTTPServer) handleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req refreshRequest
	if !decode(w, r, &req) {
		return
	}
	if req.RefreshToken == "" {
		writeError(w, http.StatusUnprocessableEntity, "refresh_token is required")
		return
	}

	tokens, err := s.users.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRefreshTokenExpired):
			writeError(w, http.StatusUnauthorized, "Refresh token has expired")
		case errors.Is(err, common.ErrorUnauthorized):
			writeError(w, http.StatusUnauthorized, "Invalid refresh token")
		default:
			s.logger.Error(ctx, "refresh failed", "error", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{
		AccessToken:  tokens.AccessToken,
		TokenType:    tokenType,
		RefreshToken: tokens.RefreshToken,
	})
}

func (s *HTTPServer) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := userFromContext(ctx)

	if err := s.users.Logout(ctx, user.ID); err != nil {
		s.logger.Error(ctx, "logout failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Successfully logged out"})
}

func (s *HTTPServer) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toUserResponse(userFromContext(r.Context())))
}

func (s *HTTPServer) handleUpdateMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req userUpdateRequest
	if !decode(w, r, &req) {
		return
	}

	user, err := s.users.UpdateProfile(ctx, userFromContext(ctx).ID, models.UserUpdate{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		CompanyName: req.CompanyName,
		CompanySize: req.CompanySize,
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		s.logger.Error(ctx, "profile update failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(user))
}

func (s *HTTPServer) handleDeleteMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := userFromContext(ctx)

	if err := s.users.DeleteAccount(ctx, user.ID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		s.logger.Error(ctx, "account deletion failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	s.logger.Info(ctx, "account deleted", "user_id", user.ID)
	writeJSON(w, http.StatusOK, messageResponse{Message: "User deleted successfully"})
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Invalid request body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}
