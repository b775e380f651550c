package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rogerio-castellano/stock-manager/internal/auth"
	mw "github.com/rogerio-castellano/stock-manager/internal/http/middleware"
	"github.com/rogerio-castellano/stock-manager/internal/models"
	"github.com/rogerio-castellano/stock-manager/internal/repo"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

func toUserResponse(u models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Roles:     u.Roles,
		CreatedAt: u.CreatedAt,
	}
}

// RegisterHandler godoc
// @Summary Register a new reader account
// @Description Creates the user in the Reader group and returns a token pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body RegisterRequest true "New account"
// @Success 201 {object} RegisterResult
// @Failure 400 {array} ProductValidationError
// @Router /api/v1/auth/register/ [post]
func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if errs := validationErrors(&req); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, errs)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "failed to hash password", http.StatusInternalServerError)
		return
	}

	user, err := userRepo.CreateUser(r.Context(), models.User{
		Username:     req.Username,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: string(hashed),
		Roles:        []string{models.RoleReader},
	})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			writeJSON(w, http.StatusBadRequest, []ProductValidationError{{Field: "username", Description: "username already exists"}})
			return
		}
		logrus.WithError(err).Error("register user")
		http.Error(w, "failed to register user", http.StatusInternalServerError)
		return
	}

	pair, err := tokenIssuer.IssuePair(r.Context(), user)
	if err != nil {
		logrus.WithError(err).Error("issue tokens")
		http.Error(w, "failed to generate token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, RegisterResult{
		Refresh: pair.Refresh,
		Access:  pair.Access,
		User:    toUserResponse(user),
	})
}

// LoginHandler godoc
// @Summary Authenticate user and return a token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body UserLogin true "username and password"
// @Success 200 {object} LoginResult
// @Failure 400 {string} string "Invalid input"
// @Failure 401 {string} string "Unauthorized"
// @Router /api/v1/auth/login/ [post]
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var credentials UserLogin
	if err := readJSON(w, r, &credentials); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	user, err := userRepo.GetByUsername(r.Context(), credentials.Username)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		logrus.WithError(err).Error("lookup user")
		http.Error(w, "could not authenticate", http.StatusInternalServerError)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(credentials.Password)) != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	pair, err := tokenIssuer.IssuePair(r.Context(), user)
	if err != nil {
		logrus.WithError(err).Error("issue tokens")
		http.Error(w, "could not generate token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, LoginResult{Refresh: pair.Refresh, Access: pair.Access})
}

// RefreshHandler godoc
// @Summary Exchange a refresh token for a new access token
// @Tags auth
// @Accept json
// @Produce json
// @Param token body RefreshRequest true "Refresh token"
// @Success 200 {object} RefreshResult
// @Failure 400 {string} string "Invalid input"
// @Failure 401 {string} string "Unauthorized"
// @Router /api/v1/auth/refresh/ [post]
func RefreshHandler(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := readJSON(w, r, &req); err != nil || req.Refresh == "" {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	access, err := tokenIssuer.Refresh(r.Context(), req.Refresh)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			http.Error(w, "invalid refresh token", http.StatusUnauthorized)
			return
		}
		logrus.WithError(err).Error("refresh token")
		http.Error(w, "could not refresh token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, RefreshResult{Access: access})
}

func currentUser(w http.ResponseWriter, r *http.Request) (models.User, bool) {
	id, ok := mw.IdentityFromContext(r.Context())
	if !ok {
		http.Error(w, "missing or invalid token", http.StatusUnauthorized)
		return models.User{}, false
	}

	user, err := userRepo.GetByID(r.Context(), id.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			http.Error(w, "user not found", http.StatusUnauthorized)
			return models.User{}, false
		}
		logrus.WithError(err).Error("get current user")
		http.Error(w, "could not fetch user", http.StatusInternalServerError)
		return models.User{}, false
	}
	return user, true
}

// GetProfileHandler godoc
// @Summary Current user profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UserResponse
// @Failure 401 {string} string "Unauthorized"
// @Router /api/v1/auth/me/ [get]
func GetProfileHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// UpdateProfileHandler godoc
// @Summary Update the current user profile
// @Description Only the fields present are changed. new_password requires current_password.
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body UpdateProfileRequest true "Profile changes"
// @Success 200 {object} UserResponse
// @Failure 400 {array} ProductValidationError
// @Failure 401 {string} string "Unauthorized"
// @Router /api/v1/auth/me/ [put]
func UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if req.Username != nil {
		trimmed := strings.TrimSpace(*req.Username)
		req.Username = &trimmed
	}
	if errs := validationErrors(&req); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, errs)
		return
	}

	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.NewPassword != nil {
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)) != nil {
			writeJSON(w, http.StatusBadRequest, []ProductValidationError{{Field: "current_password", Description: "current password is incorrect"}})
			return
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			http.Error(w, "failed to hash password", http.StatusInternalServerError)
			return
		}
		user.PasswordHash = string(hashed)
	}

	updated, err := userRepo.UpdateUser(r.Context(), user)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			writeJSON(w, http.StatusBadRequest, []ProductValidationError{{Field: "username", Description: "username already exists"}})
			return
		}
		logrus.WithError(err).Error("update profile")
		http.Error(w, "could not update profile", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(updated))
}
