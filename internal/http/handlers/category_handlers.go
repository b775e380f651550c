package handlers

import (
	"errors"
	"net/http"

	"github.com/rogerio-castellano/stock-manager/internal/models"
	repo "github.com/rogerio-castellano/stock-manager/internal/repo"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

func toCategoryResponse(c models.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description, Icon: c.Icon}
}

func categoryFromRequest(id int, req CategoryRequest) models.Category {
	return models.Category{ID: id, Name: req.Name, Description: req.Description, Icon: req.Icon}
}

// CreateCategoryHandler godoc
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param category body CategoryRequest true "Category to add"
// @Success 201 {object} CategoryResponse
// @Failure 400 {array} ProductValidationError
// @Failure 403 {string} string "Forbidden"
// @Router /api/v1/categories/ [post]
func CreateCategoryHandler(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if errs := validateCategory(&req); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, errs)
		return
	}

	created, err := categoryRepo.Create(r.Context(), categoryFromRequest(0, req))
	if err != nil {
		logrus.WithError(err).Error("create category")
		http.Error(w, "could not create category", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, toCategoryResponse(created))
}

// GetCategoriesHandler godoc
// @Summary List categories
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Success 200 {array} CategoryResponse
// @Failure 500 {string} string "Internal error"
// @Router /api/v1/categories/ [get]
func GetCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	categories, err := categoryRepo.GetAll(r.Context())
	if err != nil {
		logrus.WithError(err).Error("list categories")
		http.Error(w, "could not fetch categories", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, lo.Map(categories, func(c models.Category, _ int) CategoryResponse {
		return toCategoryResponse(c)
	}))
}

// GetCategoryByIDHandler godoc
// @Summary Get category by ID
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Success 200 {object} CategoryResponse
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Router /api/v1/categories/{id}/ [get]
func GetCategoryByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid category ID", http.StatusBadRequest)
		return
	}
	c, err := categoryRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrCategoryNotFound) {
			http.Error(w, "category not found", http.StatusNotFound)
			return
		}
		logrus.WithError(err).Error("get category")
		http.Error(w, "could not fetch category", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, toCategoryResponse(c))
}

// UpdateCategoryHandler godoc
// @Summary Update a category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Param category body CategoryRequest true "Updated category"
// @Success 200 {object} CategoryResponse
// @Failure 400 {array} ProductValidationError
// @Failure 403 {string} string "Forbidden"
// @Failure 404 {string} string "Not found"
// @Router /api/v1/categories/{id}/ [put]
func UpdateCategoryHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid category ID", http.StatusBadRequest)
		return
	}

	var req CategoryRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if errs := validateCategory(&req); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, errs)
		return
	}

	updated, err := categoryRepo.Update(r.Context(), categoryFromRequest(id, req))
	if err != nil {
		if errors.Is(err, repo.ErrCategoryNotFound) {
			http.Error(w, "category not found", http.StatusNotFound)
			return
		}
		logrus.WithError(err).Error("update category")
		http.Error(w, "could not update category", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, toCategoryResponse(updated))
}

// DeleteCategoryHandler godoc
// @Summary Delete a category
// @Description Products of the category become uncategorized.
// @Tags categories
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Success 204 "Deleted successfully"
// @Failure 403 {string} string "Forbidden"
// @Failure 404 {string} string "Not found"
// @Router /api/v1/categories/{id}/ [delete]
func DeleteCategoryHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid category ID", http.StatusBadRequest)
		return
	}
	if err := categoryRepo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repo.ErrCategoryNotFound) {
			http.Error(w, "category not found", http.StatusNotFound)
			return
		}
		logrus.WithError(err).Error("delete category")
		http.Error(w, "could not delete category", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
