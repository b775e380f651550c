package handlers_test_suite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/rogerio-castellano/stock-manager/internal/auth"
	handler "github.com/rogerio-castellano/stock-manager/internal/http/handlers"
	mw "github.com/rogerio-castellano/stock-manager/internal/http/middleware"
	"github.com/rogerio-castellano/stock-manager/internal/http/router"
	"github.com/rogerio-castellano/stock-manager/internal/models"
	"github.com/rogerio-castellano/stock-manager/internal/repo"
	"github.com/rogerio-castellano/stock-manager/internal/stats"
	"golang.org/x/crypto/bcrypt"
)

const testPassword = "secret123"

var (
	// fixedNow pins the stock evolution window to 2026-04 .. 2026-10.
	fixedNow = time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)

	inventory    *repo.InMemoryInventory
	history      *repo.InMemoryHistoryRepository
	userRepo     *repo.InMemoryUserRepository
	statsService *stats.Service

	adminToken   string
	managerToken string
	readerToken  string
)

func init() {
	setupTestRepos()
	r := router.NewRouter()

	var err error
	for username, token := range map[string]*string{"admin": &adminToken, "manager": &managerToken, "reader": &readerToken} {
		*token, err = generateToken(r, username, testPassword)
		if err != nil {
			panic(fmt.Sprintf("error generating token: %v", err))
		}
	}
}

func setupTestRepos() {
	inventory = repo.NewInMemoryInventory()
	handler.SetProductRepo(inventory.Products())
	handler.SetCategoryRepo(inventory.Categories())

	history = repo.NewInMemoryHistoryRepository()

	var err error
	statsService, err = stats.NewService(inventory.Stats(), history, stats.WithClock(func() time.Time { return fixedNow }))
	if err != nil {
		panic(err)
	}
	handler.SetStatsService(statsService)

	issuer, err := auth.NewIssuer("test-secret", 15*time.Minute, 7*24*time.Hour, auth.NewInMemoryRefreshStore())
	if err != nil {
		panic(err)
	}
	handler.SetTokenIssuer(issuer)
	mw.SetTokenParser(issuer)

	userRepo = repo.NewInMemoryUserRepository()
	handler.SetUserRepo(userRepo)

	hash, _ := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	for username, role := range map[string]string{"admin": models.RoleAdmin, "manager": models.RoleManager, "reader": models.RoleReader} {
		_, _ = userRepo.CreateUser(context.Background(), models.User{
			Username:     username,
			PasswordHash: string(hash),
			Roles:        []string{role},
		})
	}
}

func clearInventory() {
	inventory.Clear()
	history.Clear()
}

func generateToken(r http.Handler, username, password string) (string, error) {
	w := doRequest(r, http.MethodPost, "/api/v1/auth/login/", "", handler.UserLogin{Username: username, Password: password})

	var resp handler.LoginResult
	err := json.NewDecoder(w.Body).Decode(&resp)
	if err != nil {
		return "", fmt.Errorf("token decoding failed: %v", err)
	}
	return resp.Access, nil
}

func doRequest(r http.Handler, method, path, token string, payload any) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		_ = json.NewEncoder(&body).Encode(payload)
	}

	req := httptest.NewRequest(method, path, &body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createCategory(name string) models.Category {
	c, err := inventory.Categories().Create(context.Background(), models.Category{Name: name})
	if err != nil {
		panic(err)
	}
	return c
}

func createProduct(p models.Product) models.Product {
	created, err := inventory.Products().Create(context.Background(), p)
	if err != nil {
		panic(err)
	}
	return created
}
