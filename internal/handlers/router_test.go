package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-lending/internal/handlers"
	"library-lending/internal/lending"
	"library-lending/internal/memory"
	"library-lending/internal/messages"
	"library-lending/internal/middleware"
	"library-lending/internal/models"
	"library-lending/internal/reviews"
)

func newTestServer(t *testing.T, books ...models.Book) *httptest.Server {
	t.Helper()

	store := memory.NewStore()
	for _, book := range books {
		store.SeedBook(book)
	}

	router := handlers.NewRouter(handlers.Deps{
		Books:        handlers.NewBooksHandler(lending.NewService(store)),
		Admin:        handlers.NewAdminHandler(lending.NewService(store)),
		Reviews:      handlers.NewReviewsHandler(reviews.NewService(store)),
		Messages:     handlers.NewMessagesHandler(messages.NewService(store)),
		Authenticate: middleware.StubAuth(),
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func do(t *testing.T, method, url, email, roles, body string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	if email != "" {
		req.Header.Set("X-User-Email", email)
	}
	if roles != "" {
		req.Header.Set("X-User-Roles", roles)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func Test_Health_Responds(t *testing.T) {
	server := newTestServer(t)

	resp := do(t, http.MethodGet, server.URL+"/health", "", "", "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func Test_Checkout_Succeeds_ForAuthenticatedUser(t *testing.T) {
	server := newTestServer(t, models.Book{ID: "b1", Title: "One", CopiesTotal: 1, CopiesAvailable: 1})

	resp := do(t, http.MethodPut, server.URL+"/api/books/secure/checkout?bookId=b1",
		"u1@example.com", "user", "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func Test_Checkout_Rejected_WithoutIdentity(t *testing.T) {
	server := newTestServer(t, models.Book{ID: "b1", CopiesTotal: 1, CopiesAvailable: 1})

	resp := do(t, http.MethodPut, server.URL+"/api/books/secure/checkout?bookId=b1", "", "", "")

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func Test_Checkout_NotFound_ForUnknownBook(t *testing.T) {
	server := newTestServer(t)

	resp := do(t, http.MethodPut, server.URL+"/api/books/secure/checkout?bookId=nope",
		"u1@example.com", "user", "")

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func Test_Checkout_Conflict_WhenAlreadyCheckedOut(t *testing.T) {
	server := newTestServer(t, models.Book{ID: "b1", CopiesTotal: 2, CopiesAvailable: 2})
	url := server.URL + "/api/books/secure/checkout?bookId=b1"

	first := do(t, http.MethodPut, url, "u1@example.com", "user", "")
	require.Equal(t, http.StatusOK, first.StatusCode)

	second := do(t, http.MethodPut, url, "u1@example.com", "user", "")
	assert.Equal(t, http.StatusConflict, second.StatusCode)
}

func Test_Checkout_BadRequest_WithoutBookID(t *testing.T) {
	server := newTestServer(t)

	resp := do(t, http.MethodPut, server.URL+"/api/books/secure/checkout",
		"u1@example.com", "user", "")

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func Test_AddBook_Created_ForAdmin(t *testing.T) {
	server := newTestServer(t)

	resp := do(t, http.MethodPost, server.URL+"/api/admin/secure/add/book",
		"admin@example.com", "admin,user",
		`{"title":"New","author":"A","copies":2,"category":"Fiction"}`)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func Test_AddBook_Forbidden_WhenAdminIsNotFirstRole(t *testing.T) {
	server := newTestServer(t)

	resp := do(t, http.MethodPost, server.URL+"/api/admin/secure/add/book",
		"u1@example.com", "user,admin",
		`{"title":"New","author":"A","copies":2,"category":"Fiction"}`)

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func Test_DecreaseQuantity_Conflict_WhenNoCopyOnShelf(t *testing.T) {
	server := newTestServer(t, models.Book{ID: "b1", CopiesTotal: 1, CopiesAvailable: 0})

	resp := do(t, http.MethodPut, server.URL+"/api/admin/secure/decrease/book/quantity?bookId=b1",
		"admin@example.com", "admin", "")

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func Test_PostReview_Conflict_OnDuplicate(t *testing.T) {
	server := newTestServer(t, models.Book{ID: "b1", CopiesTotal: 1, CopiesAvailable: 1})
	url := server.URL + "/api/reviews/secure/"
	body := `{"bookId":"b1","rating":4}`

	first := do(t, http.MethodPost, url, "u1@example.com", "user", body)
	require.Equal(t, http.StatusCreated, first.StatusCode)

	second := do(t, http.MethodPost, url, "u1@example.com", "user", body)
	assert.Equal(t, http.StatusConflict, second.StatusCode)
}

func Test_AnswerMessage_NotFound_ForUnknownThread(t *testing.T) {
	server := newTestServer(t)

	resp := do(t, http.MethodPut, server.URL+"/api/messages/secure/admin/message",
		"admin@example.com", "admin", `{"id":"missing","response":"..."}`)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func Test_OpenQuestions_Forbidden_ForRegularUser(t *testing.T) {
	server := newTestServer(t)

	resp := do(t, http.MethodGet, server.URL+"/api/messages/secure/admin/open",
		"u1@example.com", "user", "")

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
