package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Deps bundles the handlers and the authentication middleware the router
// mounts.
type Deps struct {
	Books    *BooksHandler
	Admin    *AdminHandler
	Reviews  *ReviewsHandler
	Messages *MessagesHandler

	// Authenticate wraps the /secure routes; it must attach a verified
	// identity to the request context.
	Authenticate func(http.Handler) http.Handler
}

// NewRouter builds the chi router with the full API surface.
func NewRouter(deps Deps) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/books", func(r chi.Router) {
			r.Get("/", deps.Books.List)
			r.Get("/{bookID}", deps.Books.Get)

			r.Route("/secure", func(r chi.Router) {
				r.Use(deps.Authenticate)
				r.Get("/currentloans", deps.Books.CurrentLoans)
				r.Get("/currentloans/count", deps.Books.CurrentLoansCount)
				r.Get("/ischeckedout/byuser", deps.Books.IsCheckedOutByUser)
				r.Get("/history", deps.Books.History)
				r.Put("/checkout", deps.Books.Checkout)
				r.Put("/return", deps.Books.Return)
				r.Put("/renew/loan", deps.Books.Renew)
			})
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Get("/", deps.Reviews.ListByBook)

			r.Route("/secure", func(r chi.Router) {
				r.Use(deps.Authenticate)
				r.Get("/user/book", deps.Reviews.UserReviewListed)
				r.Post("/", deps.Reviews.PostReview)
			})
		})

		r.Route("/messages/secure", func(r chi.Router) {
			r.Use(deps.Authenticate)
			r.Get("/", deps.Messages.ListByUser)
			r.Post("/add/message", deps.Messages.PostMessage)
			r.Get("/admin/open", deps.Messages.OpenQuestions)
			r.Put("/admin/message", deps.Messages.AnswerMessage)
		})

		r.Route("/admin/secure", func(r chi.Router) {
			r.Use(deps.Authenticate)
			r.Put("/increase/book/quantity", deps.Admin.IncreaseQuantity)
			r.Put("/decrease/book/quantity", deps.Admin.DecreaseQuantity)
			r.Post("/add/book", deps.Admin.AddBook)
			r.Delete("/delete/book", deps.Admin.DeleteBook)
		})
	})

	return r
}
