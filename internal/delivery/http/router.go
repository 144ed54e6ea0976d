package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "reeverband/docs"
	"reeverband/internal/delivery/http/controllers"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(contactController *controllers.ContactController, staticDir string) *http.ServeMux {
	mux := http.NewServeMux()

	// API Routes. The bare /api/contact pattern catches every non-POST
	// method so they all get the JSON 405 instead of the ServeMux default.
	mux.HandleFunc("POST /api/contact", contactController.CreateEnquiry)
	mux.HandleFunc("/api/contact", contactController.MethodNotAllowed)
	mux.HandleFunc("GET /api/csrf-token", contactController.IssueToken)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	// Static site
	if staticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	}

	return mux
}
