package api

import (
	"net/http"
	"sort"

	"github.com/4GeeksAcademy/deimianvasquez-todolist-api-49/pkg/repo"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var requestCounter metric.Int64Counter

func init() {
	var err error
	requestCounter, err = otel.Meter("todolist-api").Int64Counter("app.http.requests")
	if err != nil {
		requestCounter = nil
	}
}

// Server holds the HTTP surface: one handler per endpoint, dispatching to
// the repositories.
type Server struct {
	users  repo.UserRepository
	todos  repo.TodoRepository
	router *mux.Router
	log    *logrus.Logger
}

func NewServer(users repo.UserRepository, todos repo.TodoRepository, log *logrus.Logger) *Server {
	s := &Server{
		users: users,
		todos: todos,
		log:   log,
	}

	r := mux.NewRouter()
	r.HandleFunc("/", s.sitemapHandler).Methods(http.MethodGet)
	r.HandleFunc("/health-check", s.healthCheckHandler).Methods(http.MethodGet)

	r.HandleFunc("/user", s.createUserHandler).Methods(http.MethodPost)
	r.HandleFunc("/user", s.listUsersHandler).Methods(http.MethodGet)
	r.HandleFunc("/user/{id:[0-9]+}", s.getUserHandler).Methods(http.MethodGet)
	r.HandleFunc("/user/{id:[0-9]+}", s.deleteUserHandler).Methods(http.MethodDelete)

	r.HandleFunc("/todos", s.createTodoHandler).Methods(http.MethodPost)
	r.HandleFunc("/todos/{id:[0-9]+}", s.updateTodoHandler).Methods(http.MethodPut)
	r.HandleFunc("/todos/{id:[0-9]+}", s.deleteTodoHandler).Methods(http.MethodDelete)

	s.router = r
	return s
}

// Handler wraps the router with CORS and the request logging middleware.
func (s *Server) Handler() http.Handler {
	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)
	return &logHandler{log: s.log, next: cors(s.router)}
}

func (s *Server) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(ctxLogger(r), w, http.StatusOK, "ok")
}

// sitemapHandler enumerates every registered route and its allowed methods.
func (s *Server) sitemapHandler(w http.ResponseWriter, r *http.Request) {
	log := ctxLogger(r)

	routes := map[string][]string{}
	err := s.router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		path, err := route.GetPathTemplate()
		if err != nil {
			return nil
		}
		methods, err := route.GetMethods()
		if err != nil {
			return nil
		}
		routes[path] = append(routes[path], methods...)
		return nil
	})
	if err != nil {
		renderError(log, w, "failed to enumerate routes", http.StatusInternalServerError)
		return
	}
	for _, methods := range routes {
		sort.Strings(methods)
	}

	writeJSON(log, w, http.StatusOK, routes)
}
