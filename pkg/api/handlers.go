package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/4GeeksAcademy/deimianvasquez-todolist-api-49/pkg/model"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Request bodies use pointer fields so a missing key is distinguishable from
// a zero value.
type createUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
}

type createTodoRequest struct {
	Label  *string `json:"label"`
	UserID uint    `json:"user_id"`
}

type updateTodoRequest struct {
	Label  *string `json:"label"`
	IsDone *bool   `json:"is_done"`
}

func pathID(r *http.Request) uint {
	id, _ := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	return uint(id)
}

func (s *Server) createUserHandler(w http.ResponseWriter, r *http.Request) {
	log := ctxLogger(r)

	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(log, w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if req.Username == nil {
		renderError(log, w, "the username key is required", http.StatusBadRequest)
		return
	}
	if req.Email == nil {
		renderError(log, w, "the email key is required", http.StatusBadRequest)
		return
	}

	user := &model.User{
		Username: strings.ToLower(*req.Username),
		Email:    *req.Email,
	}
	if err := s.users.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			renderError(log, w, fmt.Sprintf("the username %s is already registered", user.Username), http.StatusConflict)
			return
		}
		renderStoreError(log, w, err)
		return
	}

	writeJSON(log, w, http.StatusCreated, "user registered successfully")
}

func (s *Server) listUsersHandler(w http.ResponseWriter, r *http.Request) {
	log := ctxLogger(r)

	users, err := s.users.ListUsers(r.Context())
	if err != nil {
		renderStoreError(log, w, err)
		return
	}

	serialized := make([]model.SerializedUser, 0, len(users))
	for _, u := range users {
		serialized = append(serialized, u.Serialize())
	}
	writeJSON(log, w, http.StatusOK, serialized)
}

func (s *Server) getUserHandler(w http.ResponseWriter, r *http.Request) {
	log := ctxLogger(r)

	user, err := s.users.GetUser(r.Context(), pathID(r))
	if err != nil {
		renderStoreError(log, w, err)
		return
	}
	writeJSON(log, w, http.StatusOK, user.Serialize())
}

func (s *Server) deleteUserHandler(w http.ResponseWriter, r *http.Request) {
	log := ctxLogger(r)

	user, err := s.users.GetUser(r.Context(), pathID(r))
	if err != nil {
		renderStoreError(log, w, err)
		return
	}
	if err := s.users.DeleteUser(r.Context(), user); err != nil {
		renderStoreError(log, w, err)
		return
	}
	writeJSON(log, w, http.StatusNoContent, nil)
}

func (s *Server) createTodoHandler(w http.ResponseWriter, r *http.Request) {
	log := ctxLogger(r)

	var req createTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(log, w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if req.Label == nil {
		renderError(log, w, "the label key is required", http.StatusBadRequest)
		return
	}

	// user_id is passed through as given; the store's foreign key rejects a
	// dangling reference.
	todo := &model.Todo{
		Label:  *req.Label,
		UserID: req.UserID,
	}
	if err := s.todos.CreateTodo(r.Context(), todo); err != nil {
		renderStoreError(log, w, err)
		return
	}

	writeJSON(log, w, http.StatusCreated, "todo registered successfully")
}

func (s *Server) updateTodoHandler(w http.ResponseWriter, r *http.Request) {
	log := ctxLogger(r)

	var req updateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(log, w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if req.IsDone == nil {
		renderError(log, w, "the is_done key is required", http.StatusBadRequest)
		return
	}
	if req.Label == nil {
		renderError(log, w, "the label key is required", http.StatusBadRequest)
		return
	}

	todo, err := s.todos.GetTodo(r.Context(), pathID(r))
	if err != nil {
		renderStoreError(log, w, err)
		return
	}

	todo.IsDone = *req.IsDone
	todo.Label = *req.Label
	if err := s.todos.UpdateTodo(r.Context(), todo); err != nil {
		renderStoreError(log, w, err)
		return
	}

	writeJSON(log, w, http.StatusOK, todo.Serialize())
}

func (s *Server) deleteTodoHandler(w http.ResponseWriter, r *http.Request) {
	log := ctxLogger(r)

	todo, err := s.todos.GetTodo(r.Context(), pathID(r))
	if err != nil {
		renderStoreError(log, w, err)
		return
	}
	if err := s.todos.DeleteTodo(r.Context(), todo); err != nil {
		renderStoreError(log, w, err)
		return
	}
	writeJSON(log, w, http.StatusNoContent, nil)
}
