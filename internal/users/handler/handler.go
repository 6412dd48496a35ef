package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/meanstack/userapi/internal/users"
	"github.com/meanstack/userapi/pkg/logger"
)

// UserService is what the routes need from the users service.
type UserService interface {
	List(ctx context.Context) ([]users.User, error)
	Get(ctx context.Context, id string) (*users.User, error)
	Create(ctx context.Context, u *users.User) (users.InsertResult, error)
	Update(ctx context.Context, id string, changes users.Changes) (users.UpdateOutcome, error)
	Delete(ctx context.Context, id string) (users.DeleteOutcome, error)
}

type createRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterUserRoutes mounts the CRUD routes on rg (normally the /users group).
func RegisterUserRoutes(rg *gin.RouterGroup, svc UserService) {
	h := &userHandler{svc: svc}
	rg.GET("", h.list)
	rg.GET("/:id", h.get)
	rg.POST("", h.create)
	rg.PUT("/:id", h.update)
	rg.DELETE("/:id", h.delete)
}

type userHandler struct {
	svc UserService
}

func (h *userHandler) list(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		text(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *userHandler) get(c *gin.Context) {
	id := c.Param("id")
	u, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		// malformed ids are reported as not found
		text(c, http.StatusNotFound, err.Error())
		return
	}
	if u == nil {
		text(c, http.StatusNotFound, fmt.Sprintf("Failed to find a user with id %s", id))
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *userHandler) create(c *gin.Context) {
	var req createRequest
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		text(c, http.StatusBadRequest, err.Error())
		return
	}
	u := &users.User{Name: req.Name, Email: req.Email, Password: req.Password}
	res, err := h.svc.Create(c.Request.Context(), u)
	if err != nil {
		text(c, http.StatusBadRequest, err.Error())
		return
	}
	if !res.Acknowledged {
		text(c, http.StatusInternalServerError, "Failed to create new user.")
		return
	}
	text(c, http.StatusCreated, fmt.Sprintf("Created new user with id: %s.", res.ID.Hex()))
}

func (h *userHandler) update(c *gin.Context) {
	id := c.Param("id")
	var changes users.Changes
	if err := c.ShouldBindJSON(&changes); err != nil {
		logger.Errorf("update user %s: %v", id, err)
		text(c, http.StatusBadRequest, err.Error())
		return
	}
	out, err := h.svc.Update(c.Request.Context(), id, changes)
	if err != nil {
		logger.Errorf("update user %s: %v", id, err)
		text(c, http.StatusBadRequest, err.Error())
		return
	}
	switch out {
	case users.UpdateModified:
		text(c, http.StatusOK, fmt.Sprintf("Updated user with id: %s.", id))
	case users.UpdateUnchanged:
		text(c, http.StatusNotModified, fmt.Sprintf("Failed to update an user with id: %s", id))
	case users.UpdateNotMatched:
		text(c, http.StatusNotFound, fmt.Sprintf("Failed to find user with id: %s", id))
	default:
		text(c, http.StatusBadRequest, fmt.Sprintf("Failed to update user with id: %s", id))
	}
}

func (h *userHandler) delete(c *gin.Context) {
	id := c.Param("id")
	out, err := h.svc.Delete(c.Request.Context(), id)
	if err != nil {
		logger.Errorf("delete user %s: %v", id, err)
		text(c, http.StatusBadRequest, err.Error())
		return
	}
	switch out {
	case users.DeleteDeleted:
		text(c, http.StatusAccepted, fmt.Sprintf("Deleted user with id: %s", id))
	case users.DeleteNotFound:
		text(c, http.StatusNotFound, fmt.Sprintf("Failed to find user with id: %s", id))
	default:
		text(c, http.StatusBadRequest, fmt.Sprintf("Failed to remove user with id: %s", id))
	}
}

func text(c *gin.Context, status int, msg string) {
	c.String(status, "%s", msg)
}
