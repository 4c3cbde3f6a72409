package handlers

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/yukikurage/task-tracker-api/internal/auth"
	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
	"github.com/yukikurage/task-tracker-api/internal/middleware"
	"github.com/yukikurage/task-tracker-api/internal/utils"
)

// FieldError describes one failed binding rule.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

// bindJSON binds the request body and answers 400 with per-field details on failure.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			details := make([]FieldError, 0, len(verrs))
			for _, fe := range verrs {
				details = append(details, FieldError{
					Field: fe.Field(),
					Rule:  fe.Tag(),
					Param: fe.Param(),
				})
			}
			apierrors.BadRequestWithDetails(c, "Validation failed", details)
			return false
		}
		apierrors.BadRequest(c, "Invalid request body")
		return false
	}
	return true
}

var registerFieldNames sync.Once

// useJSONFieldNames makes validator report fields by their json tag, so
// binding errors name the keys clients actually send.
func useJSONFieldNames() {
	registerFieldNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

// actingUser returns the identity resolved by middleware.RequireAuth.
func actingUser(c *gin.Context) (auth.ActingUser, bool) {
	actor, ok := middleware.GetActingUser(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return auth.ActingUser{}, false
	}
	return actor, true
}

// pageParams reads page and size from the query string.
func pageParams(c *gin.Context) (utils.PageRequest, bool) {
	req, err := utils.GetPageRequest(c)
	if err != nil {
		apierrors.Respond(c, err)
		return utils.PageRequest{}, false
	}
	return req, true
}
