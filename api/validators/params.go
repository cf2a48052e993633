package validators

import (
	"fmt"
	"net/http"
	"strconv"

	pkgerrors "github.com/gayabeauty/storefront-backend/pkg/errors"
	"github.com/go-chi/chi/v5"
)

// Int64URLParam parses a chi route parameter as a positive int64 identifier.
func Int64URLParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("%s must be a positive integer", name))
	}
	return value, nil
}
