package utils

import (
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
)

// ExtractIDFromParams returns the named route parameter with any ".json"
// suffix stripped, so clients may address resources as "<id>.json".
func ExtractIDFromParams(r *http.Request, paramName string) string {
	raw := httprouter.ParamsFromContext(r.Context()).ByName(paramName)
	id, _, _ := strings.Cut(raw, ".json")
	return id
}
