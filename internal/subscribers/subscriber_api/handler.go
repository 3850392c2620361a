package subscriber_api

import (
	"net/http"

	"crg-site/internal/utils"
)

// Subscribe is intentionally disabled: the subscriber table remains for
// notification fan-out, but public signups are turned off.
func Subscribe(w http.ResponseWriter, r *http.Request) {
	utils.WriteError(w, http.StatusNotFound, "Subscription disabled", "")
}
