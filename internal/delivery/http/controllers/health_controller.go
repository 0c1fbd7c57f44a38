package controllers

import (
	"net/http"
	"time"

	"eventmanager/internal/delivery/http/helpers"
)

// HealthStatus is the payload of GET /healthcheck.
type HealthStatus struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// HealthCheck godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains status and timestamp"
// @Router /healthcheck [get]
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, HealthStatus{Status: "ok", Timestamp: time.Now().UTC()})
}
