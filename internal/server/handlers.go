package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"worktrack/internal/services"
	"worktrack/internal/validation"
)

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	principal, _ := principalFrom(r.Context())

	var req services.StartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body", Code: "BAD_REQUEST"})
		return
	}

	result, err := s.windows.StartSession(r.Context(), principal.EmployeeID, principal.OrganizationID, req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleStop(w http.ResponseWriter, r *http.Request) {
	principal, _ := principalFrom(r.Context())
	windowID := r.PathValue("windowId")

	var req services.StopRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body", Code: "BAD_REQUEST"})
			return
		}
	}

	result, err := s.windows.StopSession(r.Context(), windowID, principal.EmployeeID, req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleCurrent(w http.ResponseWriter, r *http.Request) {
	principal, _ := principalFrom(r.Context())

	session, err := s.windows.GetCurrentSession(r.Context(), principal.EmployeeID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

func (s *Server) handleHeartbeat(w http.ResponseWriter, r *http.Request) {
	principal, _ := principalFrom(r.Context())
	windowID := r.PathValue("windowId")

	if err := s.windows.Heartbeat(r.Context(), windowID, principal.EmployeeID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"windowId": windowID, "status": "ok"})
}

func (s *Server) handleScreenshotUpload(w http.ResponseWriter, r *http.Request) {
	principal, _ := principalFrom(r.Context())

	var req services.UploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body", Code: "BAD_REQUEST"})
		return
	}

	screenshot, err := s.screenshots.Upload(r.Context(), principal.EmployeeID, req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, screenshot)
}

func (s *Server) handleCronSweep(w http.ResponseWriter, r *http.Request) {
	if s.cronSecret == "" || bearerToken(r) != s.cronSecret {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid cron secret", Code: "UNAUTHORIZED"})
		return
	}

	result, err := s.sweeper.Sweep(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleAnalyticsWindow(w http.ResponseWriter, r *http.Request) {
	principal, _ := principalFrom(r.Context())

	filter, err := windowFilterFromQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}

	windows, err := s.analytics.SearchWindows(r.Context(), principal.OrganizationID, filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, windows)
}

func (s *Server) handleAnalyticsProjectTime(w http.ResponseWriter, r *http.Request) {
	principal, _ := principalFrom(r.Context())

	filter, err := windowFilterFromQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}

	totals, err := s.analytics.ProjectTime(r.Context(), principal.OrganizationID, filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, totals)
}

func windowFilterFromQuery(r *http.Request) (services.WindowFilter, error) {
	q := r.URL.Query()
	filter := services.WindowFilter{
		EmployeeID: optionalString(q.Get("employeeId")),
		ProjectID:  optionalString(q.Get("projectId")),
		TaskID:     optionalString(q.Get("taskId")),
		ShiftID:    optionalString(q.Get("shiftId")),
		OpenOnly:   q.Get("open") == "true",
	}

	var err error
	if filter.StartTime, err = optionalMillis("start", q.Get("start")); err != nil {
		return filter, err
	}
	if filter.EndTime, err = optionalMillis("end", q.Get("end")); err != nil {
		return filter, err
	}

	return filter, nil
}

func optionalString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func optionalMillis(field, v string) (*int64, error) {
	if v == "" {
		return nil, nil
	}
	millis, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		validationError := validation.NewValidationError()
		validationError.AddInvalidFormatError(field, v, "millisecond unix timestamp")
		return nil, validationError
	}
	return &millis, nil
}
