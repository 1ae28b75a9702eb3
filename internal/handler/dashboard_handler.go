package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/fakhrymubarak/weather-dashboard/internal/config"
	"github.com/fakhrymubarak/weather-dashboard/internal/geolocation"
	"github.com/fakhrymubarak/weather-dashboard/internal/model"
	"github.com/fakhrymubarak/weather-dashboard/internal/registry"
	"github.com/fakhrymubarak/weather-dashboard/internal/render"
	"github.com/fakhrymubarak/weather-dashboard/internal/service"
)

type DashboardHandler struct {
	Dashboard service.DashboardInterface
	logger    *zap.SugaredLogger
}

func NewDashboardHandler(d service.DashboardInterface, logger ...*zap.SugaredLogger) *DashboardHandler {
	l := config.GetLogger()
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &DashboardHandler{Dashboard: d, logger: l}
}

// Register mounts every dashboard route on mux.
func (h *DashboardHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.HandleViewHTML)
	mux.HandleFunc("GET /health", h.HandleHealth)
	mux.HandleFunc("GET /api/view", h.HandleView)
	mux.HandleFunc("GET /api/view.html", h.HandleViewHTML)
	mux.HandleFunc("GET /api/events", h.HandleEvents)
	mux.HandleFunc("GET /api/suggestions", h.HandleSuggestions)
	mux.HandleFunc("GET /api/cities", h.HandleListCities)
	mux.HandleFunc("POST /api/refresh", h.HandleRefresh)
	mux.HandleFunc("POST /api/cities", h.HandleAddCity)
	mux.HandleFunc("DELETE /api/cities/{index}", h.HandleRemoveCity)
	mux.HandleFunc("POST /api/cities/{index}/select", h.HandleSelectCity)
	mux.HandleFunc("POST /api/modal/open", h.HandleModalOpen)
	mux.HandleFunc("POST /api/modal/input", h.HandleModalInput)
	mux.HandleFunc("POST /api/modal/suggestion", h.HandleModalSuggestion)
	mux.HandleFunc("POST /api/modal/confirm", h.HandleModalConfirm)
	mux.HandleFunc("POST /api/modal/cancel", h.HandleModalCancel)
	mux.HandleFunc("POST /api/modal/blur", h.HandleModalBlur)
	mux.HandleFunc("POST /api/geolocation", h.HandleGeolocation)
	mux.HandleFunc("POST /api/notification/dismiss", h.HandleDismissNotification)
}

func (h *DashboardHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Errorw("could not encode json", "error", err)
	}
}

func (h *DashboardHandler) writeError(w http.ResponseWriter, statusCode int, errMsg string) {
	h.writeJSONResponse(w, statusCode, model.Response{
		Error:   &errMsg,
		Message: "Error",
	})
}

func (h *DashboardHandler) writeView(w http.ResponseWriter, statusCode int, message string) {
	h.writeJSONResponse(w, statusCode, model.Response{
		Data:    h.Dashboard.View(),
		Message: message,
	})
}

func changed(ok bool) string {
	if ok {
		return "Success"
	}
	return "Unchanged"
}

func (h *DashboardHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSONResponse(w, http.StatusOK, model.Response{
		Data:    map[string]string{"status": "ok"},
		Message: "Success",
	})
}

func (h *DashboardHandler) HandleView(w http.ResponseWriter, r *http.Request) {
	h.writeView(w, http.StatusOK, "Success")
}

func (h *DashboardHandler) HandleViewHTML(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "<!DOCTYPE html>")
	if err := render.HTML(w, h.Dashboard.View().Page()); err != nil {
		h.logger.Errorw("could not render html", "error", err)
	}
}

// HandleEvents streams a "view" event now and after every state change.
func (h *DashboardHandler) HandleEvents(w http.ResponseWriter, r *http.Request) {
	flusher := prepareSSE(w)
	if flusher == nil {
		h.writeError(w, http.StatusInternalServerError, "Streaming unsupported")
		return
	}
	changes, cancel := h.Dashboard.Subscribe()
	defer cancel()

	w.WriteHeader(http.StatusOK)
	if err := writeEvent(w, flusher, "view", h.Dashboard.View()); err != nil {
		return
	}
	for {
		select {
		case <-r.Context().Done():
			return
		case _, ok := <-changes:
			if !ok {
				return
			}
			if err := writeEvent(w, flusher, "view", h.Dashboard.View()); err != nil {
				h.logger.Debugw("Event stream closed", "error", err)
				return
			}
		}
	}
}

func (h *DashboardHandler) HandleSuggestions(w http.ResponseWriter, r *http.Request) {
	suggestions := h.Dashboard.Suggestions(r.URL.Query().Get("q"))
	if suggestions == nil {
		suggestions = []string{}
	}
	h.writeJSONResponse(w, http.StatusOK, model.Response{
		Data:    suggestions,
		Message: "Success",
	})
}

func (h *DashboardHandler) HandleListCities(w http.ResponseWriter, r *http.Request) {
	entries, active := h.Dashboard.Cities()
	if entries == nil {
		entries = []model.LocationEntry{}
	}
	h.writeJSONResponse(w, http.StatusOK, model.Response{
		Data:    map[string]interface{}{"cities": entries, "activeIndex": active},
		Message: "Success",
	})
}

func (h *DashboardHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	h.Dashboard.Refresh()
	h.writeView(w, http.StatusAccepted, "Success")
}

func (h *DashboardHandler) HandleAddCity(w http.ResponseWriter, r *http.Request) {
	var req addCityRequest
	if err := decodeAndValidate(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Dashboard.AddCity(req.Name); err != nil {
		if msg := service.ValidationMessage(err); msg != "" {
			h.writeError(w, http.StatusUnprocessableEntity, msg)
			return
		}
		if errors.Is(err, registry.ErrEmptyName) {
			h.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Errorw("Failed to add city", "name", req.Name, "error", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to add city")
		return
	}
	h.writeView(w, http.StatusCreated, "Success")
}

func (h *DashboardHandler) pathIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid city index")
		return 0, false
	}
	return index, true
}

func (h *DashboardHandler) HandleRemoveCity(w http.ResponseWriter, r *http.Request) {
	index, ok := h.pathIndex(w, r)
	if !ok {
		return
	}
	h.writeView(w, http.StatusOK, changed(h.Dashboard.RemoveCity(index)))
}

func (h *DashboardHandler) HandleSelectCity(w http.ResponseWriter, r *http.Request) {
	index, ok := h.pathIndex(w, r)
	if !ok {
		return
	}
	h.writeView(w, http.StatusOK, changed(h.Dashboard.SelectCity(index)))
}

func (h *DashboardHandler) HandleModalOpen(w http.ResponseWriter, r *http.Request) {
	h.Dashboard.OpenModal()
	h.writeView(w, http.StatusOK, "Success")
}

func (h *DashboardHandler) HandleModalInput(w http.ResponseWriter, r *http.Request) {
	var req modalInputRequest
	if err := decodeAndValidate(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.Dashboard.InputChanged(req.Text)
	h.writeView(w, http.StatusOK, "Success")
}

func (h *DashboardHandler) HandleModalSuggestion(w http.ResponseWriter, r *http.Request) {
	var req suggestionRequest
	if err := decodeAndValidate(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.Dashboard.PickSuggestion(req.Name)
	h.writeView(w, http.StatusOK, "Success")
}

// HandleModalConfirm reports validation failures with 422; the dialog shows them too.
func (h *DashboardHandler) HandleModalConfirm(w http.ResponseWriter, r *http.Request) {
	h.Dashboard.ConfirmModal()
	view := h.Dashboard.View()
	if view.ModalState.Open && view.ModalState.Error != "" {
		errMsg := view.ModalState.Error
		h.writeJSONResponse(w, http.StatusUnprocessableEntity, model.Response{
			Data:    view,
			Error:   &errMsg,
			Message: "Error",
		})
		return
	}
	h.writeJSONResponse(w, http.StatusOK, model.Response{Data: view, Message: "Success"})
}

func (h *DashboardHandler) HandleModalCancel(w http.ResponseWriter, r *http.Request) {
	h.Dashboard.CancelModal()
	h.writeView(w, http.StatusOK, "Success")
}

func (h *DashboardHandler) HandleModalBlur(w http.ResponseWriter, r *http.Request) {
	h.Dashboard.BlurSuggestions()
	h.writeView(w, http.StatusOK, "Success")
}

func (h *DashboardHandler) HandleGeolocation(w http.ResponseWriter, r *http.Request) {
	var req positionRequest
	if err := decodeAndValidate(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	switch {
	case req.Error == "unsupported":
		h.Dashboard.ApplyPositionError(geolocation.ErrUnsupported)
	case req.Error != "":
		h.Dashboard.ApplyPositionError(fmt.Errorf("%w: %s", geolocation.ErrUnavailable, req.Error))
	case req.Lat == nil || req.Lon == nil:
		h.writeError(w, http.StatusBadRequest, "Either lat and lon or error is required")
		return
	default:
		h.Dashboard.ApplyPosition(model.Coordinates{Lat: *req.Lat, Lon: *req.Lon})
	}
	h.writeView(w, http.StatusOK, "Success")
}

func (h *DashboardHandler) HandleDismissNotification(w http.ResponseWriter, r *http.Request) {
	h.Dashboard.DismissNotification()
	h.writeView(w, http.StatusOK, "Success")
}
