package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/xavierca1/pzk-backend/internal/infra/http/middleware"
	"github.com/xavierca1/pzk-backend/internal/usecase"
)

type LeadHandler struct {
	CreateLeadUseCase *usecase.CreateLeadUseCase
}

func NewLeadHandler(uc *usecase.CreateLeadUseCase) *LeadHandler {
	return &LeadHandler{CreateLeadUseCase: uc}
}

type CreateLeadResponse struct {
	Success bool                      `json:"success"`
	Message string                    `json:"message,omitempty"`
	Fields  map[string]string         `json:"fields,omitempty"`
	Data    *usecase.CreateLeadOutput `json:"data,omitempty"`
}

func (h *LeadHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, CreateLeadResponse{
			Success: false,
			Message: "invalid JSON",
		})
		return
	}

	output, err := h.CreateLeadUseCase.Execute(r.Context(), input)
	if err != nil {
		var verrs usecase.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make(map[string]string, len(verrs))
			for _, ve := range verrs {
				fields[ve.Field] = ve.Message
			}
			writeJSON(w, http.StatusBadRequest, CreateLeadResponse{
				Success: false,
				Message: "name and phone are required",
				Fields:  fields,
			})
			return
		}

		writeJSON(w, http.StatusInternalServerError, CreateLeadResponse{
			Success: false,
			Message: "failed to save the lead",
		})
		return
	}

	middleware.RecordLeadCaptured()
	if output.BitrixLeadID != nil {
		middleware.RecordCRMForward("success")
	} else {
		middleware.RecordCRMForward("error")
	}

	writeJSON(w, http.StatusOK, CreateLeadResponse{
		Success: true,
		Message: "lead accepted",
		Data:    output,
	})
}
