package advisory

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"krishi/utils"

	"github.com/julienschmidt/httprouter"
)

// Service exposes the advisory endpoints over one shared model client.
type Service struct {
	model *Client
}

func NewService(model *Client) *Service {
	return &Service{model: model}
}

func (s *Service) answer(ctx context.Context, w http.ResponseWriter, prompt, language string) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	text, err := s.model.Generate(ctx, prompt)
	if err != nil {
		log.Printf("advisory: model call failed: %v", err)
		text = fallbackFor(language)
	}
	utils.SendResponse(w, http.StatusOK, text, "Advisory generated")
}

// LocationInsights returns a full agricultural report for a bare location.
func (s *Service) LocationInsights(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body struct {
		Location string `json:"location"`
		Language string `json:"language"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if body.Location == "" {
		utils.SendError(w, http.StatusBadRequest, "Location is required")
		return
	}
	if body.Language == "" {
		body.Language = "en"
	}
	s.answer(r.Context(), w, locationInsightsPrompt(body.Location, body.Language), body.Language)
}

// CropForecast returns a 7-day crop-specific weather forecast.
func (s *Service) CropForecast(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body struct {
		Crop     string `json:"crop"`
		Location string `json:"location"`
		Language string `json:"language"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if body.Crop == "" || body.Location == "" {
		utils.SendError(w, http.StatusBadRequest, "Crop and location are required")
		return
	}
	if body.Language == "" {
		body.Language = "en"
	}
	s.answer(r.Context(), w, cropForecastPrompt(body.Crop, body.Location, body.Language), body.Language)
}

// MarketAnalysis returns price/demand analysis for a crop.
func (s *Service) MarketAnalysis(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body struct {
		Crop     string `json:"crop"`
		Language string `json:"language"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if body.Crop == "" {
		utils.SendError(w, http.StatusBadRequest, "Crop is required")
		return
	}
	if body.Language == "" {
		body.Language = "en"
	}
	s.answer(r.Context(), w, marketAnalysisPrompt(body.Crop, body.Language), body.Language)
}

// PestAdvisory returns a pest/disease advisory for a crop and region.
func (s *Service) PestAdvisory(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body struct {
		Crop     string `json:"crop"`
		Region   string `json:"region"`
		Language string `json:"language"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if body.Crop == "" || body.Region == "" {
		utils.SendError(w, http.StatusBadRequest, "Crop and region are required")
		return
	}
	if body.Language == "" {
		body.Language = "en"
	}
	s.answer(r.Context(), w, pestAdvisoryPrompt(body.Crop, body.Region, body.Language), body.Language)
}
