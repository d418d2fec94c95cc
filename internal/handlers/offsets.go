package handlers

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"carbontrack/internal/database"
	"carbontrack/internal/logger"
	"carbontrack/internal/models"
)

// offsetProjects is the static donation catalog. Costs are ₺ per kg CO2.
var offsetProjects = []models.OffsetProject{
	{
		ID:           "tree_planting",
		Type:         "tree_planting",
		Name:         "Ağaç Dikimi Projesi",
		Icon:         "🌳",
		Description:  "TEMA Vakfı ile orman alanlarının genişletilmesi",
		CostPerKg:    0.15,
		Impact:       "Her 20 kg CO2 için 1 ağaç dikilir",
		Organization: "TEMA Vakfı",
	},
	{
		ID:           "renewable_energy",
		Type:         "renewable_energy",
		Name:         "Yenilenebilir Enerji",
		Icon:         "☀️",
		Description:  "Güneş ve rüzgar enerjisi projelerine destek",
		CostPerKg:    0.20,
		Impact:       "Fosil yakıt kullanımını azaltır",
		Organization: "Greenpeace Türkiye",
	},
	{
		ID:           "carbon_capture",
		Type:         "carbon_capture",
		Name:         "Karbon Yakalama",
		Icon:         "🏭",
		Description:  "İleri teknoloji karbon tutma sistemleri",
		CostPerKg:    0.30,
		Impact:       "Atmosferden doğrudan CO2 çekimi",
		Organization: "ClimateWorks",
	},
	{
		ID:           "conservation",
		Type:         "conservation",
		Name:         "Doğa Koruma",
		Icon:         "🦁",
		Description:  "Biyoçeşitlilik ve habitat koruma",
		CostPerKg:    0.18,
		Impact:       "Ekosistemler ve karbon depoları korunur",
		Organization: "WWF Türkiye",
	},
}

func findOffsetProject(projectType string) *models.OffsetProject {
	for i := range offsetProjects {
		if offsetProjects[i].Type == projectType {
			return &offsetProjects[i]
		}
	}
	return nil
}

func handleOffsetProjects(c *gin.Context) {
	respondOK(c, gin.H{"projects": offsetProjects})
}

type createOffsetRequest struct {
	ProjectType  string  `json:"project_type"`
	OffsetAmount float64 `json:"offset_amount"` // kg CO2
}

// handleCreateOffset records a donation against the user's latest result.
// The donation cost is derived from the catalog, never trusted from the
// request. Once cumulative offsets reach the latest result's total, that
// result is flagged as offset.
func handleCreateOffset(c *gin.Context) {
	var req createOffsetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	project := findOffsetProject(req.ProjectType)
	if project == nil {
		respondError(c, http.StatusBadRequest, "Unknown offset project")
		return
	}
	if req.OffsetAmount <= 0 {
		respondError(c, http.StatusBadRequest, "Offset amount must be positive")
		return
	}

	db := getDB(c)
	user := getUser(c)

	latest, err := database.GetLatestResult(db, user.ID)
	if err != nil {
		logger.Error("Failed to load latest result", "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to process donation")
		return
	}
	if latest == nil {
		respondError(c, http.StatusBadRequest, "Complete a survey before offsetting")
		return
	}

	cost := math.Round(req.OffsetAmount*project.CostPerKg*100) / 100

	offset := &models.Offset{
		UserID:         user.ID,
		ResultID:       latest.ID,
		OffsetAmount:   req.OffsetAmount,
		DonationAmount: cost,
		ProjectType:    project.Type,
		ProjectName:    project.Name,
	}
	if _, err := database.SaveOffset(db, offset); err != nil {
		logger.Error("Failed to save offset", "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to process donation")
		return
	}

	total, err := database.GetTotalOffsetByUser(db, user.ID)
	if err != nil {
		logger.Error("Failed to sum offsets", "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to process donation")
		return
	}

	if !latest.IsOffset && total >= latest.TotalCarbonFootprint {
		if err := database.SetResultOffset(db, latest.ID); err != nil {
			logger.Error("Failed to flag result as offset", "error", err)
		}
	}

	logger.Info("Offset recorded", "userID", user.ID, "amount", req.OffsetAmount)

	respondOK(c, gin.H{"offset": offset, "total_offset": total})
}

func handleListOffsets(c *gin.Context) {
	db := getDB(c)
	user := getUser(c)

	offsets, err := database.GetOffsetsByUser(db, user.ID)
	if err != nil {
		logger.Error("Failed to load offsets", "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to load donations")
		return
	}

	total, err := database.GetTotalOffsetByUser(db, user.ID)
	if err != nil {
		logger.Error("Failed to sum offsets", "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to load donations")
		return
	}

	latest, err := database.GetLatestResult(db, user.ID)
	if err != nil {
		logger.Error("Failed to load latest result", "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to load donations")
		return
	}

	// Remaining footprint goes negative once donations overshoot.
	var remaining float64
	if latest != nil {
		remaining = latest.TotalCarbonFootprint - total
	}

	respondOK(c, gin.H{
		"offsets":             offsets,
		"total_offset":        total,
		"remaining_footprint": remaining,
	})
}
