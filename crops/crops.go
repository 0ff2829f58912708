package crops

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"krishi/db"
	"krishi/models"
	"krishi/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

func loadUser(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func saveCrops(ctx context.Context, userID string, crops []models.Crop) error {
	_, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{"$set": bson.M{"crops": crops, "updated_at": time.Now()}},
	)
	return err
}

// AddCrop appends a crop to the caller's list. Names are unique per user.
func AddCrop(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var body struct {
		Name     string `json:"name"`
		Variety  string `json:"variety"`
		Quantity int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	body.Name = strings.TrimSpace(body.Name)
	if body.Name == "" {
		utils.SendError(w, http.StatusBadRequest, "Crop name is required")
		return
	}
	if body.Quantity < 0 {
		utils.SendError(w, http.StatusBadRequest, "Quantity cannot be negative")
		return
	}

	userID := utils.GetUserIDFromRequest(r)
	user, err := loadUser(ctx, userID)
	if err != nil {
		utils.SendError(w, http.StatusNotFound, "User not found")
		return
	}

	if findCrop(user.Crops, body.Name) != nil {
		utils.SendError(w, http.StatusBadRequest, "Crop already exists")
		return
	}

	user.Crops = append(user.Crops, models.Crop{
		CropID:   utils.GetUUID(),
		Name:     body.Name,
		Variety:  body.Variety,
		Quantity: body.Quantity,
	})
	if err := saveCrops(ctx, userID, user.Crops); err != nil {
		utils.SendError(w, http.StatusInternalServerError, "Failed to save crop")
		return
	}
	utils.SendResponse(w, http.StatusCreated, user.Crops, "Crop added successfully")
}

// GetCrops returns the caller's crop list.
func GetCrops(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	user, err := loadUser(ctx, utils.GetUserIDFromRequest(r))
	if err != nil {
		utils.SendError(w, http.StatusNotFound, "User not found")
		return
	}
	if len(user.Crops) == 0 {
		utils.SendResponse(w, http.StatusOK, []models.Crop{}, "No crops listed")
		return
	}
	utils.SendResponse(w, http.StatusOK, user.Crops, "Crops fetched successfully")
}

// UpdateCrop patches name, variety, and quantity on a crop by id. Zero values
// in the body leave the stored field untouched.
func UpdateCrop(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cropID := ps.ByName("cropId")

	var body struct {
		Name     string `json:"name"`
		Variety  string `json:"variety"`
		Quantity int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	userID := utils.GetUserIDFromRequest(r)
	user, err := loadUser(ctx, userID)
	if err != nil {
		utils.SendError(w, http.StatusNotFound, "User not found")
		return
	}

	crop := findCropByID(user.Crops, cropID)
	if crop == nil {
		utils.SendError(w, http.StatusNotFound, "Crop not found")
		return
	}
	if name := strings.TrimSpace(body.Name); name != "" {
		crop.Name = name
	}
	if body.Variety != "" {
		crop.Variety = body.Variety
	}
	if body.Quantity > 0 {
		crop.Quantity = body.Quantity
	}

	if err := saveCrops(ctx, userID, user.Crops); err != nil {
		utils.SendError(w, http.StatusInternalServerError, "Failed to update crop")
		return
	}
	utils.SendResponse(w, http.StatusOK, user.Crops, "Crop updated successfully")
}

// DeleteCrop removes a crop by id from the caller's list.
func DeleteCrop(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cropID := ps.ByName("cropId")

	userID := utils.GetUserIDFromRequest(r)
	user, err := loadUser(ctx, userID)
	if err != nil {
		utils.SendError(w, http.StatusNotFound, "User not found")
		return
	}

	remaining, removed := removeCrop(user.Crops, cropID)
	if !removed {
		utils.SendError(w, http.StatusNotFound, "Crop not found")
		return
	}
	if err := saveCrops(ctx, userID, remaining); err != nil {
		utils.SendError(w, http.StatusInternalServerError, "Failed to delete crop")
		return
	}
	utils.SendResponse(w, http.StatusOK, remaining, "Crop deleted successfully")
}

func findCrop(crops []models.Crop, name string) *models.Crop {
	for i := range crops {
		if strings.EqualFold(crops[i].Name, name) {
			return &crops[i]
		}
	}
	return nil
}

func findCropByID(crops []models.Crop, cropID string) *models.Crop {
	for i := range crops {
		if crops[i].CropID == cropID {
			return &crops[i]
		}
	}
	return nil
}

func removeCrop(crops []models.Crop, cropID string) ([]models.Crop, bool) {
	for i := range crops {
		if crops[i].CropID == cropID {
			return append(crops[:i:i], crops[i+1:]...), true
		}
	}
	return crops, false
}
