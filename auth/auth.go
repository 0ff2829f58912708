package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"krishi/db"
	"krishi/models"
	"krishi/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

// Register creates a farmer account keyed by mobile number.
func Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var body struct {
		FullName     string `json:"fullName"`
		Email        string `json:"email"`
		MobileNumber string `json:"mobileNumber"`
		Password     string `json:"password"`
		Role         string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	body.FullName = strings.TrimSpace(body.FullName)
	body.MobileNumber = strings.TrimSpace(body.MobileNumber)
	if body.FullName == "" || body.MobileNumber == "" || body.Password == "" {
		utils.SendError(w, http.StatusBadRequest, "All fields are required")
		return
	}
	switch body.Role {
	case "":
		body.Role = models.RoleFarmer
	case models.RoleFarmer, models.RoleStore:
	default:
		utils.SendError(w, http.StatusBadRequest, "Invalid role")
		return
	}
	if body.Role == models.RoleStore && body.Email == "" {
		utils.SendError(w, http.StatusBadRequest, "Email is required for store accounts")
		return
	}
	if len(body.Password) < 6 {
		utils.SendError(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	err := db.UserCollection.FindOne(ctx, bson.M{"mobileNumber": body.MobileNumber}).Err()
	if err == nil {
		utils.SendError(w, http.StatusConflict, "User exists with this mobile number")
		return
	}
	if err != mongo.ErrNoDocuments {
		utils.SendError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("auth: failed to hash password: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	now := time.Now()
	user := models.User{
		UserID:       "u" + utils.GenerateRandomString(10),
		FullName:     body.FullName,
		Email:        body.Email,
		MobileNumber: body.MobileNumber,
		Password:     string(hashed),
		Role:         body.Role,
		Cart:         models.Cart{Items: []models.CartItem{}, UpdatedAt: now},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := db.UserCollection.InsertOne(ctx, user); err != nil {
		utils.SendError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	issueSession(ctx, w, &user, http.StatusCreated, "User registered successfully")
}

// Login authenticates by mobile number and password.
func Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var body struct {
		MobileNumber string `json:"mobileNumber"`
		Password     string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	var user models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"mobileNumber": body.MobileNumber}).Decode(&user)
	if err != nil {
		utils.SendError(w, http.StatusUnauthorized, "Invalid mobile number or password")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.Password)); err != nil {
		utils.SendError(w, http.StatusUnauthorized, "Invalid mobile number or password")
		return
	}

	issueSession(ctx, w, &user, http.StatusOK, "User logged in successfully")
}

// issueSession mints the access/refresh pair, appends a session slot to the
// user document, and sets both httponly cookies. Expired slots are pruned on
// the way in so the list never grows without bound.
func issueSession(ctx context.Context, w http.ResponseWriter, user *models.User, status int, message string) {
	accessToken, err := generateAccessToken(user)
	if err != nil {
		utils.SendError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}
	refreshToken, err := generateRefreshToken()
	if err != nil {
		utils.SendError(w, http.StatusInternalServerError, "Failed to generate refresh token")
		return
	}

	now := time.Now()
	session := models.Session{
		TokenID:   "sess" + utils.GenerateRandomString(8),
		TokenHash: hashToken(refreshToken),
		IssuedAt:  now,
		ExpiresAt: now.Add(refreshTokenTTL),
	}

	_, err = db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": user.UserID},
		bson.M{"$pull": bson.M{"sessions": bson.M{"expiresAt": bson.M{"$lt": now}}}},
	)
	if err != nil {
		utils.SendError(w, http.StatusInternalServerError, "Failed to store refresh token")
		return
	}
	_, err = db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": user.UserID},
		bson.M{
			"$push": bson.M{"sessions": session},
			"$set":  bson.M{"updated_at": now},
		},
	)
	if err != nil {
		utils.SendError(w, http.StatusInternalServerError, "Failed to store refresh token")
		return
	}

	setAuthCookies(w, accessToken, refreshToken)
	utils.SendResponse(w, status, utils.M{
		"user":         user,
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	}, message)
}

// Logout removes only the session slot for the presented refresh token, so
// the same account stays signed in on other devices.
func Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)

	if cookie, err := r.Cookie("refreshToken"); err == nil && cookie.Value != "" {
		_, err := db.UserCollection.UpdateOne(ctx,
			bson.M{"userid": userID},
			bson.M{"$pull": bson.M{"sessions": bson.M{"tokenHash": hashToken(cookie.Value)}}},
		)
		if err != nil {
			utils.SendError(w, http.StatusInternalServerError, "Failed to log out")
			return
		}
	}

	clearAuthCookies(w)
	utils.SendResponse(w, http.StatusOK, utils.M{}, "User logged out successfully")
}

// LogoutAll revokes every session of the account.
func LogoutAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	_, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{"$set": bson.M{"sessions": []models.Session{}}},
	)
	if err != nil {
		utils.SendError(w, http.StatusInternalServerError, "Failed to log out")
		return
	}

	clearAuthCookies(w)
	utils.SendResponse(w, http.StatusOK, utils.M{}, "All sessions revoked")
}

// RefreshToken rotates the refresh token. The incoming token comes from the
// httponly cookie or the request body and must match the stored hash.
func RefreshToken(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	incoming := ""
	if cookie, err := r.Cookie("refreshToken"); err == nil {
		incoming = cookie.Value
	}
	if incoming == "" {
		var body struct {
			RefreshToken string `json:"refreshToken"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
			incoming = body.RefreshToken
		}
	}
	if incoming == "" {
		utils.SendError(w, http.StatusUnauthorized, "Unauthorized request")
		return
	}

	hash := hashToken(incoming)
	var user models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"sessions.tokenHash": hash}).Decode(&user)
	if err != nil {
		utils.SendError(w, http.StatusUnauthorized, "Invalid refresh token")
		return
	}

	session := findSession(user.Sessions, hash)
	if session == nil {
		utils.SendError(w, http.StatusUnauthorized, "Invalid refresh token")
		return
	}

	// Rotation: the presented token's slot is consumed whether or not it is
	// still valid.
	_, err = db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": user.UserID},
		bson.M{"$pull": bson.M{"sessions": bson.M{"tokenHash": hash}}},
	)
	if err != nil {
		utils.SendError(w, http.StatusInternalServerError, "Failed to rotate refresh token")
		return
	}

	if time.Now().After(session.ExpiresAt) {
		utils.SendError(w, http.StatusUnauthorized, "Refresh token is expired")
		return
	}

	issueSession(ctx, w, &user, http.StatusOK, "Access token refreshed successfully")
}

// ChangePassword verifies the old password before setting the new one.
func ChangePassword(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var body struct {
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if len(body.NewPassword) < 6 {
		utils.SendError(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	userID := utils.GetUserIDFromRequest(r)
	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		utils.SendError(w, http.StatusNotFound, "User not found")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.OldPassword)); err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid old password")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(body.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		utils.SendError(w, http.StatusInternalServerError, "Failed to change password")
		return
	}
	_, err = db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{"$set": bson.M{"password": string(hashed), "updated_at": time.Now()}},
	)
	if err != nil {
		utils.SendError(w, http.StatusInternalServerError, "Failed to change password")
		return
	}
	utils.SendResponse(w, http.StatusOK, utils.M{}, "Password changed successfully")
}

// GetCurrentUser returns the caller's profile.
func GetCurrentUser(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var user models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"userid": utils.GetUserIDFromRequest(r)}).Decode(&user)
	if err != nil {
		utils.SendError(w, http.StatusNotFound, "User not found")
		return
	}
	utils.SendResponse(w, http.StatusOK, user, "Current user fetched successfully")
}

// UpdateAccountDetails patches profile fields including the farm block.
func UpdateAccountDetails(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var body struct {
		Name     *string `json:"name"`
		Email    *string `json:"email"`
		Address  *string `json:"address"`
		FarmName *string `json:"farmName"`
		Location *string `json:"location"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	set := bson.M{"updated_at": time.Now()}
	if body.Name != nil {
		set["fullName"] = *body.Name
	}
	if body.Email != nil {
		set["email"] = *body.Email
	}
	if body.Address != nil {
		set["address"] = *body.Address
	}
	if body.FarmName != nil {
		set["farm.farmName"] = *body.FarmName
	}
	if body.Location != nil {
		set["farm.location"] = *body.Location
	}

	userID := utils.GetUserIDFromRequest(r)
	result := db.UserCollection.FindOneAndUpdate(ctx,
		bson.M{"userid": userID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var user models.User
	if err := result.Decode(&user); err != nil {
		utils.SendError(w, http.StatusNotFound, "User not found")
		return
	}
	utils.SendResponse(w, http.StatusOK, user, "Account details updated successfully")
}

// GetAllUsers lists every account. Admin only.
func GetAllUsers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := db.UserCollection.Find(ctx, bson.M{})
	if err != nil {
		utils.SendError(w, http.StatusInternalServerError, "Error fetching users")
		return
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		utils.SendError(w, http.StatusInternalServerError, "Error fetching users")
		return
	}
	if users == nil {
		users = []models.User{}
	}
	utils.SendResponse(w, http.StatusOK, users, fmt.Sprintf("%d users fetched", len(users)))
}
