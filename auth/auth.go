package auth

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"nova/db"
	"nova/globals"
	"nova/middleware"
	"nova/models"
	"nova/utils"
)

const tokenTTL = 7 * 24 * time.Hour

func signToken(user models.User) (string, error) {
	claims := middleware.Claims{
		Email:   user.Email,
		UserID:  user.UserID,
		IsAdmin: user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.UserID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
}

func sessionPayload(user models.User) (utils.M, error) {
	token, err := signToken(user)
	if err != nil {
		return nil, err
	}
	return utils.M{"token": token, "user": user}, nil
}

// Register creates a user account. A matching admin key grants the admin
// role; a taken email is a conflict.
func Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var body struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		AdminKey string `json:"adminKey"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithAPIError(w, models.NewValidationError("body", "malformed JSON"))
		return
	}
	if body.Name == "" || body.Email == "" || body.Password == "" {
		utils.RespondWithAPIError(w, models.NewValidationError("register", "name, email and password are required"))
		return
	}

	email := strings.ToLower(strings.TrimSpace(body.Email))
	count, err := db.UsersCollection.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to check email")
		return
	}
	if count > 0 {
		utils.RespondWithAPIError(w, models.NewConflictError("email already registered"))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	user := models.User{
		UserID:       utils.GetUUID(),
		Name:         body.Name,
		Email:        email,
		PasswordHash: string(hash),
		IsAdmin:      body.AdminKey != "" && body.AdminKey == globals.AdminKey,
		CreatedAt:    time.Now(),
	}
	if _, err := db.UsersCollection.InsertOne(ctx, user); err != nil {
		log.Println("Register insert error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	payload, err := sessionPayload(user)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, payload)
}

func Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Email == "" || body.Password == "" {
		utils.RespondWithAPIError(w, models.NewValidationError("login", "email and password are required"))
		return
	}

	email := strings.ToLower(strings.TrimSpace(body.Email))
	var user models.User
	err := db.UsersCollection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithAPIError(w, models.NewUnauthorizedError("invalid credentials"))
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load user")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)) != nil {
		utils.RespondWithAPIError(w, models.NewUnauthorizedError("invalid credentials"))
		return
	}

	payload, err := sessionPayload(user)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, payload)
}

func Me(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user, err := currentUser(ctx, r)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"user": user})
}

// UpdateMe changes name/email and optionally the password. Email moves are
// conflict-checked; password changes require the current password.
func UpdateMe(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user, err := currentUser(ctx, r)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}

	var body struct {
		Name        string `json:"name"`
		Email       string `json:"email"`
		Password    string `json:"password"`
		NewPassword string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithAPIError(w, models.NewValidationError("body", "malformed JSON"))
		return
	}

	set := bson.M{}
	if body.Email != "" {
		email := strings.ToLower(strings.TrimSpace(body.Email))
		if email != user.Email {
			count, err := db.UsersCollection.CountDocuments(ctx, bson.M{"email": email})
			if err != nil {
				utils.RespondWithError(w, http.StatusInternalServerError, "Failed to check email")
				return
			}
			if count > 0 {
				utils.RespondWithAPIError(w, models.NewConflictError("email already in use"))
				return
			}
		}
		set["email"] = email
		user.Email = email
	}
	if body.Name != "" {
		set["name"] = body.Name
		user.Name = body.Name
	}
	if body.NewPassword != "" {
		if body.Password == "" {
			utils.RespondWithAPIError(w, models.NewValidationError("password", "current password required"))
			return
		}
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)) != nil {
			utils.RespondWithAPIError(w, models.NewUnauthorizedError("invalid current password"))
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(body.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to hash password")
			return
		}
		set["password_hash"] = string(hash)
	}

	if len(set) > 0 {
		if _, err := db.UsersCollection.UpdateOne(ctx, bson.M{"userid": user.UserID}, bson.M{"$set": set}); err != nil {
			log.Println("UpdateMe update error:", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update profile")
			return
		}
	}

	payload, err := sessionPayload(user)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, payload)
}

func currentUser(ctx context.Context, r *http.Request) (models.User, error) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		return models.User{}, models.NewUnauthorizedError("login required")
	}
	var user models.User
	err := db.UsersCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return models.User{}, models.NewNotFoundError("user")
	}
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}
