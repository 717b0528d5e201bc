package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"p9e.in/agentreport/models"
)

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type surveyorPayload struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Phone string    `json:"phone"`
}

type loginResp struct {
	Token    string          `json:"token"`
	Surveyor surveyorPayload `json:"surveyor"`
}

func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeDetail(w, http.StatusBadRequest, "email and password are required")
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "error hashing password")
		return
	}
	sv := models.Surveyor{
		Name:         req.Name,
		Email:        strings.ToLower(req.Email),
		Phone:        req.Phone,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := s.DB.WithContext(r.Context()).Create(&sv).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "duplicate key") {
			writeDetail(w, http.StatusConflict, "surveyor already registered")
			return
		}
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, surveyorPayload{ID: sv.ID, Name: sv.Name, Email: sv.Email, Phone: sv.Phone})
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	var sv models.Surveyor
	err := s.DB.WithContext(r.Context()).
		Where("email = ? AND is_active = ?", strings.ToLower(req.Email), true).
		First(&sv).Error
	if err != nil {
		writeDetail(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(sv.PasswordHash), []byte(req.Password)); err != nil {
		writeDetail(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	token, err := s.JWT.GenerateToken(sv.ID.String(), sv.Name, sv.Email)
	if err != nil {
		s.logger().Error("couldn't create token", zap.Error(err))
		writeDetail(w, http.StatusInternalServerError, "couldn't create token")
		return
	}
	writeJSON(w, http.StatusOK, loginResp{
		Token:    token,
		Surveyor: surveyorPayload{ID: sv.ID, Name: sv.Name, Email: sv.Email, Phone: sv.Phone},
	})
}
