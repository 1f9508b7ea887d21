package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"consultorio/services/patient"
	"consultorio/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PatientHandler serves the patient registry endpoints.
type PatientHandler struct {
	Service patient.PatientService
}

func NewPatientHandler(svc patient.PatientService) *PatientHandler {
	return &PatientHandler{Service: svc}
}

// CreatePatientHandler handles POST /api/patients.
func (h *PatientHandler) CreatePatientHandler(c *gin.Context) {
	profID, ok := professionalID(c)
	if !ok {
		return
	}

	var input patient.ContactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	p, err := h.Service.Create(c.Request.Context(), profID, input)
	if err != nil {
		if errors.Is(err, patient.ErrDuplicateCedula) {
			c.JSON(http.StatusConflict, gin.H{"error": "A patient with that cedula already exists"})
			return
		}
		utils.GetLogger().Error("Failed to create patient", zap.String("professionalId", profID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create patient"})
		return
	}

	c.JSON(http.StatusCreated, p)
}

// GetPatientHandler handles GET /api/patients/:id.
func (h *PatientHandler) GetPatientHandler(c *gin.Context) {
	profID, ok := professionalID(c)
	if !ok {
		return
	}

	p, err := h.Service.Get(c.Request.Context(), profID, c.Param("id"))
	if err != nil {
		if errors.Is(err, patient.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
			return
		}
		utils.GetLogger().Error("Failed to load patient", zap.String("id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load patient"})
		return
	}

	c.JSON(http.StatusOK, p)
}

// ListPatientsHandler handles GET /api/patients?query=&page=.
func (h *PatientHandler) ListPatientsHandler(c *gin.Context) {
	profID, ok := professionalID(c)
	if !ok {
		return
	}

	page := 1
	if pageStr := c.Query("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}

	result, err := h.Service.List(c.Request.Context(), profID, c.Query("query"), page)
	if err != nil {
		utils.GetLogger().Error("Failed to list patients", zap.String("professionalId", profID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list patients"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// UpdatePatientHandler handles PUT /api/patients/:id.
func (h *PatientHandler) UpdatePatientHandler(c *gin.Context) {
	profID, ok := professionalID(c)
	if !ok {
		return
	}

	var input patient.ContactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := h.Service.Update(c.Request.Context(), profID, c.Param("id"), input); err != nil {
		switch {
		case errors.Is(err, patient.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
		case errors.Is(err, patient.ErrDuplicateCedula):
			c.JSON(http.StatusConflict, gin.H{"error": "A patient with that cedula already exists"})
		default:
			utils.GetLogger().Error("Failed to update patient", zap.String("id", c.Param("id")), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update patient"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Patient updated"})
}

// DeletePatientHandler handles DELETE /api/patients/:id.
func (h *PatientHandler) DeletePatientHandler(c *gin.Context) {
	profID, ok := professionalID(c)
	if !ok {
		return
	}

	if err := h.Service.Delete(c.Request.Context(), profID, c.Param("id")); err != nil {
		if errors.Is(err, patient.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
			return
		}
		utils.GetLogger().Error("Failed to delete patient", zap.String("id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete patient"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Patient deleted"})
}

// AddClinicalNoteHandler handles POST /api/patients/:id/notes.
func (h *PatientHandler) AddClinicalNoteHandler(c *gin.Context) {
	profID, ok := professionalID(c)
	if !ok {
		return
	}

	var input patient.NoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	record, err := h.Service.AddClinicalNote(c.Request.Context(), profID, c.Param("id"), input)
	if err != nil {
		if errors.Is(err, patient.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
			return
		}
		utils.GetLogger().Error("Failed to add clinical note", zap.String("id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add clinical note"})
		return
	}

	c.JSON(http.StatusCreated, record)
}

// SaveFileReferenceHandler handles POST /api/patients/:id/files.
func (h *PatientHandler) SaveFileReferenceHandler(c *gin.Context) {
	profID, ok := professionalID(c)
	if !ok {
		return
	}

	var input patient.FileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := h.Service.SaveFileReference(c.Request.Context(), profID, c.Param("id"), input); err != nil {
		if errors.Is(err, patient.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
			return
		}
		utils.GetLogger().Error("Failed to save file reference", zap.String("id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file reference"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "File saved"})
}
