package endpoint

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/healthplus/clinic-api/middleware"
	"github.com/healthplus/clinic-api/model"
	"github.com/healthplus/clinic-api/notification"
	"github.com/healthplus/clinic-api/util"
)

type createAppointmentRequest struct {
	PatientName     string    `json:"patientName" example:"Jonathan Doe"`
	PatientNumber   string    `json:"patientNumber" example:"0812345678"`
	PatientEmail    string    `json:"patientEmail,omitempty" example:"jon@example.com"`
	PatientGender   string    `json:"patientGender" example:"male"`
	AppointmentTime time.Time `json:"appointmentTime" example:"2026-09-14T15:30:00Z"`
	PreferredMode   string    `json:"preferredMode" example:"video"`
}

type updateStatusRequest struct {
	Status string `json:"status" example:"confirmed"`
}

func isTenDigits(s string) bool {
	if len(s) != 10 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// validateAppointmentRequest checks the booking fields eagerly, in a fixed
// order, and returns the first failure.
func validateAppointmentRequest(req *createAppointmentRequest) error {
	if len(req.PatientName) < 8 {
		return fmt.Errorf("Patient name must be at least 8 characters")
	}
	if !isTenDigits(req.PatientNumber) {
		return fmt.Errorf("Patient phone number must be 10 digits")
	}
	if !model.IsValidGender(req.PatientGender) {
		return fmt.Errorf("Invalid patient gender")
	}
	if !req.AppointmentTime.After(time.Now()) {
		return fmt.Errorf("Appointment time must be in the future")
	}
	if !model.IsValidMode(req.PreferredMode) {
		return fmt.Errorf("Invalid preferred mode")
	}
	return nil
}

// getAppointmentByID loads the appointment named by the :id path parameter,
// answering 404 itself when the id is unparseable or the row is absent and
// 500 on store errors.
func getAppointmentByID(c *gin.Context, db *gorm.DB) (model.Appointment, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		util.CallErrorNotFound(c, util.APIErrorParams{
			Msg: "Appointment not found",
			Err: fmt.Errorf("invalid appointment id"),
		})
		return model.Appointment{}, false
	}

	var appt model.Appointment
	if err := db.First(&appt, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.CallErrorNotFound(c, util.APIErrorParams{Msg: "Appointment not found", Err: err})
			return model.Appointment{}, false
		}
		util.CallServerError(c, util.APIErrorParams{Msg: "Error fetching appointment", Err: err})
		return model.Appointment{}, false
	}
	return appt, true
}

// ListAppointments godoc
// @Summary      List all appointments
// @Description  Get all appointments ordered by creation time, newest first
// @Tags         Appointment
// @Accept       json
// @Produce      json
// @Success      200 {object} util.APIResponse{data=[]model.Appointment} "Appointments retrieved"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /api/appointments [get]
func ListAppointments(c *gin.Context) {
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	appointments := []model.Appointment{}
	if err := db.Order("created_at DESC, id DESC").Find(&appointments).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Error fetching appointments", Err: err})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{Data: appointments})
}

// GetAppointment godoc
// @Summary      Get a single appointment
// @Description  Fetch one appointment by its identifier
// @Tags         Appointment
// @Accept       json
// @Produce      json
// @Param        id path int true "Appointment ID"
// @Success      200 {object} util.APIResponse{data=model.Appointment} "Appointment retrieved"
// @Failure      404 {object} util.APIResponse "Appointment not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /api/appointments/{id} [get]
func GetAppointment(c *gin.Context) {
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	appt, ok := getAppointmentByID(c, db)
	if !ok {
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{Data: appt})
}

// CreateAppointment godoc
// @Summary      Book an appointment
// @Description  Validate and persist a booking; sends a confirmation email when an address is supplied
// @Tags         Appointment
// @Accept       json
// @Produce      json
// @Param        request body createAppointmentRequest true "Booking details"
// @Success      201 {object} util.APIResponse{data=model.Appointment} "Appointment created"
// @Failure      400 {object} util.APIResponse "Validation failure"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /api/appointments [post]
func CreateAppointment(c *gin.Context) {
	var req createAppointmentRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}

	if err := validateAppointmentRequest(&req); err != nil {
		util.CallUserError(c, util.APIErrorParams{Msg: err.Error(), Err: err})
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	appt := model.Appointment{
		PatientName:     req.PatientName,
		PatientNumber:   req.PatientNumber,
		PatientEmail:    req.PatientEmail,
		PatientGender:   req.PatientGender,
		AppointmentTime: req.AppointmentTime,
		PreferredMode:   req.PreferredMode,
		Status:          model.StatusPending,
	}

	if err := db.Create(&appt).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Error creating appointment", Err: err})
		return
	}

	// The booking is already committed; confirmation delivery happens off the
	// request path and a failure is only logged, never surfaced.
	emailSent := req.PatientEmail != ""
	if emailSent {
		if notifier := middleware.GetNotifier(c); notifier != nil {
			conf := notification.Confirmation{
				PatientName:     appt.PatientName,
				PatientEmail:    appt.PatientEmail,
				PatientNumber:   appt.PatientNumber,
				AppointmentTime: appt.AppointmentTime,
				PreferredMode:   appt.PreferredMode,
			}
			go func() {
				if err := notifier.SendAppointmentConfirmation(conf); err != nil {
					log.Printf("failed to send confirmation email for appointment %d: %v", appt.ID, err)
				}
			}()
		}
	}

	util.CallSuccessCreated(c, util.APISuccessParams{
		Msg:       "Appointment created successfully",
		Data:      appt,
		EmailSent: &emailSent,
	})
}

// UpdateAppointmentStatus godoc
// @Summary      Update appointment status
// @Description  Set the status of an appointment; any transition between defined statuses is allowed
// @Tags         Appointment
// @Accept       json
// @Produce      json
// @Param        id path int true "Appointment ID"
// @Param        request body updateStatusRequest true "New status"
// @Success      200 {object} util.APIResponse{data=model.Appointment} "Appointment updated"
// @Failure      400 {object} util.APIResponse "Invalid status"
// @Failure      404 {object} util.APIResponse "Appointment not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /api/appointments/{id} [patch]
func UpdateAppointmentStatus(c *gin.Context) {
	var req updateStatusRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}

	if !model.IsValidStatus(req.Status) {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Invalid status",
			Err: fmt.Errorf("status must be one of pending, confirmed, cancelled, completed"),
		})
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	appt, ok := getAppointmentByID(c, db)
	if !ok {
		return
	}

	appt.Status = req.Status
	if err := db.Save(&appt).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Error updating appointment", Err: err})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Appointment updated successfully",
		Data: appt,
	})
}

// DeleteAppointment godoc
// @Summary      Delete an appointment
// @Description  Permanently remove an appointment
// @Tags         Appointment
// @Accept       json
// @Produce      json
// @Param        id path int true "Appointment ID"
// @Success      200 {object} util.APIResponse "Appointment deleted"
// @Failure      404 {object} util.APIResponse "Appointment not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /api/appointments/{id} [delete]
func DeleteAppointment(c *gin.Context) {
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	appt, ok := getAppointmentByID(c, db)
	if !ok {
		return
	}

	if err := db.Delete(&appt).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Error deleting appointment", Err: err})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Appointment deleted successfully"})
}
