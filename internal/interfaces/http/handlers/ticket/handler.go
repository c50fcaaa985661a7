package ticket

import (
	stderrors "errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/helpdesk-ai/helpdesk/internal/application/ticket/usecases"
	ticketdomain "github.com/helpdesk-ai/helpdesk/internal/domain/ticket"
	"github.com/helpdesk-ai/helpdesk/internal/shared/constants"
	"github.com/helpdesk-ai/helpdesk/internal/shared/errors"
	"github.com/helpdesk-ai/helpdesk/internal/shared/logger"
	"github.com/helpdesk-ai/helpdesk/internal/shared/utils"
)

// multipartOverhead is the room left for the text fields and part headers
// on top of the image itself.
const multipartOverhead = 1 << 20

type TicketHandler struct {
	submitTicketUC      usecases.SubmitTicketExecutor
	submitImageTicketUC usecases.SubmitImageTicketExecutor
	listTicketsUC       usecases.ListTicketsExecutor
	getTicketImageUC    usecases.GetTicketImageExecutor
	maxImageBytes       int64
	logger              logger.Interface
}

func NewTicketHandler(
	submitTicketUC usecases.SubmitTicketExecutor,
	submitImageTicketUC usecases.SubmitImageTicketExecutor,
	listTicketsUC usecases.ListTicketsExecutor,
	getTicketImageUC usecases.GetTicketImageExecutor,
	maxImageBytes int64,
	logger logger.Interface,
) *TicketHandler {
	return &TicketHandler{
		submitTicketUC:      submitTicketUC,
		submitImageTicketUC: submitImageTicketUC,
		listTicketsUC:       listTicketsUC,
		getTicketImageUC:    getTicketImageUC,
		maxImageBytes:       maxImageBytes,
		logger:              logger,
	}
}

// SubmitTicket godoc
// @Summary Submit a text ticket
// @Description Classifies the ticket, drafts a resolution and stores it
// @Tags tickets
// @Accept json
// @Produce json
// @Param request body SubmitTicketRequest true "Ticket"
// @Success 201 {object} utils.APIResponse{data=dto.SubmissionDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 429 {object} utils.APIResponse
// @Failure 500 {object} utils.APIResponse
// @Router /api/tickets/submit [post]
func (h *TicketHandler) SubmitTicket(c *gin.Context) {
	var req SubmitTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for submit ticket", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid request body", err.Error()))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.submitTicketUC.Execute(c.Request.Context(), req.ToCommand())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Ticket submitted successfully")
}

// SubmitImageTicket godoc
// @Summary Submit a ticket with a screenshot
// @Description Extracts text from the image, appends it to the body, then classifies and stores the ticket
// @Tags ocr
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Screenshot"
// @Param subject formData string true "Subject"
// @Param body formData string true "Body"
// @Param admin_solution formData string false "Known solution"
// @Success 201 {object} utils.APIResponse{data=dto.SubmissionDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 413 {object} utils.APIResponse
// @Failure 429 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse
// @Router /api/ocr/submit-image [post]
func (h *TicketHandler) SubmitImageTicket(c *gin.Context) {
	if h.maxImageBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxImageBytes+multipartOverhead)
	}

	var req SubmitImageTicketRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Warnw("invalid form for submit image ticket", "error", err)
		utils.ErrorResponseWithError(c, h.formError(err))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	fileHeader, err := c.FormFile(constants.FormFieldImage)
	if err != nil {
		h.logger.Warnw("image missing from submit image ticket", "error", err)
		utils.ErrorResponseWithError(c, h.formError(err))
		return
	}

	image, err := h.readImage(fileHeader)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.submitImageTicketUC.Execute(c.Request.Context(), req.ToCommand(*image))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Image ticket submitted successfully")
}

// ListTickets godoc
// @Summary List tickets
// @Description Returns the newest text and image tickets, each store paged independently
// @Tags tickets
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Param source query string false "Limit to one store" Enums(text, image)
// @Success 200 {object} utils.APIResponse{data=dto.TicketListDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 500 {object} utils.APIResponse
// @Router /api/tickets/all [get]
func (h *TicketHandler) ListTickets(c *gin.Context) {
	result, err := h.listTicketsUC.Execute(c.Request.Context(), parseListTicketsQuery(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetTicketImage godoc
// @Summary Download a ticket's screenshot
// @Tags ocr
// @Produce octet-stream
// @Param id path string true "Image ticket ID"
// @Success 200 {file} binary
// @Failure 404 {object} utils.APIResponse
// @Router /api/ocr/tickets/{id}/image [get]
func (h *TicketHandler) GetTicketImage(c *gin.Context) {
	image, err := h.getTicketImageUC.Execute(c.Request.Context(), usecases.GetTicketImageQuery{
		TicketID: c.Param("id"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	contentType := image.ContentType
	if contentType == "" {
		contentType = constants.ContentTypeOctetStream
	}
	if image.Filename != "" {
		c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", image.Filename))
	}

	c.Data(http.StatusOK, contentType, image.Data)
}

func (h *TicketHandler) readImage(fileHeader *multipart.FileHeader) (*ticketdomain.Image, error) {
	if h.maxImageBytes > 0 && fileHeader.Size > h.maxImageBytes {
		return nil, h.tooLarge()
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Errorw("failed to open uploaded image", "filename", fileHeader.Filename, "error", err)
		return nil, errors.NewBadRequestError("failed to read uploaded image")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.Errorw("failed to read uploaded image", "filename", fileHeader.Filename, "error", err)
		return nil, errors.NewBadRequestError("failed to read uploaded image")
	}
	if len(data) == 0 {
		return nil, errors.NewValidationError("image is required", "uploaded image is empty")
	}

	contentType := fileHeader.Header.Get(constants.HeaderContentType)
	if contentType == "" || contentType == constants.ContentTypeOctetStream {
		contentType = http.DetectContentType(data)
	}

	return &ticketdomain.Image{
		Filename:    fileHeader.Filename,
		ContentType: contentType,
		Data:        data,
	}, nil
}

func (h *TicketHandler) formError(err error) error {
	var maxBytesErr *http.MaxBytesError
	if stderrors.As(err, &maxBytesErr) {
		return h.tooLarge()
	}
	if stderrors.Is(err, http.ErrMissingFile) {
		return errors.NewValidationError("image is required")
	}
	if strings.Contains(err.Error(), "request body too large") {
		return h.tooLarge()
	}
	return errors.NewValidationError("Invalid form data", err.Error())
}

func (h *TicketHandler) tooLarge() error {
	return errors.NewPayloadTooLargeError(
		"image exceeds the upload limit",
		fmt.Sprintf("maximum image size is %d bytes", h.maxImageBytes),
	)
}
